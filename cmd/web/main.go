package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Sieru626/boardgame-venue-sub000/room"
	"github.com/Sieru626/boardgame-venue-sub000/server"
	"github.com/Sieru626/boardgame-venue-sub000/store"
	"github.com/gorilla/handlers"
	"github.com/joeshaw/envdecode"
)

type config struct {
	Addr   string `env:"VENUE_ADDR,default=:8000"`
	DBPath string `env:"VENUE_DB,default=venue.db"`
}

func main() {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil {
		log.Fatal(err.Error())
	}

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer st.Close()

	manager := room.NewManager(st, st)
	s := server.NewServer(manager)

	handler := handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, s))

	log.Printf("Listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}
