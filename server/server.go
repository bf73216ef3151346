// Package server exposes the room engine over HTTP and websockets. It
// receives only inbound actions and hands back only masked state; all
// rendering happens client-side.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/Sieru626/boardgame-venue-sub000/protocol"
	"github.com/Sieru626/boardgame-venue-sub000/room"
	"github.com/Sieru626/boardgame-venue-sub000/session"
)

type NewRoomReq struct {
	Name string `json:"name"`
}

type JoinRoomReq struct {
	JoinCode string `json:"join_code"`
	Name     string `json:"name"`
}

type RoomRes struct {
	RoomID   string           `json:"room_id"`
	JoinCode string           `json:"join_code"`
	PlayerID string           `json:"player_id"`
	Name     string           `json:"name"`
	Host     bool             `json:"is_host"`
	Version  int              `json:"version"`
	State    *session.Session `json:"state,omitempty"`
}

// GameServer is the HTTP/websocket front of the room engine.
type GameServer struct {
	manager *room.Manager
	http.Server
}

// NewServer creates a new GameServer over a room manager.
func NewServer(manager *room.Manager) *GameServer {
	s := &GameServer{manager: manager}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(enableCors(s.HandleNewRoom)))
	router.Handle("/join", http.HandlerFunc(enableCors(s.HandleJoinRoom)))
	router.Handle("/room/", http.HandlerFunc(enableCors(s.HandleFindRoom)))
	router.Handle("/ws", http.HandlerFunc(enableCors(s.HandleWS)))

	s.Handler = router
	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func enableCors(handler http.HandlerFunc) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		handler.ServeHTTP(w, r)
	}
}

// HandleNewRoom creates a room with the caller as host.
func (g *GameServer) HandleNewRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewRoomReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}
	if data.Name == "" {
		http.Error(w, "missing player name", http.StatusBadRequest)
		return
	}

	sess, err := g.manager.CreateRoom(r.Context(), data.Name)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, RoomRes{
		RoomID:   sess.RoomID,
		JoinCode: sess.JoinCode,
		PlayerID: sess.HostID,
		Name:     data.Name,
		Host:     true,
		Version:  sess.Version,
		State:    session.Project(sess, sess.HostID),
	})
}

// HandleJoinRoom seats a new player in an existing room by join code.
func (g *GameServer) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinRoomReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}
	if data.JoinCode == "" {
		http.Error(w, "missing join code", http.StatusBadRequest)
		return
	}
	if data.Name == "" {
		http.Error(w, "missing player name", http.StatusBadRequest)
		return
	}

	sess, err := g.manager.FindByCode(r.Context(), strings.ToUpper(data.JoinCode))
	if err != nil {
		http.Error(w, unknownRoomMsg(data.JoinCode), http.StatusNotFound)
		return
	}

	playerID := room.NewID()
	out := g.manager.Do(r.Context(), protocol.Inbound{
		Kind:     protocol.Join,
		RoomID:   sess.RoomID,
		PlayerID: playerID,
		Name:     data.Name,
	})
	if out.Kind != protocol.KindState {
		http.Error(w, out.Reason, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, RoomRes{
		RoomID:   sess.RoomID,
		JoinCode: sess.JoinCode,
		PlayerID: playerID,
		Name:     data.Name,
		Version:  out.Version,
		State:    out.State,
	})
}

// HandleFindRoom probes a room by join code. With a player_id query it
// also returns that viewer's masked snapshot, the reconnect read.
func (g *GameServer) HandleFindRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	joinCode := strings.TrimPrefix(r.URL.Path, "/room/")
	if joinCode == "" {
		http.Error(w, "missing join code", http.StatusBadRequest)
		return
	}

	sess, err := g.manager.FindByCode(r.Context(), strings.ToUpper(joinCode))
	if err != nil {
		http.Error(w, unknownRoomMsg(joinCode), http.StatusNotFound)
		return
	}

	res := RoomRes{
		RoomID:   sess.RoomID,
		JoinCode: sess.JoinCode,
		Version:  sess.Version,
	}
	if viewerID := r.URL.Query().Get("player_id"); viewerID != "" {
		if _, ok := sess.FindPlayer(viewerID); !ok {
			http.Error(w, "unknown player ID", http.StatusBadRequest)
			return
		}
		res.PlayerID = viewerID
		res.State = session.Project(sess, viewerID)
	}
	writeJSON(w, http.StatusOK, res)
}

func unknownRoomMsg(code string) string {
	return "unknown room '" + code + "'"
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	if err == io.EOF {
		log.Println(err.Error())
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing body"))
		return
	}
	log.Println(err.Error())
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusBadRequest)
}
