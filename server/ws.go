package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Sieru626/boardgame-venue-sub000/protocol"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const sendQueueSize = 16

// HandleWS upgrades a seated player's connection and wires it to the
// room: inbound frames become actions on the room queue, committed
// mutations come back as masked-state pushes.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	roomID := query.Get("room_id")
	if roomID == "" {
		http.Error(w, "missing room ID", http.StatusBadRequest)
		return
	}
	playerID := query.Get("player_id")
	if playerID == "" {
		http.Error(w, "missing player ID", http.StatusBadRequest)
		return
	}

	snapshot, err := g.manager.Fetch(r.Context(), roomID, playerID)
	if err != nil {
		http.Error(w, unknownRoomMsg(roomID), http.StatusBadRequest)
		return
	}
	if _, ok := snapshot.State.FindPlayer(playerID); !ok {
		http.Error(w, "unknown player ID", http.StatusBadRequest)
		return
	}

	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &wsClient{
		conn:     rawConn,
		send:     make(chan []byte, sendQueueSize),
		roomID:   roomID,
		playerID: playerID,
		server:   g,
	}

	go client.writePump()
	g.manager.Subscribe(roomID, playerID, client.send)
	client.readPump()
}

type wsClient struct {
	conn     *websocket.Conn
	send     chan []byte
	roomID   string
	playerID string
	server   *GameServer
}

// readPump turns frames into room actions. Identity comes from the
// handshake, never from the frame.
func (c *wsClient) readPump() {
	defer func() {
		c.server.manager.Unsubscribe(c.roomID, c.playerID, c.send)
		c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var act protocol.Inbound
		if err := json.Unmarshal(payload, &act); err != nil {
			out, _ := json.Marshal(protocol.Outbound{
				Kind:   protocol.KindError,
				Reason: "malformed action: " + err.Error(),
			})
			select {
			case c.send <- out:
			default:
			}
			continue
		}

		act.RoomID = c.roomID
		act.PlayerID = c.playerID
		c.server.manager.Enqueue(act)
	}
}

func (c *wsClient) writePump() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			c.conn.Close()
			return
		}
	}
}
