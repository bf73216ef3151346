// Package session owns the authoritative game-state document for one room
// and the transition rules of the four game modes. Mutations are pure
// transforms over a cloned document; committing and broadcasting are the
// room manager's job.
package session

import (
	"time"

	"github.com/Sieru626/boardgame-venue-sub000/deck"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

// Session phases.
const (
	PhaseLobby    = "lobby"
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// Mode status values shared by all four mode states.
const (
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

const (
	minPlayers = 2
	maxPlayers = 8
	maxEvents  = 50
)

// Player represents one seat in a room. The hand is exclusively the
// player's until a rule moves a card elsewhere. A spectator never touches
// shared zones and is excluded from dealing and turn order.
type Player struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Host      bool        `json:"host,omitempty"`
	Spectator bool        `json:"spectator,omitempty"`
	Connected bool        `json:"connected"`
	Out       bool        `json:"out,omitempty"`
	Role      string      `json:"role,omitempty"`
	Hand      []deck.Card `json:"hand"`
}

// Event is one entry in the bounded room log.
type Event struct {
	Kind     string    `json:"kind"`
	PlayerID string    `json:"player_id,omitempty"`
	Text     string    `json:"text,omitempty"`
	At       time.Time `json:"at"`
}

// Session is the full state document for one room: exactly one durable
// record, serialized as a whole. Version increases by exactly 1 per
// committed mutation. At most one of the four mode states is non-nil.
type Session struct {
	RoomID   string `json:"room_id"`
	JoinCode string `json:"join_code"`
	HostID   string `json:"host_id"`
	Version  int    `json:"version"`
	Phase    string `json:"phase"`
	Mode     string `json:"mode,omitempty"`

	Players  []*Player `json:"players"`
	DrawPile deck.Deck `json:"draw_pile"`
	Table    deck.Deck `json:"table"`
	Events   []Event   `json:"events"`

	ActiveTemplate *template.Template `json:"active_template,omitempty"`
	DraftTemplate  *template.Template `json:"draft_template,omitempty"`

	Elimination *EliminationState `json:"elimination,omitempty"`
	PairMatch   *PairMatchState   `json:"pair_match,omitempty"`
	PushLuck    *PushLuckState    `json:"push_luck,omitempty"`
	SocialRole  *SocialRoleState  `json:"social_role,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// New constructs a fresh lobby session with its host seated. The returned
// session is at version 1, counting creation as the first commit.
func New(roomID, joinCode string, hostID, hostName string) *Session {
	return &Session{
		RoomID:   roomID,
		JoinCode: joinCode,
		HostID:   hostID,
		Version:  1,
		Phase:    PhaseLobby,
		Players: []*Player{
			{ID: hostID, Name: hostName, Host: true, Connected: true, Hand: []deck.Card{}},
		},
		DrawPile:  deck.Deck{},
		Table:     deck.Deck{},
		Events:    []Event{},
		UpdatedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy of the session. Mutations operate on clones so
// a failed transform can never leave a half-applied document behind.
func (s *Session) Clone() *Session {
	next := *s

	next.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		cp.Hand = append([]deck.Card{}, p.Hand...)
		next.Players[i] = &cp
	}

	next.DrawPile = append(deck.Deck{}, s.DrawPile...)
	next.Table = append(deck.Deck{}, s.Table...)
	next.Events = append([]Event{}, s.Events...)

	next.ActiveTemplate = s.ActiveTemplate.Clone()
	next.DraftTemplate = s.DraftTemplate.Clone()

	next.Elimination = s.Elimination.clone()
	next.PairMatch = s.PairMatch.clone()
	next.PushLuck = s.PushLuck.clone()
	next.SocialRole = s.SocialRole.clone()

	return &next
}

// FindPlayer finds a seated player by id.
func (s *Session) FindPlayer(id string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ActivePlayers returns the connected, non-spectator players in join
// order. These are the players a new match is dealt to.
func (s *Session) ActivePlayers() []*Player {
	active := []*Player{}
	for _, p := range s.Players {
		if p.Connected && !p.Spectator {
			active = append(active, p)
		}
	}
	return active
}

// AppendEvent appends to the room log, dropping the oldest entries beyond
// the bound.
func (s *Session) AppendEvent(kind, playerID, text string) {
	s.Events = append(s.Events, Event{
		Kind:     kind,
		PlayerID: playerID,
		Text:     text,
		At:       time.Now().UTC(),
	})
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}

// clearModes drops every mode state. Callers set up the replacement.
func (s *Session) clearModes() {
	s.Elimination = nil
	s.PairMatch = nil
	s.PushLuck = nil
	s.SocialRole = nil
}

// resetZones empties shared zones and all hands and clears per-match
// player flags.
func (s *Session) resetZones() {
	s.DrawPile = deck.Deck{}
	s.Table = deck.Deck{}
	for _, p := range s.Players {
		p.Hand = []deck.Card{}
		p.Out = false
		p.Role = ""
	}
}
