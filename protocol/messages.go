package protocol

import (
	"github.com/Sieru626/boardgame-venue-sub000/session"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

// Inbound is a room-scoped action issued by one viewer. RoomID and
// PlayerID are stamped by the server from the connection handshake, never
// trusted from the payload. ExpectedVersion, when present, makes the
// action fail with a conflict if the session has moved on.
type Inbound struct {
	Kind            string             `json:"kind"`
	RoomID          string             `json:"-"`
	PlayerID        string             `json:"-"`
	ExpectedVersion *int               `json:"expected_version,omitempty"`
	Name            string             `json:"name,omitempty"`
	Target          string             `json:"target,omitempty"`
	Text            string             `json:"text,omitempty"`
	Pos             int                `json:"pos"`
	CardID          string             `json:"card_id,omitempty"`
	Seconds         int                `json:"seconds,omitempty"`
	Delta           int                `json:"delta,omitempty"`
	Threshold       int                `json:"threshold,omitempty"`
	Template        *template.Template `json:"template,omitempty"`
	TemplateID      string             `json:"template_id,omitempty"`
}

// Outbound is a message pushed to a viewer: a masked snapshot after every
// committed mutation, a conflict on a stale expected version, or a rule
// violation addressed to the issuing caller only.
type Outbound struct {
	Kind     string             `json:"kind"`
	Version  int                `json:"version,omitempty"`
	State    *session.Session   `json:"state,omitempty"`
	Reason   string             `json:"reason,omitempty"`
	Template *template.Template `json:"template,omitempty"`
}
