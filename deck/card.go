package deck

import (
	uuid "github.com/satori/go.uuid"
)

// HiddenRank is the rank shown in place of a card the viewer may not see.
const HiddenRank = "hidden"

// JokerRank never forms a pair.
const JokerRank = "Joker"

// Card represents a playing card. The ID is unique within a session and
// stable for the session's life; the card itself moves between zones.
type Card struct {
	ID     string `json:"id"`
	Rank   string `json:"rank"`
	Suit   string `json:"suit,omitempty"`
	Value  int    `json:"value,omitempty"`
	Role   string `json:"role,omitempty"`
	Effect string `json:"effect,omitempty"`
}

// NewCard constructs a card with a fresh id.
func NewCard(rank, suit string) Card {
	return Card{ID: uuid.NewV4().String(), Rank: rank, Suit: suit}
}

// Hidden returns the opaque placeholder used when masking another
// player's hand. It carries no identity at all.
func Hidden() Card {
	return Card{Rank: HiddenRank}
}

// IsHidden reports whether the card is a masking placeholder.
func (c Card) IsHidden() bool {
	return c.Rank == HiddenRank
}

func (c Card) String() string {
	if c.Suit == "" {
		return c.Rank
	}
	return c.Rank + " of " + c.Suit
}
