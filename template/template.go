// Package template holds reusable deck/rule definitions. A template is
// authored by the host as a draft, promoted to the room's active
// configuration, and optionally saved to the template store for reuse.
package template

import (
	"errors"

	"github.com/Sieru626/boardgame-venue-sub000/deck"
	uuid "github.com/satori/go.uuid"
)

var ErrUnknownMode = errors.New("unknown game mode")

// Game modes a template can declare.
const (
	ModeElimination = "elimination"
	ModePairMatch   = "pairmatch"
	ModePushLuck    = "pushluck"
	ModeSocialRole  = "socialrole"
)

// Pile titles with fixed meaning for the social/role mode.
const (
	PileScene = "scene"
	PileLaw   = "law"
)

// Entry is one card definition inside a pile. Count multiplies the card;
// disabled entries expand to nothing.
type Entry struct {
	Name    string `json:"name"`
	Suit    string `json:"suit,omitempty"`
	Value   int    `json:"value,omitempty"`
	Role    string `json:"role,omitempty"`
	Effect  string `json:"effect,omitempty"`
	Count   int    `json:"count"`
	Enabled bool   `json:"enabled"`
}

// Pile is a titled, ordered list of card definitions.
type Pile struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Template is a reusable rule/deck definition.
type Template struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Mode  string `json:"mode"`
	Piles []Pile `json:"piles"`
	Rules string `json:"rules,omitempty"`
}

// New constructs an empty template for the given mode.
func New(mode string) *Template {
	return &Template{ID: uuid.NewV4().String(), Mode: mode}
}

// Expand turns the named piles into live cards with fresh session-unique
// ids. With no titles given, every pile expands. Disabled entries are
// skipped; a count below one expands once.
func (t *Template) Expand(titles ...string) []deck.Card {
	wanted := map[string]bool{}
	for _, title := range titles {
		wanted[title] = true
	}

	cards := []deck.Card{}
	for _, pile := range t.Piles {
		if len(wanted) > 0 && !wanted[pile.Title] {
			continue
		}
		for _, e := range pile.Entries {
			if !e.Enabled {
				continue
			}
			count := e.Count
			if count < 1 {
				count = 1
			}
			for i := 0; i < count; i++ {
				cards = append(cards, deck.Card{
					ID:     uuid.NewV4().String(),
					Rank:   e.Name,
					Suit:   e.Suit,
					Value:  e.Value,
					Role:   e.Role,
					Effect: e.Effect,
				})
			}
		}
	}
	return cards
}

// Clone returns a deep copy of the template.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	next := *t
	next.Piles = make([]Pile, len(t.Piles))
	for i, p := range t.Piles {
		next.Piles[i] = Pile{Title: p.Title, Entries: append([]Entry{}, p.Entries...)}
	}
	return &next
}
