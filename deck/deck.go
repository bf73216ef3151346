package deck

import (
	"math/rand"
)

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

// Deck represents an ordered pile of cards
type Deck []Card

// New creates a standard 52-card deck. Values run Ace=1 .. King=13.
func New() Deck {
	cards := []Card{}
	for _, suit := range suitNames {
		for i, rank := range rankNames {
			c := NewCard(rank, suit)
			c.Value = i + 1
			cards = append(cards, c)
		}
	}
	return cards
}

// NewWithJoker creates a standard deck plus a single joker.
func NewWithJoker() Deck {
	d := New()
	return append(d, NewCard(JokerRank, ""))
}

// Shuffle shuffles the deck of cards uniformly
func (d *Deck) Shuffle() {
	actualDeck := *d
	rand.Shuffle(len(actualDeck), func(i, j int) {
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	})
}

// Deal deals n cards from the top of the deck, fewer if the deck runs out
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 {
		return []Card{}
	}
	if n > numCardsInDeck {
		n = numCardsInDeck
	}
	startingIndex := numCardsInDeck - n
	subSlice := make([]Card, n)
	copy(subSlice, (*d)[startingIndex:numCardsInDeck])
	*d = (*d)[:startingIndex]
	return subSlice
}

// StripPairs removes rank-matched pairs from a hand until none remain,
// returning the surviving cards and the removed pairs. A lone joker never
// pairs. Applying it twice yields the same result as once.
func StripPairs(hand []Card) (kept, removed []Card) {
	kept, removed = []Card{}, []Card{}
	unpaired := map[string]int{}
	for _, c := range hand {
		if c.Rank == JokerRank {
			continue
		}
		unpaired[c.Rank]++
	}

	pending := map[string]int{}
	for _, c := range hand {
		if c.Rank == JokerRank {
			kept = append(kept, c)
			continue
		}
		pairable := unpaired[c.Rank] - unpaired[c.Rank]%2
		if pending[c.Rank] < pairable {
			pending[c.Rank]++
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	return kept, removed
}
