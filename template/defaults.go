package template

import "fmt"

// DefaultFor returns the built-in template for a mode. It is substituted
// whenever a room has no usable template, so every mode must be playable
// from it.
func DefaultFor(mode string) (*Template, error) {
	switch mode {
	case ModeElimination:
		return defaultElimination(), nil
	case ModePairMatch:
		return defaultPairMatch(), nil
	case ModePushLuck:
		return defaultPushLuck(), nil
	case ModeSocialRole:
		return defaultSocialRole(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

var standardRanks = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

// defaultElimination is a standard deck plus one joker, the classic
// old-maid layout: every rank pairs except the odd one left holding the
// joker.
func defaultElimination() *Template {
	entries := []Entry{}
	for i, rank := range standardRanks {
		entries = append(entries, Entry{Name: rank, Value: i + 1, Count: 4, Enabled: true})
	}
	entries = append(entries, Entry{Name: "Joker", Count: 1, Enabled: true})
	return &Template{
		ID:    "builtin-elimination",
		Name:  "Old Maid",
		Mode:  ModeElimination,
		Piles: []Pile{{Title: "deck", Entries: entries}},
	}
}

func defaultPairMatch() *Template {
	entries := []Entry{}
	for i, rank := range standardRanks[:8] {
		entries = append(entries, Entry{Name: rank, Value: i + 1, Count: 2, Enabled: true})
	}
	return &Template{
		ID:    "builtin-pairmatch",
		Name:  "Memory",
		Mode:  ModePairMatch,
		Piles: []Pile{{Title: "board", Entries: entries}},
	}
}

// defaultPushLuck values cards 1..11 with four zero cards that void a
// hand at round end.
func defaultPushLuck() *Template {
	entries := []Entry{}
	for v := 1; v <= 11; v++ {
		entries = append(entries, Entry{Name: fmt.Sprintf("%d", v), Value: v, Count: 4, Enabled: true})
	}
	entries = append(entries, Entry{Name: "Zero", Value: 0, Effect: "zero", Count: 4, Enabled: true})
	return &Template{
		ID:    "builtin-pushluck",
		Name:  "Push Your Luck",
		Mode:  ModePushLuck,
		Piles: []Pile{{Title: "deck", Entries: entries}},
	}
}

func defaultSocialRole() *Template {
	scenes := []Entry{
		{Name: "A quiet dinner party", Count: 1, Enabled: true},
		{Name: "Stuck in an elevator", Count: 1, Enabled: true},
		{Name: "The office holiday party", Count: 1, Enabled: true},
		{Name: "A long train ride", Count: 1, Enabled: true},
		{Name: "The museum gala", Count: 1, Enabled: true},
		{Name: "Backstage before the show", Count: 1, Enabled: true},
	}
	laws := []Entry{
		{Name: "Nobody may say their own name", Count: 1, Enabled: true},
		{Name: "Every sentence must be a question", Count: 1, Enabled: true},
		{Name: "Compliment whoever spoke last", Count: 1, Enabled: true},
		{Name: "No words longer than two syllables", Count: 1, Enabled: true},
		{Name: "Always speak in the third person", Count: 1, Enabled: true},
		{Name: "End every sentence with 'allegedly'", Count: 1, Enabled: true},
	}
	return &Template{
		ID:   "builtin-socialrole",
		Name: "Table Talk",
		Mode: ModeSocialRole,
		Piles: []Pile{
			{Title: PileScene, Entries: scenes},
			{Title: PileLaw, Entries: laws},
		},
	}
}
