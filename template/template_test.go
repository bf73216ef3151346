package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tpl := &Template{
		ID:   "t1",
		Mode: ModeElimination,
		Piles: []Pile{
			{Title: "deck", Entries: []Entry{
				{Name: "Ace", Count: 3, Enabled: true},
				{Name: "Two", Count: 1, Enabled: false},
				{Name: "Three", Count: 0, Enabled: true},
			}},
			{Title: "extra", Entries: []Entry{
				{Name: "Four", Count: 2, Enabled: true},
			}},
		},
	}

	t.Run("applies count multipliers and skips disabled entries", func(t *testing.T) {
		cards := tpl.Expand()
		names := []string{}
		for _, c := range cards {
			names = append(names, c.Rank)
		}
		assert.ElementsMatch(t, []string{"Ace", "Ace", "Ace", "Three", "Four", "Four"}, names)
	})

	t.Run("filters by pile title", func(t *testing.T) {
		cards := tpl.Expand("extra")
		assert.Len(t, cards, 2)
		assert.Equal(t, "Four", cards[0].Rank)
	})

	t.Run("expanded cards get unique ids", func(t *testing.T) {
		cards := tpl.Expand()
		ids := map[string]bool{}
		for _, c := range cards {
			ids[c.ID] = true
		}
		assert.Len(t, ids, len(cards))
	})
}

func TestDefaults(t *testing.T) {
	t.Run("every mode has a dealable default", func(t *testing.T) {
		for _, mode := range []string{ModeElimination, ModePairMatch, ModePushLuck, ModeSocialRole} {
			tpl, err := DefaultFor(mode)
			assert.NoError(t, err)
			assert.Equal(t, mode, tpl.Mode)
			if mode == ModeSocialRole {
				assert.NotEmpty(t, tpl.Expand(PileScene))
				assert.NotEmpty(t, tpl.Expand(PileLaw))
			} else {
				assert.NotEmpty(t, tpl.Expand())
			}
		}
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		_, err := DefaultFor("chess")
		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}

func TestClone(t *testing.T) {
	t.Run("copies are independent", func(t *testing.T) {
		tpl := New(ModePushLuck)
		tpl.Piles = []Pile{{Title: "deck", Entries: []Entry{{Name: "Five", Count: 1, Enabled: true}}}}

		cp := tpl.Clone()
		cp.Piles[0].Entries[0].Name = "Nine"

		assert.Equal(t, "Five", tpl.Piles[0].Entries[0].Name)
	})

	t.Run("nil clones to nil", func(t *testing.T) {
		var tpl *Template
		assert.Nil(t, tpl.Clone())
	})
}
