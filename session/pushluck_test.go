package session

import (
	"fmt"
	"testing"

	"github.com/Sieru626/boardgame-venue-sub000/deck"
	utils "github.com/Sieru626/boardgame-venue-sub000/internal"
	"github.com/Sieru626/boardgame-venue-sub000/template"
	"github.com/stretchr/testify/assert"
)

func vcard(v int) deck.Card {
	c := deck.NewCard(fmt.Sprintf("%d", v), "")
	c.Value = v
	return c
}

func zcard() deck.Card {
	c := deck.NewCard("Zero", "")
	c.Effect = zeroEffect
	return c
}

// pushLuckSession builds a two-player game mid-round with given hands.
func pushLuckSession(p1Hand, p2Hand []deck.Card) *Session {
	s := New("room-1", "ABCDEF", "p1", "Hermione")
	_ = s.Join("p2", "Harry")
	s.Phase = PhasePlaying
	s.Mode = template.ModePushLuck
	s.PushLuck = &PushLuckState{
		Round:     1,
		MaxRounds: pushLuckMaxRounds,
		Order:     []string{"p1", "p2"},
		Scores:    map[string]int{"p1": 0, "p2": 0},
		Results:   []RoundResult{},
		Status:    StatusPlaying,
	}
	p1, _ := s.FindPlayer("p1")
	p2, _ := s.FindPlayer("p2")
	p1.Hand = p1Hand
	p2.Hand = p2Hand
	s.DrawPile = deck.Deck{vcard(1), vcard(2), vcard(3), vcard(4), vcard(5), vcard(6)}
	return s
}

// lastTurn fast-forwards the state to the final action of the round.
func lastTurn(s *Session, seat int) {
	s.PushLuck.TurnCount = len(s.PushLuck.Order)*pushLuckActions - 1
	s.PushLuck.TurnIdx = seat
}

func TestPushLuckSetup(t *testing.T) {
	t.Run("deals exactly two cards per active player", func(t *testing.T) {
		s := New("room-1", "ABCDEF", "p1", "Hermione")
		_ = s.Join("p2", "Harry")
		tpl, err := template.DefaultFor(template.ModePushLuck)
		utils.AssertNoError(t, err)
		utils.AssertNoError(t, Instantiate(s, tpl))

		st := s.PushLuck
		utils.AssertEqual(t, st.Round, 1)
		utils.AssertEqual(t, st.TurnCount, 0)
		for _, p := range s.Players {
			assert.Len(t, p.Hand, pushLuckHandSize)
		}
	})
}

func TestPushLuckTurns(t *testing.T) {
	t.Run("rejects an off-turn action", func(t *testing.T) {
		s := pushLuckSession([]deck.Card{vcard(9)}, []deck.Card{vcard(9)})
		utils.AssertEqual(t, s.PushLuckPass("p2"), ErrNotYourTurn)
	})

	t.Run("every action bumps the counter and advances the turn", func(t *testing.T) {
		s := pushLuckSession([]deck.Card{vcard(9)}, []deck.Card{vcard(9)})
		st := s.PushLuck

		utils.AssertNoError(t, s.PushLuckPass("p1"))
		utils.AssertEqual(t, st.TurnCount, 1)
		utils.AssertEqual(t, st.Order[st.TurnIdx], "p2")
	})

	t.Run("discard-and-draw replaces the card in place", func(t *testing.T) {
		s := pushLuckSession([]deck.Card{vcard(9), vcard(8)}, []deck.Card{vcard(9)})
		p1, _ := s.FindPlayer("p1")
		old := p1.Hand[1]

		utils.AssertNoError(t, s.PushLuckDiscardDraw("p1", 1))
		assert.Len(t, p1.Hand, 2)
		utils.AssertEqual(t, p1.Hand[1].Value, 6) // replacement comes from the top of the deck
		utils.AssertEqual(t, s.Table[len(s.Table)-1].ID, old.ID)
	})

	t.Run("redraw-all replaces the whole hand", func(t *testing.T) {
		s := pushLuckSession([]deck.Card{vcard(9), vcard(8)}, []deck.Card{vcard(9)})
		p1, _ := s.FindPlayer("p1")

		utils.AssertNoError(t, s.PushLuckRedrawAll("p1"))
		assert.Len(t, p1.Hand, 2)
		assert.Len(t, s.Table, 2)
		utils.AssertEqual(t, p1.Hand[0].Value, 5)
		utils.AssertEqual(t, p1.Hand[1].Value, 6)
	})

	t.Run("rejects an invalid discard position", func(t *testing.T) {
		s := pushLuckSession([]deck.Card{vcard(9)}, []deck.Card{vcard(9)})
		utils.AssertEqual(t, s.PushLuckDiscardDraw("p1", 3), ErrInvalidIndex)
	})
}

func TestPushLuckRoundEnd(t *testing.T) {
	t.Run("score delta equals the awarded points exactly", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(15), vcard(10)}, // 25, qualifies
			[]deck.Card{vcard(11), vcard(9)},  // 20, under threshold
		)
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		st := s.PushLuck
		result := st.Results[0]
		utils.AssertEqual(t, result.Round, 1)
		utils.AssertEqual(t, result.Sums["p1"], 25)
		utils.AssertEqual(t, result.Sums["p2"], 20)
		utils.AssertDeepEqual(t, result.Awards, map[string]int{"p1": pushLuckTopAward})
		utils.AssertEqual(t, st.Scores["p1"], pushLuckTopAward)
		utils.AssertEqual(t, st.Scores["p2"], 0)
	})

	t.Run("no sum above the threshold awards nothing", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(5), vcard(5)},
			[]deck.Card{vcard(6), vcard(4)},
		)
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		st := s.PushLuck
		assert.Len(t, st.Results[0].Awards, 0)
		utils.AssertEqual(t, st.Scores["p1"]+st.Scores["p2"], 0)
	})

	t.Run("a zero card voids the hand", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(30), zcard()},
			[]deck.Card{vcard(15), vcard(10)},
		)
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		result := s.PushLuck.Results[0]
		_, reported := result.Sums["p1"]
		utils.AssertTrue(t, !reported)
		utils.AssertDeepEqual(t, result.Awards, map[string]int{"p2": pushLuckTopAward})
	})

	t.Run("tied top sums share the top award", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(15), vcard(10)},
			[]deck.Card{vcard(20), vcard(5)},
		)
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		st := s.PushLuck
		utils.AssertEqual(t, st.Scores["p1"], pushLuckTopAward)
		utils.AssertEqual(t, st.Scores["p2"], pushLuckTopAward)
	})

	t.Run("the second sum group takes the lesser award", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(15), vcard(10)}, // 25
			[]deck.Card{vcard(12), vcard(10)}, // 22
		)
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		st := s.PushLuck
		utils.AssertEqual(t, st.Scores["p1"], pushLuckTopAward)
		utils.AssertEqual(t, st.Scores["p2"], pushLuckSecond)
	})

	t.Run("a new round rotates the start seat and redeals", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(15), vcard(10)},
			[]deck.Card{vcard(11), vcard(9)},
		)
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		st := s.PushLuck
		utils.AssertEqual(t, st.Round, 2)
		utils.AssertEqual(t, st.TurnCount, 0)
		utils.AssertEqual(t, st.StartIdx, 1)
		utils.AssertEqual(t, st.TurnIdx, 1)
		for _, p := range s.Players {
			assert.Len(t, p.Hand, pushLuckHandSize)
		}
	})

	t.Run("a short supply deals short hands instead of blocking the redeal", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(15)},
			[]deck.Card{vcard(11)},
		)
		s.DrawPile = deck.Deck{vcard(1)} // three cards in play, four wanted
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		st := s.PushLuck
		utils.AssertEqual(t, st.Round, 2)
		utils.AssertEqual(t, st.Status, StatusPlaying)

		p1, _ := s.FindPlayer("p1")
		p2, _ := s.FindPlayer("p2")
		assert.Len(t, p1.Hand, pushLuckHandSize) // discard reshuffled back in
		assert.Len(t, p2.Hand, 1)
		assert.Len(t, s.DrawPile, 0)
	})

	t.Run("the final round finishes the game", func(t *testing.T) {
		s := pushLuckSession(
			[]deck.Card{vcard(15), vcard(10)},
			[]deck.Card{vcard(11), vcard(9)},
		)
		s.PushLuck.Round = pushLuckMaxRounds
		lastTurn(s, 1)
		utils.AssertNoError(t, s.PushLuckPass("p2"))

		utils.AssertEqual(t, s.PushLuck.Status, StatusFinished)
		utils.AssertEqual(t, s.Phase, PhaseFinished)
		utils.AssertEqual(t, s.PushLuckPass("p1"), ErrGameOver)
	})
}
