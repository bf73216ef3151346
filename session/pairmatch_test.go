package session

import (
	"testing"
	"time"

	utils "github.com/Sieru626/boardgame-venue-sub000/internal"
	"github.com/Sieru626/boardgame-venue-sub000/template"
	"github.com/stretchr/testify/assert"
)

func pairMatchSession(t *testing.T) *Session {
	t.Helper()
	s := New("room-1", "ABCDEF", "p1", "Hermione")
	utils.AssertNoError(t, s.Join("p2", "Harry"))

	tpl := template.New(template.ModePairMatch)
	tpl.Piles = []template.Pile{{Title: "board", Entries: []template.Entry{
		{Name: "Sun", Count: 1, Enabled: true},
		{Name: "Moon", Count: 1, Enabled: true},
	}}}
	utils.AssertNoError(t, Instantiate(s, tpl))
	return s
}

// boardCards returns the ids of the two cards with the given rank.
func boardCards(st *PairMatchState, rank string) []string {
	ids := []string{}
	for _, bc := range st.Board {
		if bc.Rank == rank {
			ids = append(ids, bc.ID)
		}
	}
	return ids
}

func otherRank(st *PairMatchState, rank string) string {
	for _, bc := range st.Board {
		if bc.Rank != rank {
			return bc.Rank
		}
	}
	return ""
}

func TestPairMatchSetup(t *testing.T) {
	t.Run("board holds one face-down pair per entry", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch

		assert.Len(t, st.Board, 4)
		assert.Len(t, boardCards(st, "Sun"), 2)
		assert.Len(t, boardCards(st, "Moon"), 2)
		for _, bc := range st.Board {
			utils.AssertTrue(t, !bc.FaceUp)
			utils.AssertTrue(t, !bc.Matched)
		}
	})
}

func TestPairMatchFlip(t *testing.T) {
	now := time.Now()

	t.Run("rejects an off-turn flip", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		off := st.Order[1]
		err := s.PairMatchFlip(off, st.Board[0].ID, now)
		utils.AssertEqual(t, err, ErrNotYourTurn)
	})

	t.Run("rejects flipping the same card twice before resolution", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		actor := st.Order[0]

		utils.AssertNoError(t, s.PairMatchFlip(actor, st.Board[0].ID, now))
		utils.AssertEqual(t, s.PairMatchFlip(actor, st.Board[0].ID, now), ErrCardRevealed)
	})

	t.Run("a rank match scores, keeps the turn and never unmatches", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		actor := st.Order[0]
		pair := boardCards(st, "Sun")

		utils.AssertNoError(t, s.PairMatchFlip(actor, pair[0], now))
		utils.AssertNoError(t, s.PairMatchFlip(actor, pair[1], now))

		utils.AssertEqual(t, st.Scores[actor], 1)
		utils.AssertEqual(t, st.Order[st.TurnIdx], actor)
		assert.Len(t, st.Flipped, 0)
		for _, id := range pair {
			utils.AssertTrue(t, st.Board[st.findCard(id)].Matched)
		}

		// resolution never clears a matched card
		utils.AssertNoError(t, s.PairMatchResolve(now.Add(time.Minute)))
		for _, id := range pair {
			utils.AssertTrue(t, st.Board[st.findCard(id)].Matched)
		}
	})

	t.Run("a mismatch locks the board until resolution", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		actor := st.Order[0]
		sun := boardCards(st, "Sun")[0]
		moon := boardCards(st, "Moon")[0]

		utils.AssertNoError(t, s.PairMatchFlip(actor, sun, now))
		utils.AssertNoError(t, s.PairMatchFlip(actor, moon, now))
		utils.AssertTrue(t, !st.LockUntil.IsZero())

		err := s.PairMatchFlip(actor, boardCards(st, "Moon")[1], now.Add(time.Millisecond))
		utils.AssertEqual(t, err, ErrBoardLocked)
	})

	t.Run("resolution hides the mismatch and advances the turn", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		actor := st.Order[0]
		sun := boardCards(st, "Sun")[0]
		moon := boardCards(st, "Moon")[0]

		utils.AssertNoError(t, s.PairMatchFlip(actor, sun, now))
		utils.AssertNoError(t, s.PairMatchFlip(actor, moon, now))

		utils.AssertNoError(t, s.PairMatchResolve(now.Add(LockWindow+time.Millisecond)))

		utils.AssertTrue(t, !st.Board[st.findCard(sun)].FaceUp)
		utils.AssertTrue(t, !st.Board[st.findCard(moon)].FaceUp)
		assert.Len(t, st.Flipped, 0)
		utils.AssertTrue(t, st.LockUntil.IsZero())
		utils.AssertEqual(t, st.Order[st.TurnIdx], st.Order[1])
	})

	t.Run("an early resolve is a no-op", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		actor := st.Order[0]
		sun := boardCards(st, "Sun")[0]
		moon := boardCards(st, "Moon")[0]

		utils.AssertNoError(t, s.PairMatchFlip(actor, sun, now))
		utils.AssertNoError(t, s.PairMatchFlip(actor, moon, now))

		utils.AssertNoError(t, s.PairMatchResolve(now))
		utils.AssertTrue(t, st.Board[st.findCard(sun)].FaceUp)
		assert.Len(t, st.Flipped, 2)
	})

	t.Run("an expired lock resolves on the next flip attempt", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		actor := st.Order[0]
		next := st.Order[1]
		sun := boardCards(st, "Sun")[0]
		moon := boardCards(st, "Moon")[0]

		utils.AssertNoError(t, s.PairMatchFlip(actor, sun, now))
		utils.AssertNoError(t, s.PairMatchFlip(actor, moon, now))

		// no scheduled resolution arrived (restart); the flip itself settles it
		later := now.Add(LockWindow * 2)
		utils.AssertNoError(t, s.PairMatchFlip(next, sun, later))
		utils.AssertEqual(t, st.Order[st.TurnIdx], next)
	})

	t.Run("matching everything finishes the game", func(t *testing.T) {
		s := pairMatchSession(t)
		st := s.PairMatch
		actor := st.Order[0]

		for _, rank := range []string{"Sun", "Moon"} {
			pair := boardCards(st, rank)
			utils.AssertNoError(t, s.PairMatchFlip(actor, pair[0], now))
			utils.AssertNoError(t, s.PairMatchFlip(actor, pair[1], now))
		}

		utils.AssertEqual(t, st.Status, StatusFinished)
		utils.AssertEqual(t, s.Phase, PhaseFinished)
		utils.AssertEqual(t, st.Scores[actor], 2)
	})
}
