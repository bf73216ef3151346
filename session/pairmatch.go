package session

import (
	"math/rand"
	"time"

	"github.com/Sieru626/boardgame-venue-sub000/deck"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

// LockWindow is how long a mismatched pair stays face up so every viewer
// sees it before it hides again.
const LockWindow = 1200 * time.Millisecond

// BoardCard is one face-down slot on the memory board.
type BoardCard struct {
	deck.Card
	FaceUp  bool `json:"face_up"`
	Matched bool `json:"matched"`
}

// PairMatchState drives the memory game. A mismatch opens a lock window;
// resolution is deferred so the reveal is visible, then both cards hide
// and the turn passes.
type PairMatchState struct {
	Board     []BoardCard    `json:"board"`
	Order     []string       `json:"order"`
	TurnIdx   int            `json:"turn_idx"`
	Flipped   []string       `json:"flipped"`
	Scores    map[string]int `json:"scores"`
	LockUntil time.Time      `json:"lock_until"`
	Status    string         `json:"status"`
}

func (st *PairMatchState) clone() *PairMatchState {
	if st == nil {
		return nil
	}
	next := *st
	next.Board = append([]BoardCard{}, st.Board...)
	next.Order = append([]string{}, st.Order...)
	next.Flipped = append([]string{}, st.Flipped...)
	next.Scores = map[string]int{}
	for k, v := range st.Scores {
		next.Scores[k] = v
	}
	return &next
}

// setupPairMatch builds the board directly as rank-duplicated pairs, one
// pair per enabled template entry, ignoring pile structure and counts.
func setupPairMatch(s *Session, tpl *template.Template, active []*Player) {
	board := []BoardCard{}
	for _, pile := range tpl.Piles {
		for _, e := range pile.Entries {
			if !e.Enabled {
				continue
			}
			for i := 0; i < 2; i++ {
				c := deck.NewCard(e.Name, e.Suit)
				c.Value = e.Value
				board = append(board, BoardCard{Card: c})
			}
		}
	}
	rand.Shuffle(len(board), func(i, j int) {
		board[i], board[j] = board[j], board[i]
	})

	st := &PairMatchState{
		Board:   board,
		Order:   []string{},
		Flipped: []string{},
		Scores:  map[string]int{},
		Status:  StatusPlaying,
	}
	for _, p := range active {
		st.Order = append(st.Order, p.ID)
		st.Scores[p.ID] = 0
	}
	s.PairMatch = st
}

// PairMatchFlip turns one card face up. Rejected while the board is
// locked, off turn, or on an already revealed or matched card.
func (s *Session) PairMatchFlip(actorID, cardID string, now time.Time) error {
	st := s.PairMatch
	if st == nil {
		return ErrWrongMode
	}
	if st.Status == StatusFinished {
		return ErrGameOver
	}

	// a lock that expired without its scheduled resolution (e.g. after a
	// restart) resolves on the next touch
	st.resolve(s, now)

	if len(st.Flipped) >= 2 {
		return ErrBoardLocked
	}
	if st.Order[st.TurnIdx] != actorID {
		return ErrNotYourTurn
	}

	idx := st.findCard(cardID)
	if idx < 0 {
		return ErrUnknownCard
	}
	if st.Board[idx].FaceUp || st.Board[idx].Matched {
		return ErrCardRevealed
	}

	st.Board[idx].FaceUp = true
	st.Flipped = append(st.Flipped, cardID)

	if len(st.Flipped) < 2 {
		return nil
	}

	first := st.findCard(st.Flipped[0])
	if st.Board[first].Rank == st.Board[idx].Rank {
		st.Board[first].Matched = true
		st.Board[idx].Matched = true
		st.Scores[actorID]++
		st.Flipped = []string{}
		// the scorer keeps the turn
		if st.allMatched() {
			st.Status = StatusFinished
			s.Phase = PhaseFinished
			s.AppendEvent("match-end", actorID, "all pairs found")
		}
		return nil
	}

	st.LockUntil = now.Add(LockWindow)
	return nil
}

// PairMatchResolve hides a mismatched pair once its lock window has
// elapsed and passes the turn. Delivered as a scheduled room message; it
// operates on freshly loaded state, never a captured reference.
func (s *Session) PairMatchResolve(now time.Time) error {
	st := s.PairMatch
	if st == nil {
		return ErrWrongMode
	}
	st.resolve(s, now)
	return nil
}

func (st *PairMatchState) resolve(s *Session, now time.Time) {
	if len(st.Flipped) != 2 || st.LockUntil.IsZero() || now.Before(st.LockUntil) {
		return
	}
	for _, id := range st.Flipped {
		if i := st.findCard(id); i >= 0 && !st.Board[i].Matched {
			st.Board[i].FaceUp = false
		}
	}
	st.Flipped = []string{}
	st.LockUntil = time.Time{}
	st.TurnIdx = (st.TurnIdx + 1) % len(st.Order)
}

func (st *PairMatchState) findCard(id string) int {
	for i := range st.Board {
		if st.Board[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *PairMatchState) allMatched() bool {
	for i := range st.Board {
		if !st.Board[i].Matched {
			return false
		}
	}
	return true
}
