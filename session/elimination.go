package session

import (
	"github.com/Sieru626/boardgame-venue-sub000/deck"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

// EliminationState drives the old-maid style card game: players steal
// blind from the next survivor's hand and shed pairs; emptying your hand
// makes you safe, the last survivor loses.
type EliminationState struct {
	Order   []string    `json:"order"`
	TurnIdx int         `json:"turn_idx"`
	Discard []deck.Card `json:"discard"`
	Winners []string    `json:"winners"`
	Status  string      `json:"status"`
	LoserID string      `json:"loser_id,omitempty"`
}

func (st *EliminationState) clone() *EliminationState {
	if st == nil {
		return nil
	}
	next := *st
	next.Order = append([]string{}, st.Order...)
	next.Discard = append([]deck.Card{}, st.Discard...)
	next.Winners = append([]string{}, st.Winners...)
	return &next
}

func setupElimination(s *Session, tpl *template.Template, active []*Player) {
	d := deck.Deck(tpl.Expand())
	d.Shuffle()

	st := &EliminationState{
		Order:   []string{},
		Discard: []deck.Card{},
		Winners: []string{},
		Status:  StatusPlaying,
	}
	for _, p := range active {
		st.Order = append(st.Order, p.ID)
	}

	// round-robin deal until the deck runs out
	for i := 0; len(d) > 0; i++ {
		active[i%len(active)].Hand = append(active[i%len(active)].Hand, d.Deal(1)...)
	}

	// strip pairs from every hand; an empty hand is an immediate winner
	for _, p := range active {
		kept, removed := deck.StripPairs(p.Hand)
		p.Hand = kept
		st.Discard = append(st.Discard, removed...)
		if len(p.Hand) == 0 {
			p.Out = true
			st.Winners = append(st.Winners, p.ID)
		}
	}

	s.Elimination = st
	st.TurnIdx = st.nextUnfinished(s, -1)
	st.checkForLoser(s)
}

// nextUnfinished scans seating order forward from idx (exclusive) and
// returns the seat of the first player still holding cards, or -1.
func (st *EliminationState) nextUnfinished(s *Session, idx int) int {
	for step := 1; step <= len(st.Order); step++ {
		seat := (idx + step + len(st.Order)) % len(st.Order)
		if p, ok := s.FindPlayer(st.Order[seat]); ok && !p.Out {
			return seat
		}
	}
	return -1
}

// EliminationPick is the mode's sole move: the acting player takes the
// card at pos from the next survivor's hand. The target is recomputed
// fresh from the current seating scan, never reused from before
// eliminations changed survivor order.
func (s *Session) EliminationPick(actorID string, pos int) error {
	st := s.Elimination
	if st == nil {
		return ErrWrongMode
	}
	if st.Status == StatusFinished {
		return ErrGameOver
	}

	actor, ok := s.FindPlayer(st.Order[st.TurnIdx])
	if !ok || actor.ID != actorID {
		return ErrNotYourTurn
	}

	targetSeat := st.nextUnfinished(s, st.TurnIdx)
	if targetSeat < 0 || st.Order[targetSeat] == actor.ID {
		return ErrGameOver
	}
	target, _ := s.FindPlayer(st.Order[targetSeat])

	if pos < 0 || pos >= len(target.Hand) {
		return ErrInvalidIndex
	}

	card := target.Hand[pos]
	target.Hand = append(target.Hand[:pos], target.Hand[pos+1:]...)
	actor.Hand = append(actor.Hand, card)

	kept, removed := deck.StripPairs(actor.Hand)
	actor.Hand = kept
	st.Discard = append(st.Discard, removed...)

	st.finishIfEmpty(s, target)
	st.finishIfEmpty(s, actor)

	if st.checkForLoser(s) {
		return nil
	}

	st.TurnIdx = st.nextUnfinished(s, st.TurnIdx)
	return nil
}

func (st *EliminationState) finishIfEmpty(s *Session, p *Player) {
	if p.Out || len(p.Hand) > 0 {
		return
	}
	p.Out = true
	st.Winners = append(st.Winners, p.ID)
	s.AppendEvent("finished", p.ID, p.Name+" is safe")
}

// checkForLoser ends the game when one survivor is left holding cards.
func (st *EliminationState) checkForLoser(s *Session) bool {
	survivors := []string{}
	for _, id := range st.Order {
		if p, ok := s.FindPlayer(id); ok && !p.Out {
			survivors = append(survivors, id)
		}
	}
	if len(survivors) > 1 {
		return false
	}
	st.Status = StatusFinished
	s.Phase = PhaseFinished
	if len(survivors) == 1 {
		st.LoserID = survivors[0]
		if p, ok := s.FindPlayer(st.LoserID); ok {
			s.AppendEvent("match-end", st.LoserID, p.Name+" is left holding the cards")
		}
	}
	return true
}
