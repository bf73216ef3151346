package session

import (
	"fmt"
	"sort"

	"github.com/Sieru626/boardgame-venue-sub000/deck"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

// Fixed rules of the push-your-luck game.
const (
	pushLuckHandSize  = 2
	pushLuckActions   = 3 // actions per player per round
	pushLuckMaxRounds = 3
	pushLuckThreshold = 21 // minimum sum that scores
	pushLuckTopAward  = 3
	pushLuckSecond    = 1
	zeroEffect        = "zero" // a card with this effect voids the hand
)

// RoundResult is the published snapshot of one round's scoring.
type RoundResult struct {
	Round  int            `json:"round"`
	Sums   map[string]int `json:"sums"`
	Awards map[string]int `json:"awards"`
}

// PushLuckState drives the round-based push-your-luck game. The session's
// draw pile and table serve as the shared deck and discard.
type PushLuckState struct {
	Round     int            `json:"round"`
	MaxRounds int            `json:"max_rounds"`
	Order     []string       `json:"order"`
	TurnIdx   int            `json:"turn_idx"`
	StartIdx  int            `json:"start_idx"`
	TurnCount int            `json:"turn_count"`
	Scores    map[string]int `json:"scores"`
	Results   []RoundResult  `json:"results"`
	Status    string         `json:"status"`
}

func (st *PushLuckState) clone() *PushLuckState {
	if st == nil {
		return nil
	}
	next := *st
	next.Order = append([]string{}, st.Order...)
	next.Scores = map[string]int{}
	for k, v := range st.Scores {
		next.Scores[k] = v
	}
	next.Results = make([]RoundResult, len(st.Results))
	for i, r := range st.Results {
		cp := RoundResult{Round: r.Round, Sums: map[string]int{}, Awards: map[string]int{}}
		for k, v := range r.Sums {
			cp.Sums[k] = v
		}
		for k, v := range r.Awards {
			cp.Awards[k] = v
		}
		next.Results[i] = cp
	}
	return &next
}

func setupPushLuck(s *Session, tpl *template.Template, active []*Player) {
	d := deck.Deck(tpl.Expand())
	d.Shuffle()
	s.DrawPile = d

	st := &PushLuckState{
		Round:     1,
		MaxRounds: pushLuckMaxRounds,
		Order:     []string{},
		Scores:    map[string]int{},
		Results:   []RoundResult{},
		Status:    StatusPlaying,
	}
	for _, p := range active {
		st.Order = append(st.Order, p.ID)
		st.Scores[p.ID] = 0
		p.Hand = append(p.Hand, s.DrawPile.Deal(pushLuckHandSize)...)
	}
	s.PushLuck = st
}

// PushLuckPass ends the turn without touching the hand.
func (s *Session) PushLuckPass(actorID string) error {
	st := s.PushLuck
	if err := st.checkTurn(s, actorID); err != nil {
		return err
	}
	st.endTurn(s)
	return nil
}

// PushLuckDiscardDraw discards the hand card at pos and draws its
// replacement into the same position.
func (s *Session) PushLuckDiscardDraw(actorID string, pos int) error {
	st := s.PushLuck
	if err := st.checkTurn(s, actorID); err != nil {
		return err
	}
	p, _ := s.FindPlayer(actorID)
	if pos < 0 || pos >= len(p.Hand) {
		return ErrInvalidIndex
	}
	s.Table = append(s.Table, p.Hand[pos])
	drawn := s.draw(1)
	if len(drawn) == 0 {
		return ErrEmptyPile
	}
	p.Hand[pos] = drawn[0]
	st.endTurn(s)
	return nil
}

// PushLuckRedrawAll discards the whole hand and draws the same number.
func (s *Session) PushLuckRedrawAll(actorID string) error {
	st := s.PushLuck
	if err := st.checkTurn(s, actorID); err != nil {
		return err
	}
	p, _ := s.FindPlayer(actorID)
	n := len(p.Hand)
	s.Table = append(s.Table, p.Hand...)
	p.Hand = append([]deck.Card{}, s.draw(n)...)
	st.endTurn(s)
	return nil
}

func (st *PushLuckState) checkTurn(s *Session, actorID string) error {
	if st == nil {
		return ErrWrongMode
	}
	if st.Status == StatusFinished {
		return ErrGameOver
	}
	if st.Order[st.TurnIdx] != actorID {
		return ErrNotYourTurn
	}
	return nil
}

// draw deals n cards, reshuffling the discard back into the deck if the
// supply runs low.
func (s *Session) draw(n int) []deck.Card {
	if len(s.DrawPile) < n && len(s.Table) > 0 {
		s.DrawPile = append(s.DrawPile, s.Table...)
		s.Table = deck.Deck{}
		s.DrawPile.Shuffle()
	}
	return s.DrawPile.Deal(n)
}

func (st *PushLuckState) endTurn(s *Session) {
	st.TurnCount++
	st.TurnIdx = (st.TurnIdx + 1) % len(st.Order)
	if st.TurnCount >= len(st.Order)*pushLuckActions {
		st.endRound(s)
	}
}

// endRound scores every non-voided hand, awards the top and second sum
// groups, publishes the result and deals the next round.
func (st *PushLuckState) endRound(s *Session) {
	result := RoundResult{Round: st.Round, Sums: map[string]int{}, Awards: map[string]int{}}

	for _, id := range st.Order {
		p, ok := s.FindPlayer(id)
		if !ok {
			continue
		}
		voided := false
		sum := 0
		for _, c := range p.Hand {
			if c.Effect == zeroEffect {
				voided = true
				break
			}
			sum += c.Value
		}
		if !voided {
			result.Sums[id] = sum
		}
	}

	// distinct qualifying sums, descending; ties share the award
	qualifying := []int{}
	seen := map[int]bool{}
	for _, sum := range result.Sums {
		if sum >= pushLuckThreshold && !seen[sum] {
			seen[sum] = true
			qualifying = append(qualifying, sum)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(qualifying)))

	for id, sum := range result.Sums {
		if len(qualifying) > 0 && sum == qualifying[0] {
			result.Awards[id] = pushLuckTopAward
		} else if len(qualifying) > 1 && sum == qualifying[1] {
			result.Awards[id] = pushLuckSecond
		}
	}
	for id, points := range result.Awards {
		st.Scores[id] += points
	}

	st.Results = append(st.Results, result)
	s.AppendEvent("round-end", "", fmt.Sprintf("round %d scored", st.Round))

	st.Round++
	if st.Round > st.MaxRounds {
		st.Status = StatusFinished
		s.Phase = PhaseFinished
		s.AppendEvent("match-end", "", "final round complete")
		return
	}

	// rotate the starting seat and redeal; a short supply deals short
	// hands rather than blocking the round
	st.StartIdx = (st.StartIdx + 1) % len(st.Order)
	st.TurnIdx = st.StartIdx
	st.TurnCount = 0
	for _, id := range st.Order {
		if p, ok := s.FindPlayer(id); ok {
			s.Table = append(s.Table, p.Hand...)
			p.Hand = []deck.Card{}
		}
	}
	for _, id := range st.Order {
		if p, ok := s.FindPlayer(id); ok {
			p.Hand = append(p.Hand, s.draw(pushLuckHandSize)...)
		}
	}
}
