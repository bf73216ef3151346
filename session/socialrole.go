package session

import (
	"math/rand"
	"time"

	"github.com/Sieru626/boardgame-venue-sub000/deck"
	"github.com/Sieru626/boardgame-venue-sub000/template"
)

const defaultMedalThreshold = 3

var roleLetters = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// SocialRoleState drives the talk game: the host reveals scene and law
// cards, players improvise, medals are awarded by the host, first to the
// threshold wins.
type SocialRoleState struct {
	SceneDeck    deck.Deck      `json:"scene_deck"`
	LawDeck      deck.Deck      `json:"law_deck"`
	CurrentScene *deck.Card     `json:"current_scene,omitempty"`
	CurrentLaw   *deck.Card     `json:"current_law,omitempty"`
	Medals       map[string]int `json:"medals"`
	TimerStart   time.Time      `json:"timer_start"`
	TimerSeconds int            `json:"timer_seconds,omitempty"`
	Threshold    int            `json:"threshold"`
	Status       string         `json:"status"`
	WinnerID     string         `json:"winner_id,omitempty"`
}

func (st *SocialRoleState) clone() *SocialRoleState {
	if st == nil {
		return nil
	}
	next := *st
	next.SceneDeck = append(deck.Deck{}, st.SceneDeck...)
	next.LawDeck = append(deck.Deck{}, st.LawDeck...)
	if st.CurrentScene != nil {
		c := *st.CurrentScene
		next.CurrentScene = &c
	}
	if st.CurrentLaw != nil {
		c := *st.CurrentLaw
		next.CurrentLaw = &c
	}
	next.Medals = map[string]int{}
	for k, v := range st.Medals {
		next.Medals[k] = v
	}
	return &next
}

// setupSocialRole expands the scene and law piles into two independent
// shuffled decks and hands every active player a unique role letter.
func setupSocialRole(s *Session, tpl *template.Template, active []*Player) {
	scenes := deck.Deck(tpl.Expand(template.PileScene))
	laws := deck.Deck(tpl.Expand(template.PileLaw))
	scenes.Shuffle()
	laws.Shuffle()

	letters := append([]string{}, roleLetters...)
	rand.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})

	st := &SocialRoleState{
		SceneDeck: scenes,
		LawDeck:   laws,
		Medals:    map[string]int{},
		Threshold: defaultMedalThreshold,
		Status:    StatusPlaying,
	}
	for i, p := range active {
		p.Role = letters[i%len(letters)]
		st.Medals[p.ID] = 0
	}
	s.SocialRole = st
}

func (s *Session) socialRoleHost(actorID string) (*SocialRoleState, error) {
	st := s.SocialRole
	if st == nil {
		return nil, ErrWrongMode
	}
	if actorID != s.HostID {
		return nil, ErrNotHost
	}
	return st, nil
}

// SocialRoleReveal pops the next scene or law card. Host only; fails on an
// empty deck.
func (s *Session) SocialRoleReveal(actorID, pile string) error {
	st, err := s.socialRoleHost(actorID)
	if err != nil {
		return err
	}
	var source *deck.Deck
	var slot **deck.Card
	if pile == template.PileLaw {
		source, slot = &st.LawDeck, &st.CurrentLaw
	} else {
		source, slot = &st.SceneDeck, &st.CurrentScene
	}
	drawn := source.Deal(1)
	if len(drawn) == 0 {
		return ErrEmptyPile
	}
	*slot = &drawn[0]
	s.AppendEvent("reveal", actorID, pile+": "+drawn[0].Rank)
	return nil
}

// SocialRoleAward adjusts a player's medal count by delta, clamped at
// zero. The win check runs after every award: the first player to reach
// the threshold finishes the session exactly once.
func (s *Session) SocialRoleAward(actorID, targetID string, delta int) error {
	st, err := s.socialRoleHost(actorID)
	if err != nil {
		return err
	}
	p, ok := s.FindPlayer(targetID)
	if !ok {
		return ErrUnknownPlayer
	}
	next := st.Medals[targetID] + delta
	if next < 0 {
		next = 0
	}
	st.Medals[targetID] = next

	if st.Status == StatusPlaying && next >= st.Threshold {
		st.Status = StatusFinished
		st.WinnerID = targetID
		s.Phase = PhaseFinished
		s.AppendEvent("match-end", targetID, p.Name+" wins")
	}
	return nil
}

// SocialRolePurge removes a player from the active pool. Host only.
func (s *Session) SocialRolePurge(actorID, targetID string) error {
	st, err := s.socialRoleHost(actorID)
	if err != nil {
		return err
	}
	p, ok := s.FindPlayer(targetID)
	if !ok {
		return ErrUnknownPlayer
	}
	p.Out = true
	delete(st.Medals, targetID)
	s.AppendEvent("purge", targetID, p.Name+" removed from the round")
	return nil
}

// SocialRoleAccuse records an accusation to the event log only; no state
// beyond the log changes.
func (s *Session) SocialRoleAccuse(actorID, targetName, text string) error {
	if s.SocialRole == nil {
		return ErrWrongMode
	}
	p, ok := s.FindPlayer(actorID)
	if !ok {
		return ErrUnknownPlayer
	}
	s.AppendEvent("accuse", actorID, p.Name+" accuses "+targetName+": "+text)
	return nil
}

// SocialRoleStartTimer starts the round timer. Host only.
func (s *Session) SocialRoleStartTimer(actorID string, seconds int) error {
	st, err := s.socialRoleHost(actorID)
	if err != nil {
		return err
	}
	if seconds <= 0 {
		return ErrInvalidValue
	}
	st.TimerStart = time.Now().UTC()
	st.TimerSeconds = seconds
	return nil
}

// SocialRoleExtendTimer adds seconds to a running timer. Host only.
func (s *Session) SocialRoleExtendTimer(actorID string, seconds int) error {
	st, err := s.socialRoleHost(actorID)
	if err != nil {
		return err
	}
	if st.TimerStart.IsZero() || seconds <= 0 {
		return ErrInvalidValue
	}
	st.TimerSeconds += seconds
	return nil
}

// SocialRoleSetThreshold changes the medal count needed to win. Host only.
func (s *Session) SocialRoleSetThreshold(actorID string, threshold int) error {
	st, err := s.socialRoleHost(actorID)
	if err != nil {
		return err
	}
	if threshold < 1 {
		return ErrInvalidValue
	}
	st.Threshold = threshold
	return nil
}
