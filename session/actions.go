package session

import (
	"fmt"
	"math/rand"

	"github.com/Sieru626/boardgame-venue-sub000/deck"
)

// Join seats a new player, or marks a returning one connected. A player
// joining mid-match is seated as a spectator so dealing is undisturbed.
func (s *Session) Join(id, name string) error {
	if p, ok := s.FindPlayer(id); ok {
		p.Connected = true
		if name != "" {
			p.Name = name
		}
		s.AppendEvent("rejoin", id, p.Name+" reconnected")
		return nil
	}
	if len(s.Players) >= maxPlayers {
		return ErrTooManyPlayers
	}
	p := &Player{
		ID:        id,
		Name:      name,
		Connected: true,
		Spectator: s.Phase == PhasePlaying,
		Hand:      []deck.Card{},
	}
	s.Players = append(s.Players, p)
	s.AppendEvent("join", id, name+" joined")
	return nil
}

// SetConnected flips a player's connection status.
func (s *Session) SetConnected(id string, connected bool) error {
	p, ok := s.FindPlayer(id)
	if !ok {
		return ErrUnknownPlayer
	}
	p.Connected = connected
	return nil
}

// ToggleSpectator flips the spectator flag. Players may toggle themselves;
// only the host may toggle someone else. Not allowed mid-match, because
// dealing and turn order are fixed at instantiation.
func (s *Session) ToggleSpectator(actorID, targetID string) error {
	if targetID == "" {
		targetID = actorID
	}
	if targetID != actorID && actorID != s.HostID {
		return ErrNotHost
	}
	if s.Phase == PhasePlaying {
		return ErrGameInProgress
	}
	p, ok := s.FindPlayer(targetID)
	if !ok {
		return ErrUnknownPlayer
	}
	p.Spectator = !p.Spectator
	return nil
}

// Chat appends a chat line to the room log.
func (s *Session) Chat(actorID, text string) error {
	if _, ok := s.FindPlayer(actorID); !ok {
		return ErrUnknownPlayer
	}
	s.AppendEvent("chat", actorID, text)
	return nil
}

// Roll rolls a six-sided die into the room log.
func (s *Session) Roll(actorID string) error {
	p, ok := s.FindPlayer(actorID)
	if !ok {
		return ErrUnknownPlayer
	}
	s.AppendEvent("roll", actorID, fmt.Sprintf("%s rolled a %d", p.Name, rand.Intn(6)+1))
	return nil
}

// DrawCard moves the top of the draw pile into the actor's hand. Free
// tabletop play only; mode engines own their zones during a match.
func (s *Session) DrawCard(actorID string) error {
	p, ok := s.FindPlayer(actorID)
	if !ok {
		return ErrUnknownPlayer
	}
	if p.Spectator {
		return ErrSpectator
	}
	if s.Mode != "" {
		return ErrWrongMode
	}
	cards := s.DrawPile.Deal(1)
	if len(cards) == 0 {
		return ErrEmptyPile
	}
	p.Hand = append(p.Hand, cards...)
	return nil
}

// PlayCard moves a hand card onto the table. Free tabletop play only.
func (s *Session) PlayCard(actorID string, pos int) error {
	p, ok := s.FindPlayer(actorID)
	if !ok {
		return ErrUnknownPlayer
	}
	if p.Spectator {
		return ErrSpectator
	}
	if s.Mode != "" {
		return ErrWrongMode
	}
	if pos < 0 || pos >= len(p.Hand) {
		return ErrInvalidIndex
	}
	card := p.Hand[pos]
	p.Hand = append(p.Hand[:pos], p.Hand[pos+1:]...)
	s.Table = append(s.Table, card)
	return nil
}

// ShuffleDraw shuffles the draw pile. Host only.
func (s *Session) ShuffleDraw(actorID string) error {
	if actorID != s.HostID {
		return ErrNotHost
	}
	s.DrawPile.Shuffle()
	return nil
}

// Reset returns the room to the lobby: zones and hands cleared, mode state
// dropped, templates kept. Host only.
func (s *Session) Reset(actorID string) error {
	if actorID != s.HostID {
		return ErrNotHost
	}
	s.resetZones()
	s.clearModes()
	s.Mode = ""
	s.Phase = PhaseLobby
	s.AppendEvent("reset", actorID, "room reset")
	return nil
}
