package session

import "github.com/Sieru626/boardgame-venue-sub000/deck"

// Project returns the masked view of a session for one viewer. Every
// other player's hand is replaced element-for-element with opaque
// placeholders: counts are preserved, identity is not. Shared zones and
// the viewer's own hand pass through untouched. The projection is a deep
// copy; callers may serialize it freely.
func Project(s *Session, viewerID string) *Session {
	masked := s.Clone()
	for _, p := range masked.Players {
		if p.ID == viewerID {
			continue
		}
		for i := range p.Hand {
			p.Hand[i] = deck.Hidden()
		}
	}
	return masked
}
