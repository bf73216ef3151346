package session

import "time"

// NoVersionCheck skips the optimistic version comparison, for actions that
// carry no expectedVersion (joins, chat, reconnects, scheduled messages).
const NoVersionCheck = -1

// Apply is the concurrency controller. It runs fn against a clone of s and
// returns the successor state at version+1. If expectedVersion is supplied
// and does not match, it fails with a ConflictError and no changes: of two
// concurrent actions against the same prior version, the second is
// rejected, never silently merged. The caller must persist the returned
// state before broadcasting it.
func Apply(s *Session, expectedVersion int, fn func(*Session) error) (*Session, error) {
	if expectedVersion != NoVersionCheck && expectedVersion != s.Version {
		return nil, &ConflictError{Expected: expectedVersion, Current: s.Version}
	}

	next := s.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	next.Version = s.Version + 1
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}
