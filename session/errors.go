package session

import (
	"errors"
	"fmt"
)

// Rule violations. All are rejected before any mutation takes effect.
var (
	ErrNotYourTurn         = errors.New("not your turn")
	ErrInvalidIndex        = errors.New("invalid index")
	ErrInvalidValue        = errors.New("invalid value")
	ErrInsufficientPlayers = fmt.Errorf("minimum of %d active players required", minPlayers)
	ErrTooManyPlayers      = fmt.Errorf("maximum of %d players allowed", maxPlayers)
	ErrNotHost             = errors.New("only the host may do that")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrSpectator           = errors.New("spectators cannot act on the table")
	ErrGameOver            = errors.New("game is already over")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrWrongMode           = errors.New("action does not belong to the active game mode")
	ErrEmptyPile           = errors.New("pile is empty")
	ErrBoardLocked         = errors.New("board is locked")
	ErrCardRevealed        = errors.New("card is already revealed")
	ErrUnknownCard         = errors.New("unknown card")
	ErrNoDraft             = errors.New("no draft template to promote")
)

// ConflictError reports a stale expectedVersion. The caller recovers by
// re-reading current state and retrying; the session is untouched.
type ConflictError struct {
	Expected int
	Current  int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: expected %d, session is at %d", e.Expected, e.Current)
}

// IsConflict reports whether err is a version conflict.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
