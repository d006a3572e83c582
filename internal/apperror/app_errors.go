package apperror

import "errors"

// Construction errors. The input is unusable and must not be retried as is.
var (
	ErrMalformedBoard    = errors.New("malformed board")
	ErrInconsistentState = errors.New("inconsistent game state")
)

// Usage errors. Front ends recover from these by asking again.
var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrNotYourTurn  = errors.New("it's not your turn")
)

var (
	ErrGameNotOver      = errors.New("game is not over yet")
	ErrNoMovesAvailable = errors.New("no moves available")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameNotFound     = errors.New("game not found")

	ErrUnknownPlayerKind = errors.New("unknown player kind")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrMalformedTree     = errors.New("malformed explanation tree")
	ErrQuit              = errors.New("player quit")
)
