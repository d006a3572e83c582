package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// GameState is an immutable snapshot of a game. Derived facts are computed once at
// construction; a new state is produced for every move.
type GameState struct {
	board        Board
	starting     Mark
	current      Mark
	winner       Mark
	winningCells [3]int
	tie          bool
}

// NewGame returns the empty board with the given mark to move first.
func NewGame(starting Mark) GameState {
	if !starting.Valid() {
		starting = MarkX
	}

	return newState(Board{}, starting)
}

// NewGameState parses the canonical board string and validates the position.
func NewGameState(cells string, starting Mark) (GameState, error) {
	board, err := ParseBoard(cells)
	if err != nil {
		return GameState{}, err
	}

	return FromBoard(board, starting)
}

// FromBoard validates a board against the turn order implied by the starting mark.
func FromBoard(board Board, starting Mark) (GameState, error) {
	for i, cell := range board {
		if cell != NoMark && !cell.Valid() {
			return GameState{}, fmt.Errorf("%w: invalid mark %q at cell %d", apperror.ErrMalformedBoard, string(cell), i)
		}
	}

	if err := validate(board, starting); err != nil {
		return GameState{}, err
	}

	return newState(board, starting), nil
}

func validate(board Board, starting Mark) error {
	if !starting.Valid() {
		return fmt.Errorf("%w: starting mark %q", apperror.ErrInconsistentState, string(starting))
	}

	own, other := board.Count(starting), board.Count(starting.Other())

	// the starting mark is never behind and at most one ahead
	if own < other || own-other > 1 {
		return fmt.Errorf("%w: %d %s vs %d %s with %s starting",
			apperror.ErrInconsistentState, own, starting, other, starting.Other(), starting)
	}

	ownWins, otherWins := board.wins(starting), board.wins(starting.Other())
	switch {
	case ownWins && otherWins:
		return fmt.Errorf("%w: both marks have a winning line", apperror.ErrInconsistentState)
	case ownWins && own != other+1:
		return fmt.Errorf("%w: %s won but the move count says otherwise", apperror.ErrInconsistentState, starting)
	case otherWins && own != other:
		return fmt.Errorf("%w: %s won but the move count says otherwise", apperror.ErrInconsistentState, starting.Other())
	}

	return nil
}

func newState(board Board, starting Mark) GameState {
	state := GameState{
		board:    board,
		starting: starting,
		current:  starting,
	}

	if board.Count(MarkX) != board.Count(MarkO) {
		state.current = starting.Other()
	}

	if winner, cells, ok := board.winningLine(); ok {
		state.winner = winner
		state.winningCells = cells
	} else {
		state.tie = board.EmptyCount() == 0
	}

	return state
}

func (that GameState) Board() Board {
	return that.board
}

func (that GameState) StartingMark() Mark {
	return that.starting
}

// CurrentMark is the mark to move next.
func (that GameState) CurrentMark() Mark {
	return that.current
}

func (that GameState) Winner() (Mark, bool) {
	return that.winner, that.winner != NoMark
}

// WinningCells returns the first complete line, or nil when nobody has won.
func (that GameState) WinningCells() []int {
	if that.winner == NoMark {
		return nil
	}

	return []int{that.winningCells[0], that.winningCells[1], that.winningCells[2]}
}

func (that GameState) Tie() bool {
	return that.tie
}

func (that GameState) GameOver() bool {
	return that.winner != NoMark || that.tie
}

func (that GameState) NotStarted() bool {
	return that.board.EmptyCount() == BoardSize
}

// PossibleMoves lists one move per empty cell in ascending order, none once the game is over.
func (that GameState) PossibleMoves() []Move {
	if that.GameOver() {
		return nil
	}

	moves := make([]Move, 0, that.board.EmptyCount())
	for cell := range that.board {
		if that.board.IsEmpty(cell) {
			moves = append(moves, that.move(cell))
		}
	}

	return moves
}

// MoveTo places the current mark on cell. The receiver is left untouched.
func (that GameState) MoveTo(cell int) (Move, error) {
	if cell < 0 || cell >= BoardSize {
		return Move{}, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.GameOver() {
		return Move{}, apperror.ErrGameFinished
	}

	if !that.board.IsEmpty(cell) {
		return Move{}, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return that.move(cell), nil
}

func (that GameState) move(cell int) Move {
	next := that.board
	next[cell] = that.current

	return Move{
		Mark:   that.current,
		Cell:   cell,
		Before: that,
		After:  newState(next, that.starting),
	}
}

// EvaluateTerminalScore is 1 when mark won, -1 when it lost and 0 on a tie.
func (that GameState) EvaluateTerminalScore(mark Mark) (int, error) {
	if !that.GameOver() {
		return 0, apperror.ErrGameNotOver
	}

	switch that.winner {
	case NoMark:
		return 0, nil
	case mark:
		return 1, nil
	default:
		return -1, nil
	}
}

func (that GameState) String() string {
	return fmt.Sprintf("%q (%s to move)", that.board.String(), that.current)
}
