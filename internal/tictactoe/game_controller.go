package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn plays mark on cell in a stored session and refreshes its status.
// The session is left untouched when the turn is rejected.
func MakeTurn(session *entity.Session, mark entity.Mark, cell int) error {
	if session.IsFinished() {
		return apperror.ErrGameFinished
	}

	state, err := session.State()
	if err != nil {
		return fmt.Errorf("failed to restore game: %w", err)
	}

	if err = validateMove(state, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	move, err := state.MoveTo(cell)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	session.Update(move.After)

	return nil
}

// validateMove - checks if the mark may move.
func validateMove(state entity.GameState, mark entity.Mark) error {
	if state.GameOver() {
		return apperror.ErrGameFinished
	}

	if state.CurrentMark() != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}
