package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Session is the stored form of one game played against the engine.
// It only lives until the game ends.
type Session struct {
	ID           string `json:"id"`
	Board        string `json:"board"`
	StartingMark Mark   `json:"starting_mark"`
	HumanMark    Mark   `json:"human_mark"`
	Difficulty   string `json:"difficulty"`
	Turn         Mark   `json:"player_turn"`
	Winner       string `json:"winner"`
	WinningCells []int  `json:"winning_cells,omitempty"`
	Status       string `json:"status"`
}

func NewSession(id string, humanMark, startingMark Mark, difficulty string) *Session {
	session := &Session{
		ID:           id,
		StartingMark: startingMark,
		HumanMark:    humanMark,
		Difficulty:   difficulty,
	}
	session.Update(NewGame(startingMark))

	return session
}

// State rebuilds and validates the game state stored in the session.
func (that *Session) State() (GameState, error) {
	state, err := NewGameState(that.Board, that.StartingMark)
	if err != nil {
		return GameState{}, fmt.Errorf("session %s: %w", that.ID, err)
	}

	return state, nil
}

// Update replaces the stored position with state and refreshes turn and result.
func (that *Session) Update(state GameState) {
	that.Board = state.Board().String()
	that.WinningCells = state.WinningCells()

	winner, won := state.Winner()
	switch {
	// one player wins
	case won:
		that.Winner = string(winner)
		that.Status = StatusFinished
		that.Turn = NoMark
	// tie
	case state.Tie():
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = NoMark
	// game continue
	default:
		that.Winner = ""
		that.Status = StatusOngoing
		that.Turn = state.CurrentMark()
	}
}

func (that *Session) BotMark() Mark {
	return that.HumanMark.Other()
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Session) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark()
}

func (that *Session) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
