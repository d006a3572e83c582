package minimax

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

const (
	centerWeight = 0.2
	cornerWeight = 0.05
)

// Heuristic estimates a non-terminal board from mark's point of view.
// Only the centre and the corners count; it breaks ties, it proves nothing.
func Heuristic(board entity.Board, mark entity.Mark) float64 {
	score := 0.0

	switch board[entity.CenterCell] {
	case mark:
		score += centerWeight
	case mark.Other():
		score -= centerWeight
	}

	own, opponent := 0, 0
	for _, cell := range entity.CornerCells {
		switch board[cell] {
		case mark:
			own++
		case mark.Other():
			opponent++
		}
	}

	return score + cornerWeight*float64(own-opponent)
}
