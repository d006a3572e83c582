package minimax

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// searchOrder visits the centre, then corners, then edges.
var searchOrder = [entity.BoardSize]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// OrderMoves returns the state's legal moves in search order.
func OrderMoves(state entity.GameState) []entity.Move {
	moves := state.PossibleMoves()
	if len(moves) == 0 {
		return nil
	}

	var byCell [entity.BoardSize]*entity.Move
	for i := range moves {
		byCell[moves[i].Cell] = &moves[i]
	}

	ordered := make([]entity.Move, 0, len(moves))
	for _, cell := range searchOrder {
		if move := byCell[cell]; move != nil {
			ordered = append(ordered, *move)
		}
	}

	return ordered
}
