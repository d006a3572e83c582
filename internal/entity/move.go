package entity

// Move pairs a source state, the target cell and the resulting state.
// Only GameState.MoveTo and GameState.PossibleMoves create moves.
type Move struct {
	Mark   Mark
	Cell   int
	Before GameState
	After  GameState
}
