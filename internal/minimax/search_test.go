package minimax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	exhaustive = Config{DepthLimit: Unlimited, UsePruning: false}
	pruned     = Config{DepthLimit: Unlimited, UsePruning: true}
)

func mustState(t *testing.T, cells string, starting entity.Mark) entity.GameState {
	t.Helper()

	state, err := entity.NewGameState(cells, starting)
	require.NoError(t, err)

	return state
}

func reachable(starting entity.Mark) []entity.GameState {
	seen := make(map[entity.Board]struct{})
	var states []entity.GameState

	var walk func(state entity.GameState)
	walk = func(state entity.GameState) {
		if _, ok := seen[state.Board()]; ok {
			return
		}
		seen[state.Board()] = struct{}{}
		states = append(states, state)

		for _, move := range state.PossibleMoves() {
			walk(move.After)
		}
	}
	walk(entity.NewGame(starting))

	return states
}

func countTree(state entity.GameState) int {
	nodes := 1
	for _, move := range state.PossibleMoves() {
		nodes += countTree(move.After)
	}

	return nodes
}

// recorder counts observer events.
type recorder struct {
	entered int
	left    int
	skipped int
	depth   int
	maxDeep int
}

func (that *recorder) Enter(entity.GameState, *entity.Move) {
	that.entered++
	that.depth++
	that.maxDeep = max(that.maxDeep, that.depth)
}

func (that *recorder) Leave(float64, Kind) {
	that.left++
	that.depth--
}

func (that *recorder) Skip(moves []entity.Move) {
	that.skipped += len(moves)
}

func TestFindBestMove(t *testing.T) {
	for _, config := range []Config{exhaustive, pruned} {
		t.Run(config.String(), func(t *testing.T) {
			t.Run("Completes three in a row", func(t *testing.T) {
				// Given: X can finish the top row on cell 2
				state := mustState(t, "XX OO    ", entity.MarkX)

				// When: searching for X
				move, ok := FindBestMove(state, config)

				// Then: cell 2 is chosen
				require.True(t, ok)
				assert.Equal(t, 2, move.Cell)
				assert.Equal(t, entity.MarkX, move.Mark)
			})

			t.Run("Takes the win that also blocks", func(t *testing.T) {
				state := mustState(t, "OO  X X  ", entity.MarkX)

				move, ok := FindBestMove(state, config)

				require.True(t, ok)
				assert.Equal(t, 2, move.Cell)
			})

			t.Run("Blocks the opponent's line", func(t *testing.T) {
				// Given: O threatens the top row and X has no win of its own
				state := mustState(t, "OO  X    ", entity.MarkO)

				// When: searching for X
				move, ok := FindBestMove(state, config)

				// Then: X blocks on cell 2
				require.True(t, ok)
				assert.Equal(t, 2, move.Cell)
			})

			t.Run("Never returns nothing on an empty board", func(t *testing.T) {
				move, ok := FindBestMove(entity.NewGame(entity.MarkX), config)

				require.True(t, ok)
				assert.Equal(t, entity.MarkX, move.Mark)
			})
		})
	}

	t.Run("Returns nothing when the game is over", func(t *testing.T) {
		_, ok := FindBestMove(mustState(t, "XXXOO    ", entity.MarkX), pruned)
		assert.False(t, ok)

		_, ok = FindBestMove(mustState(t, "XOXOOXXXO", entity.MarkX), pruned)
		assert.False(t, ok)
	})

	t.Run("First move wins ties in search order", func(t *testing.T) {
		// Given: every opening draws under perfect play
		state := entity.NewGame(entity.MarkX)

		// When: searching exhaustively
		move, ok := FindBestMove(state, exhaustive)

		// Then: the centre, first in search order, is kept
		require.True(t, ok)
		assert.Equal(t, entity.CenterCell, move.Cell)
	})
}

func TestSearch_Stats(t *testing.T) {
	t.Run("Exhaustive search visits the whole tree", func(t *testing.T) {
		// Given: the empty board
		state := entity.NewGame(entity.MarkX)

		// When: searching without pruning
		result := Search(state, entity.MarkX, exhaustive, nil)

		// Then: every node of the game tree is entered once and nothing is cut
		assert.Equal(t, countTree(state), result.Stats.NodesVisited)
		assert.Zero(t, result.Stats.Cutoffs)
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, KindTie, result.Kind)
	})

	t.Run("Pruning visits fewer nodes", func(t *testing.T) {
		state := entity.NewGame(entity.MarkX)

		full := Search(state, entity.MarkX, exhaustive, nil)
		cut := Search(state, entity.MarkX, pruned, nil)

		assert.Less(t, cut.Stats.NodesVisited, full.Stats.NodesVisited)
		assert.Positive(t, cut.Stats.Cutoffs)
		assert.Equal(t, full.Score, cut.Score)
	})

	t.Run("Terminal root counts one node", func(t *testing.T) {
		result := Search(mustState(t, "XXXOO    ", entity.MarkX), entity.MarkO, pruned, nil)

		assert.Nil(t, result.Move)
		assert.Equal(t, -1.0, result.Score)
		assert.Equal(t, KindLoss, result.Kind)
		assert.Equal(t, Stats{NodesVisited: 1}, result.Stats)
	})
}

func TestSearch_Bounded(t *testing.T) {
	t.Run("Depth zero scores candidates with the heuristic", func(t *testing.T) {
		// Given: the empty board and no look-ahead
		state := entity.NewGame(entity.MarkX)

		// When: searching with depth 0
		result := Search(state, entity.MarkX, Config{DepthLimit: 0}, nil)

		// Then: each candidate is evaluated once and the centre scores best
		require.NotNil(t, result.Move)
		assert.Equal(t, entity.CenterCell, result.Move.Cell)
		assert.InDelta(t, centerWeight, result.Score, 1e-9)
		assert.Equal(t, KindHeuristic, result.Kind)
		assert.Equal(t, 1+9, result.Stats.NodesVisited)
	})

	t.Run("Heuristic scores may be fractional", func(t *testing.T) {
		state := mustState(t, "X        ", entity.MarkX)

		result := Search(state, entity.MarkO, Config{DepthLimit: 0}, nil)

		require.NotNil(t, result.Move)
		assert.Equal(t, entity.CenterCell, result.Move.Cell)
		assert.InDelta(t, centerWeight-cornerWeight, result.Score, 1e-9)
	})

	t.Run("Terminal positions beat the depth limit", func(t *testing.T) {
		// Given: an immediate win is available
		state := mustState(t, "XX OO    ", entity.MarkX)

		// When: searching with no look-ahead
		move, ok := FindBestMove(state, Config{DepthLimit: 0})

		// Then: the win is still seen because terminal nodes are scored exactly
		require.True(t, ok)
		assert.Equal(t, 2, move.Cell)
	})

	t.Run("Normal difficulty limits the depth", func(t *testing.T) {
		state := entity.NewGame(entity.MarkX)

		bounded := Search(state, entity.MarkX, DifficultyNormal.Config(), nil)
		full := Search(state, entity.MarkX, exhaustive, nil)

		assert.Less(t, bounded.Stats.NodesVisited, full.Stats.NodesVisited)
		assert.NotNil(t, bounded.Move)
	})
}

func TestSearch_Observer(t *testing.T) {
	for _, config := range []Config{exhaustive, pruned, {DepthLimit: 2, UsePruning: true}} {
		t.Run(config.String(), func(t *testing.T) {
			// Given: a recording observer
			observer := &recorder{}
			state := mustState(t, "X   O    ", entity.MarkX)

			// When: searching
			result := Search(state, entity.MarkX, config, observer)

			// Then: every visited node is entered and left exactly once
			assert.Equal(t, result.Stats.NodesVisited, observer.entered)
			assert.Equal(t, observer.entered, observer.left)
			assert.Zero(t, observer.depth)
			assert.LessOrEqual(t, observer.maxDeep, 1+state.Board().EmptyCount())

			if !config.UsePruning {
				assert.Zero(t, observer.skipped)
			}
		})
	}
}

func TestSearch_PruningKeepsTheBestMove(t *testing.T) {
	if testing.Short() {
		t.Skip("walks every reachable position")
	}

	configs := []struct {
		plain Config
		cut   Config
	}{
		{plain: exhaustive, cut: pruned},
		{plain: Config{DepthLimit: 3}, cut: Config{DepthLimit: 3, UsePruning: true}},
	}

	for _, pair := range configs {
		t.Run(pair.plain.String(), func(t *testing.T) {
			for _, state := range reachable(entity.MarkX) {
				if state.GameOver() {
					continue
				}

				plain, ok := FindBestMove(state, pair.plain)
				require.True(t, ok, state.String())

				cut, ok := FindBestMove(state, pair.cut)
				require.True(t, ok, state.String())

				require.Equal(t, plain.Cell, cut.Cell, state.String())
			}
		})
	}
}

// play follows every opponent reply while engine answers with its best move.
func play(t *testing.T, state entity.GameState, engine entity.Mark, config Config) (games int) {
	t.Helper()

	if state.GameOver() {
		score, err := state.EvaluateTerminalScore(engine)
		require.NoError(t, err)
		require.GreaterOrEqual(t, score, 0, "engine lost at %s", state)

		return 1
	}

	if state.CurrentMark() == engine {
		move, ok := FindBestMove(state, config)
		require.True(t, ok)

		return play(t, move.After, engine, config)
	}

	for _, move := range state.PossibleMoves() {
		games += play(t, move.After, engine, config)
	}

	return games
}

func TestSearch_NeverLoses(t *testing.T) {
	configs := []Config{pruned}
	if !testing.Short() {
		configs = append(configs, exhaustive)
	}

	for _, config := range configs {
		for _, engine := range []entity.Mark{entity.MarkX, entity.MarkO} {
			for _, starting := range []entity.Mark{entity.MarkX, entity.MarkO} {
				name := config.String() + " engine " + string(engine) + " starting " + string(starting)

				t.Run(name, func(t *testing.T) {
					games := play(t, entity.NewGame(starting), engine, config)

					assert.Positive(t, games)
				})
			}
		}
	}
}

func TestSearch_MinimizingRoot(t *testing.T) {
	// Given: X to move but the search optimises for O
	state := mustState(t, "XX OO    ", entity.MarkX)

	// When: searching for O
	result := Search(state, entity.MarkO, pruned, nil)

	// Then: X's winning reply is assumed and the score is a loss for O
	require.NotNil(t, result.Move)
	assert.Equal(t, 2, result.Move.Cell)
	assert.Equal(t, -1.0, result.Score)
	assert.Equal(t, KindLoss, result.Kind)
}
