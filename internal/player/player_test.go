package player

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

func mustState(t *testing.T, cells string, starting entity.Mark) entity.GameState {
	t.Helper()

	state, err := entity.NewGameState(cells, starting)
	require.NoError(t, err)

	return state
}

func seeded() Option {
	return WithRand(rand.New(rand.NewSource(42)))
}

func TestNew(t *testing.T) {
	t.Run("Builds every kind", func(t *testing.T) {
		for _, kind := range []Kind{KindHuman, KindRandom, KindMinimax} {
			player, err := New(kind, entity.MarkO)

			require.NoError(t, err)
			assert.Equal(t, entity.MarkO, player.Mark())
		}
	})

	t.Run("Unknown kind", func(t *testing.T) {
		_, err := New("oracle", entity.MarkX)

		assert.ErrorIs(t, err, apperror.ErrUnknownPlayerKind)
	})

	t.Run("Invalid mark", func(t *testing.T) {
		_, err := New(KindRandom, entity.NoMark)

		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Minimax ")
	require.NoError(t, err)
	assert.Equal(t, KindMinimax, kind)

	_, err = ParseKind("alien")
	assert.ErrorIs(t, err, apperror.ErrUnknownPlayerKind)
}

func TestMakeMove_Contract(t *testing.T) {
	for _, kind := range []Kind{KindHuman, KindRandom, KindMinimax} {
		t.Run(string(kind), func(t *testing.T) {
			player, err := New(kind, entity.MarkO, seeded(), WithInput(strings.NewReader("5\n"), &bytes.Buffer{}))
			require.NoError(t, err)

			// Given: X to move
			_, err = player.MakeMove(context.Background(), entity.NewGame(entity.MarkX))

			// Then: O is refused
			assert.ErrorIs(t, err, apperror.ErrNotYourTurn)

			// Given: a finished game with O nominally to move
			_, err = player.MakeMove(context.Background(), mustState(t, "XXXOO    ", entity.MarkX))

			// Then: there is nothing to play
			assert.ErrorIs(t, err, apperror.ErrNoMovesAvailable)
		})
	}
}

func TestRandomPlayer(t *testing.T) {
	// Given: a seeded random player
	player, err := New(KindRandom, entity.MarkX, seeded())
	require.NoError(t, err)

	state := mustState(t, "XO XO    ", entity.MarkX)
	empty := map[int]struct{}{2: {}, 5: {}, 6: {}, 7: {}, 8: {}}

	// When: asking repeatedly
	seen := map[int]struct{}{}
	for range 100 {
		move, err := player.MakeMove(context.Background(), state)
		require.NoError(t, err)

		// Then: only empty cells come back
		assert.Contains(t, empty, move.Cell)
		assert.Equal(t, entity.MarkX, move.Mark)
		seen[move.Cell] = struct{}{}
	}

	assert.Greater(t, len(seen), 1)
}

func TestSearchPlayer(t *testing.T) {
	t.Run("Wins when it can", func(t *testing.T) {
		player, err := New(KindMinimax, entity.MarkX)
		require.NoError(t, err)

		move, err := player.MakeMove(context.Background(), mustState(t, "XX OO    ", entity.MarkX))

		require.NoError(t, err)
		assert.Equal(t, 2, move.Cell)

		reporter, ok := player.(StatsReporter)
		require.True(t, ok)
		assert.Positive(t, reporter.LastStats().NodesVisited)
	})

	t.Run("Uses the configured strength", func(t *testing.T) {
		player, err := New(KindMinimax, entity.MarkX, WithConfig(minimax.Config{DepthLimit: 0}))
		require.NoError(t, err)

		_, err = player.MakeMove(context.Background(), entity.NewGame(entity.MarkX))
		require.NoError(t, err)

		assert.Equal(t, minimax.Stats{NodesVisited: 10}, player.(StatsReporter).LastStats())
	})

	t.Run("Random opening skips the search", func(t *testing.T) {
		player, err := New(KindMinimax, entity.MarkO, seeded(), WithRandomOpening(true))
		require.NoError(t, err)

		move, err := player.MakeMove(context.Background(), entity.NewGame(entity.MarkO))

		require.NoError(t, err)
		assert.Equal(t, entity.MarkO, move.Mark)
		assert.Zero(t, player.(StatsReporter).LastStats())
	})

	t.Run("Opening without randomness is deterministic", func(t *testing.T) {
		player, err := New(KindMinimax, entity.MarkX)
		require.NoError(t, err)

		move, err := player.MakeMove(context.Background(), entity.NewGame(entity.MarkX))

		require.NoError(t, err)
		assert.Equal(t, entity.CenterCell, move.Cell)
	})
}

func TestComputer_Delay(t *testing.T) {
	t.Run("Cancelled while thinking", func(t *testing.T) {
		player, err := New(KindRandom, entity.MarkX, WithDelay(time.Hour))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = player.MakeMove(ctx, entity.NewGame(entity.MarkX))

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Waits before answering", func(t *testing.T) {
		player, err := New(KindRandom, entity.MarkX, WithDelay(20*time.Millisecond))
		require.NoError(t, err)

		started := time.Now()
		_, err = player.MakeMove(context.Background(), entity.NewGame(entity.MarkX))

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)
	})
}

func TestHumanPlayer(t *testing.T) {
	t.Run("Re-prompts until a free cell is given", func(t *testing.T) {
		// Given: cell 1 taken and some bad input first
		out := &bytes.Buffer{}
		player, err := New(KindHuman, entity.MarkO, WithInput(strings.NewReader("abc\n0\n10\n1\n 6 \n"), out))
		require.NoError(t, err)

		state := mustState(t, "X        ", entity.MarkX)

		// When: reading the move
		move, err := player.MakeMove(context.Background(), state)

		// Then: the first usable answer wins
		require.NoError(t, err)
		assert.Equal(t, 5, move.Cell)
		assert.Equal(t, entity.MarkO, move.Mark)

		assert.Equal(t, 3, strings.Count(out.String(), "Enter a number 1-9"))
		assert.Equal(t, 1, strings.Count(out.String(), "Cell occupied. Pick another."))
		assert.Equal(t, 5, strings.Count(out.String(), "Player O move (1-9): "))
	})

	t.Run("Reads consecutive moves from one input", func(t *testing.T) {
		player, err := New(KindHuman, entity.MarkX, WithInput(strings.NewReader("5\n1\n"), &bytes.Buffer{}))
		require.NoError(t, err)

		first, err := player.MakeMove(context.Background(), entity.NewGame(entity.MarkX))
		require.NoError(t, err)
		assert.Equal(t, 4, first.Cell)

		reply, err := first.After.MoveTo(8)
		require.NoError(t, err)

		second, err := player.MakeMove(context.Background(), reply.After)
		require.NoError(t, err)
		assert.Equal(t, 0, second.Cell)
	})

	for _, input := range []string{"q\n", "QUIT\n", "exit\n", ""} {
		t.Run("Quits on "+strings.TrimSpace(input), func(t *testing.T) {
			player, err := New(KindHuman, entity.MarkX, WithInput(strings.NewReader(input), &bytes.Buffer{}))
			require.NoError(t, err)

			_, err = player.MakeMove(context.Background(), entity.NewGame(entity.MarkX))

			assert.ErrorIs(t, err, apperror.ErrQuit)
		})
	}
}
