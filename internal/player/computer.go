package player

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// StatsReporter is implemented by players that search.
type StatsReporter interface {
	LastStats() minimax.Stats
}

type computer struct {
	mark  entity.Mark
	delay time.Duration
}

func (that computer) Mark() entity.Mark {
	return that.mark
}

// think waits for the configured delay or until ctx is done.
func (that computer) think(ctx context.Context) error {
	if that.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(that.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type randomPlayer struct {
	computer
	rand *rand.Rand
}

func (that *randomPlayer) MakeMove(ctx context.Context, state entity.GameState) (entity.Move, error) {
	if err := checkTurn(that.mark, state); err != nil {
		return entity.Move{}, err
	}

	if err := that.think(ctx); err != nil {
		return entity.Move{}, err
	}

	move, ok := randomMove(that.rand, state)
	if !ok {
		return entity.Move{}, apperror.ErrNoMovesAvailable
	}

	return move, nil
}

func randomMove(r *rand.Rand, state entity.GameState) (entity.Move, bool) {
	moves := state.PossibleMoves()
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	return moves[r.Intn(len(moves))], true
}

// searchPlayer is not safe for concurrent use.
type searchPlayer struct {
	computer
	config        minimax.Config
	randomOpening bool
	rand          *rand.Rand
	logger        *slog.Logger
	stats         minimax.Stats
}

func (that *searchPlayer) MakeMove(ctx context.Context, state entity.GameState) (entity.Move, error) {
	log := that.logger.With("method", "MakeMove")

	if err := checkTurn(that.mark, state); err != nil {
		return entity.Move{}, err
	}

	if err := that.think(ctx); err != nil {
		return entity.Move{}, err
	}

	if that.randomOpening && state.NotStarted() {
		that.stats = minimax.Stats{}

		move, ok := randomMove(that.rand, state)
		if !ok {
			return entity.Move{}, apperror.ErrNoMovesAvailable
		}

		log.Debug("random opening", "cell", move.Cell)

		return move, nil
	}

	result := minimax.Search(state, that.mark, that.config, nil)
	that.stats = result.Stats

	if result.Move == nil {
		return entity.Move{}, fmt.Errorf("%w: search found nothing", apperror.ErrNoMovesAvailable)
	}

	log.Debug("move chosen",
		"cell", result.Move.Cell,
		"score", result.Score,
		"kind", string(result.Kind),
		"nodes", result.Stats.NodesVisited,
		"cutoffs", result.Stats.Cutoffs,
		"config", that.config.String(),
	)

	return *result.Move, nil
}

func (that *searchPlayer) LastStats() minimax.Stats {
	return that.stats
}
