package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/explain"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

type Position struct {
	Board        string
	StartingMark entity.Mark
	Difficulty   string
}

type BestMove struct {
	// Move is nil when the game is already over.
	Move  *entity.Move
	Score float64
	Kind  minimax.Kind
	Stats minimax.Stats
}

type Analysis struct {
	Root       *explain.Node
	Candidates []explain.Candidate
	Stats      minimax.Stats
	// Nodes is the pre-order listing, filled only on request.
	Nodes []*explain.Node
}

// Analyzer answers stateless engine queries.
type Analyzer struct {
	logger *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{logger: logger.With("component", "analyzer")}
}

func (that *Analyzer) BestMove(ctx context.Context, position Position) (BestMove, error) {
	state, config, err := position.resolve(ctx)
	if err != nil {
		return BestMove{}, err
	}

	result := minimax.Search(state, state.CurrentMark(), config, nil)

	that.logger.Debug("best move",
		"board", position.Board,
		"config", config.String(),
		"nodes", result.Stats.NodesVisited,
		"cutoffs", result.Stats.Cutoffs,
	)

	return BestMove{
		Move:  result.Move,
		Score: result.Score,
		Kind:  result.Kind,
		Stats: result.Stats,
	}, nil
}

// Analyze builds the explanation tree for mark, or for the side to move when mark is empty.
func (that *Analyzer) Analyze(ctx context.Context, position Position, mark entity.Mark, flatten bool) (Analysis, error) {
	state, config, err := position.resolve(ctx)
	if err != nil {
		return Analysis{}, err
	}

	if mark == entity.NoMark {
		mark = state.CurrentMark()
	}

	if !mark.Valid() {
		return Analysis{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, string(mark))
	}

	root, stats := explain.Build(state, mark, config)

	analysis := Analysis{
		Root:       root,
		Candidates: explain.CandidateScores(root),
		Stats:      stats,
	}

	if flatten {
		analysis.Nodes = explain.Flatten(root)
	}

	that.logger.Debug("analysis", "board", position.Board, "nodes", stats.NodesVisited, "cutoffs", stats.Cutoffs)

	return analysis, nil
}

func (that Position) resolve(ctx context.Context) (entity.GameState, minimax.Config, error) {
	if err := ctx.Err(); err != nil {
		return entity.GameState{}, minimax.Config{}, err
	}

	starting := that.StartingMark
	if starting == entity.NoMark {
		starting = entity.MarkX
	}

	state, err := entity.NewGameState(that.Board, starting)
	if err != nil {
		return entity.GameState{}, minimax.Config{}, err
	}

	difficulty := minimax.DifficultyExpert
	if that.Difficulty != "" {
		difficulty, err = minimax.ParseDifficulty(that.Difficulty)
		if err != nil {
			return entity.GameState{}, minimax.Config{}, err
		}
	}

	return state, difficulty.Config(), nil
}
