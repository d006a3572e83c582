package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/explain"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
)

var ErrPlayerMissing = errors.New("player missing for mark")

type Renderer interface {
	Render(state entity.GameState)
	RenderAnalysis(candidates []explain.Candidate, stats minimax.Stats)
	Message(text string)
}

// Game runs one match between two players on a local terminal.
type Game struct {
	logger   *slog.Logger
	renderer Renderer
	players  map[entity.Mark]player.Player
	analysis *minimax.Config
}

type GameOption func(*Game)

// WithAnalysis shows the candidate scores for the side to move before every turn.
func WithAnalysis(config minimax.Config) GameOption {
	return func(g *Game) {
		g.analysis = &config
	}
}

func NewGame(logger *slog.Logger, renderer Renderer, players []player.Player, opts ...GameOption) (*Game, error) {
	game := &Game{
		logger:   logger.With("component", "game"),
		renderer: renderer,
		players:  make(map[entity.Mark]player.Player, len(players)),
	}

	for _, p := range players {
		game.players[p.Mark()] = p
	}

	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		if _, ok := game.players[mark]; !ok {
			return nil, fmt.Errorf("%w %s", ErrPlayerMissing, mark)
		}
	}

	for _, opt := range opts {
		opt(game)
	}

	return game, nil
}

// Play runs the match until it ends, a player fails or ctx is done. The last
// state is returned in every case.
func (that *Game) Play(ctx context.Context, starting entity.Mark) (entity.GameState, error) {
	log := that.logger.With("method", "Play")

	state := entity.NewGame(starting)
	log.Info("game started", "starting", starting.String())

	for {
		that.renderer.Render(state)

		if state.GameOver() {
			winner, _ := state.Winner()
			log.Info("game over", "winner", winner.String(), "tie", state.Tie())

			return state, nil
		}

		if that.analysis != nil {
			root, stats := explain.Build(state, state.CurrentMark(), *that.analysis)
			that.renderer.RenderAnalysis(explain.CandidateScores(root), stats)
		}

		move, err := that.players[state.CurrentMark()].MakeMove(ctx, state)
		switch {
		case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrInvalidCell):
			that.renderer.Message(err.Error())
			log.Debug("turn rejected", "error", err)

			continue
		case err != nil:
			return state, fmt.Errorf("player %s: %w", state.CurrentMark(), err)
		}

		log.Debug("turn", "mark", move.Mark.String(), "cell", move.Cell)
		state = move.After
	}
}
