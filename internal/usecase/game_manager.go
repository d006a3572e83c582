package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrGameIDUnavailable = errors.New("could not generate game id")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs games between a human and the engine. A game is removed from
// storage once it ends.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	difficulty minimax.Difficulty
	generateID func() string
	seed       func() uint64
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, difficulty minimax.Difficulty) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		difficulty: difficulty,
		generateID: pkg.GenerateGameID,
		seed:       func() uint64 { return uint64(time.Now().UnixNano()) },
	}
}

// CreateGame starts a game. An empty difficulty selects the default one. When the
// engine starts, its first move is already played.
func (that *GameManager) CreateGame(ctx context.Context, humanMark, startingMark entity.Mark, difficulty string) (*entity.Session, error) {
	if !humanMark.Valid() || !startingMark.Valid() {
		return nil, fmt.Errorf("%w: human %q, starting %q", apperror.ErrInvalidMark, string(humanMark), string(startingMark))
	}

	level := that.difficulty
	if difficulty != "" {
		parsed, err := minimax.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	gameID := that.generateID()
	if gameID == "" {
		return nil, ErrGameIDUnavailable
	}

	session := entity.NewSession(gameID, humanMark, startingMark, string(level))

	if session.IsBotTurn() {
		if err := that.botTurn(ctx, session); err != nil {
			return nil, fmt.Errorf("failed bot turn: %w", err)
		}
	}

	if err := that.updateGame(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "id", session.ID, "difficulty", session.Difficulty)

	return session, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return session, nil
}

// MakeTurn plays the human's cell and answers with the engine's move. The finished
// session is returned after it has been deleted.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error) {
	session, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = session.ConfirmOngoingState(); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			that.deleteGame(ctx, session)
		}

		return nil, err
	}

	if err = tictactoe.MakeTurn(session, session.HumanMark, cell); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if session.IsBotTurn() {
		if err = that.botTurn(ctx, session); err != nil {
			return nil, fmt.Errorf("failed bot turn: %w", err)
		}
	}

	if session.IsFinished() {
		that.deleteGame(ctx, session)

		return session, nil
	}

	if err = that.updateGame(ctx, session); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return session, nil
}

// botTurn plays the engine's move. The random difficulty picks any free cell, the
// others search with their own settings.
func (that *GameManager) botTurn(ctx context.Context, session *entity.Session) error {
	state, err := session.State()
	if err != nil {
		return err
	}

	difficulty, err := minimax.ParseDifficulty(session.Difficulty)
	if err != nil {
		return fmt.Errorf("session %s: %w", session.ID, err)
	}

	kind := player.KindMinimax
	if difficulty.PlaysRandomly() {
		kind = player.KindRandom
	}

	bot, err := player.New(kind, session.BotMark(),
		player.WithConfig(difficulty.Config()),
		player.WithRand(rand.New(rand.NewSource(that.seed()))),
		player.WithLogger(that.logger),
	)
	if err != nil {
		return err
	}

	move, err := bot.MakeMove(ctx, state)
	if err != nil {
		return err
	}

	that.logger.Debug("bot turn", "id", session.ID, "cell", move.Cell, "difficulty", session.Difficulty)

	return tictactoe.MakeTurn(session, session.BotMark(), move.Cell)
}

func (that *GameManager) updateGame(ctx context.Context, session *entity.Session) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, session *entity.Session) {
	log := that.logger.With("method", "deleteGame")

	if err := that.gameRepo.DeleteByID(ctx, session.ID); err != nil {
		log.Error("failed to delete game", "error", err)

		return
	}

	log.Info("game deleted", "id", session.ID, "winner", session.Winner)
}
