package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application in the configured mode until it finishes or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch conf.Mode {
	case config.ModeConsole:
		return runConsole(ctx, logger, conf)
	case config.ModeServer:
		return runServer(ctx, logger, conf)
	default:
		log.Error("unknown mode", "mode", conf.Mode)

		return fmt.Errorf("%w: %q", config.ErrUnknownMode, conf.Mode)
	}
}

func runConsole(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	kinds, err := conf.Game.Kinds()
	if err != nil {
		return err
	}

	starting, err := conf.Game.Starting()
	if err != nil {
		return err
	}

	search := conf.Game.Search()

	players := make([]player.Player, 0, len(kinds))
	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		p, err := player.New(kinds[mark], mark,
			player.WithConfig(search),
			player.WithDelay(conf.Game.ThinkDelay),
			player.WithRandomOpening(conf.Game.RandomOpening),
			player.WithInput(os.Stdin, os.Stdout),
			player.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("failed to create player %s: %w", mark, err)
		}

		players = append(players, p)
	}

	var opts []tictactoe.GameOption
	if conf.Game.ShowAnalysis {
		opts = append(opts, tictactoe.WithAnalysis(search))
	}

	game, err := tictactoe.NewGame(logger, console.NewRenderer(os.Stdout), players, opts...)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if _, err = game.Play(ctx, starting); err != nil {
		if errors.Is(err, apperror.ErrQuit) || errors.Is(err, context.Canceled) {
			logger.Info("game interrupted", "reason", err)

			return nil
		}

		return fmt.Errorf("game failed: %w", err)
	}

	return nil
}

func runServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	difficulty, err := minimax.ParseDifficulty(conf.Game.Difficulty)
	if err != nil {
		return err
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.SessionTTL)
	gameManager := usecase.NewGameManager(logger, gameRepo, difficulty)
	analyzer := usecase.NewAnalyzer(logger)

	router := rest.NewRouter(rest.NewPingHandler(difficulty), rest.NewHandlers(logger, gameManager, analyzer))
	server := rest.NewServer(logger, conf.HTTPPort, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Start(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		return nil
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
