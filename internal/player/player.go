package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// Player picks the next move for its mark.
type Player interface {
	Mark() entity.Mark
	MakeMove(ctx context.Context, state entity.GameState) (entity.Move, error)
}

// Kind names a player strategy.
type Kind string

const (
	KindHuman   Kind = "human"
	KindRandom  Kind = "random"
	KindMinimax Kind = "minimax"
)

func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(s))); kind {
	case KindHuman, KindRandom, KindMinimax:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownPlayerKind, s)
	}
}

type options struct {
	delay         time.Duration
	rand          *rand.Rand
	randomOpening bool
	config        minimax.Config
	in            io.Reader
	out           io.Writer
	logger        *slog.Logger
}

type Option func(*options)

// WithDelay makes computer players wait before answering.
func WithDelay(delay time.Duration) Option {
	return func(o *options) {
		o.delay = delay
	}
}

func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithRandomOpening lets the search player open an empty board with a random move.
func WithRandomOpening(enabled bool) Option {
	return func(o *options) {
		o.randomOpening = enabled
	}
}

func WithConfig(config minimax.Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithInput sets where a human player reads cells from and where prompts go.
func WithInput(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.in = in
		o.out = out
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds the player of the given kind. Unset options default to stdin/stdout,
// a time-seeded random source, no delay and exhaustive search with pruning.
func New(kind Kind, mark entity.Mark, opts ...Option) (Player, error) {
	if !mark.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, string(mark))
	}

	o := &options{
		config: minimax.DifficultyExpert.Config(),
		in:     os.Stdin,
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	logger := o.logger.With("component", "player", "kind", string(kind), "mark", mark.String())

	switch kind {
	case KindHuman:
		return newHuman(mark, o.in, o.out), nil
	case KindRandom:
		return &randomPlayer{
			computer: computer{mark: mark, delay: o.delay},
			rand:     o.rand,
		}, nil
	case KindMinimax:
		return &searchPlayer{
			computer:      computer{mark: mark, delay: o.delay},
			config:        o.config,
			randomOpening: o.randomOpening,
			rand:          o.rand,
			logger:        logger,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayerKind, string(kind))
	}
}

func checkTurn(mark entity.Mark, state entity.GameState) error {
	if state.CurrentMark() != mark {
		return fmt.Errorf("%w: %s to move, not %s", apperror.ErrNotYourTurn, state.CurrentMark(), mark)
	}

	if state.GameOver() {
		return apperror.ErrNoMovesAvailable
	}

	return nil
}
