package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
)

const (
	ModeConsole = "console"
	ModeServer  = "server"
)

var ErrUnknownMode = errors.New("unknown mode")

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode       string        `yaml:"mode" env:"MODE" env-default:"console"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis      Redis         `yaml:"redis" env-prefix:"REDIS_"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"30m"`
	Game       Game          `yaml:"game" env-prefix:"GAME_"`
}

type Redis struct {
	Host string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"PORT" env-default:"6379"`
}

// Game holds the console match settings. Difficulty also applies to server sessions
// created without one.
type Game struct {
	PlayerX       string        `yaml:"player-x" env:"PLAYER_X" env-default:"human"`
	PlayerO       string        `yaml:"player-o" env:"PLAYER_O" env-default:"minimax"`
	StartingMark  string        `yaml:"starting-mark" env:"STARTING_MARK" env-default:"X"`
	Difficulty    string        `yaml:"difficulty" env:"DIFFICULTY" env-default:"expert"`
	RandomOpening bool          `yaml:"random-opening" env:"RANDOM_OPENING" env-default:"true"`
	ThinkDelay    time.Duration `yaml:"think-delay" env:"THINK_DELAY" env-default:"250ms"`
	ShowAnalysis  bool          `yaml:"show-analysis" env:"SHOW_ANALYSIS" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the yaml file at path, or only the environment when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Mode != ModeConsole && that.Mode != ModeServer {
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	if _, err := that.Game.Kinds(); err != nil {
		return err
	}

	if _, err := that.Game.Starting(); err != nil {
		return err
	}

	if _, err := minimax.ParseDifficulty(that.Game.Difficulty); err != nil {
		return err
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Kinds returns the player kind of each mark. At the random difficulty computer
// players pick random moves instead of searching.
func (that *Game) Kinds() (map[entity.Mark]player.Kind, error) {
	kindX, err := player.ParseKind(that.PlayerX)
	if err != nil {
		return nil, fmt.Errorf("player-x: %w", err)
	}

	kindO, err := player.ParseKind(that.PlayerO)
	if err != nil {
		return nil, fmt.Errorf("player-o: %w", err)
	}

	kinds := map[entity.Mark]player.Kind{
		entity.MarkX: kindX,
		entity.MarkO: kindO,
	}

	if difficulty, err := minimax.ParseDifficulty(that.Difficulty); err == nil && difficulty.PlaysRandomly() {
		for mark, kind := range kinds {
			if kind == player.KindMinimax {
				kinds[mark] = player.KindRandom
			}
		}
	}

	return kinds, nil
}

func (that *Game) Starting() (entity.Mark, error) {
	mark, err := entity.ParseMark(that.StartingMark)
	if err != nil {
		return entity.NoMark, fmt.Errorf("starting-mark: %w", err)
	}

	return mark, nil
}

// Search returns the engine settings for the configured difficulty.
func (that *Game) Search() minimax.Config {
	difficulty, err := minimax.ParseDifficulty(that.Difficulty)
	if err != nil {
		return minimax.DifficultyExpert.Config()
	}

	return difficulty.Config()
}
