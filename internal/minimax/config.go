package minimax

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Unlimited disables the depth limit: the search always reaches terminal states.
const Unlimited = -1

// Config selects between exhaustive and bounded search.
type Config struct {
	// DepthLimit is the number of plies searched below each candidate move
	// before the heuristic takes over. Unlimited for exhaustive search.
	DepthLimit int  `json:"depth_limit" yaml:"depth-limit"`
	UsePruning bool `json:"use_pruning" yaml:"use-pruning"`
}

func (that Config) Bounded() bool {
	return that.DepthLimit >= 0
}

func (that Config) String() string {
	depth := "unlimited"
	if that.Bounded() {
		depth = fmt.Sprint(that.DepthLimit)
	}

	return fmt.Sprintf("depth=%s pruning=%t", depth, that.UsePruning)
}

// Difficulty is a named playing strength.
type Difficulty string

const (
	DifficultyRandom Difficulty = "random"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var difficulties = map[Difficulty]Config{
	DifficultyRandom: {DepthLimit: 0, UsePruning: false},
	DifficultyNormal: {DepthLimit: 3, UsePruning: false},
	DifficultyHard:   {DepthLimit: Unlimited, UsePruning: false},
	DifficultyExpert: {DepthLimit: Unlimited, UsePruning: true},
}

func ParseDifficulty(s string) (Difficulty, error) {
	difficulty := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficulties[difficulty]; !ok {
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, s)
	}

	return difficulty, nil
}

// Config returns the search settings of the difficulty. The difficulty must come
// from ParseDifficulty; anything else falls back to exhaustive search with pruning.
func (that Difficulty) Config() Config {
	if config, ok := difficulties[that]; ok {
		return config
	}

	return difficulties[DifficultyExpert]
}

// PlaysRandomly reports whether a computer at this difficulty picks uniformly random
// moves. Its Config then only drives the analysis shown to the player.
func (that Difficulty) PlaysRandomly() bool {
	return that == DifficultyRandom
}
