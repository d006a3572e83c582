package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Kind classifies where a node's score came from.
type Kind string

const (
	KindWin       Kind = "win"
	KindLoss      Kind = "loss"
	KindTie       Kind = "tie"
	KindHeuristic Kind = "heuristic"
	KindPruned    Kind = "pruned"
)

// Stats counts the work of one top-level search.
type Stats struct {
	NodesVisited int `json:"nodes"`
	Cutoffs      int `json:"cutoffs"`
}

// Observer receives search events in visiting order. Every Enter is matched by a Leave,
// nested the same way as the recursion; Skip reports the siblings cut off at the
// current node and comes before that node's Leave.
type Observer interface {
	Enter(state entity.GameState, move *entity.Move)
	Leave(score float64, kind Kind)
	Skip(moves []entity.Move)
}

type Result struct {
	// Move is the best move at the root, nil when the game is over.
	Move  *entity.Move
	Score float64
	Kind  Kind
	Stats Stats
}

type outcome struct {
	score float64
	kind  Kind
	best  int
}

type searcher struct {
	maximizer entity.Mark
	config    Config
	observer  Observer
	stats     Stats
}

// Search runs minimax from state, scoring positions for maximizer. With pruning enabled
// alpha-beta cutoffs skip the remaining siblings of a node. The observer may be nil.
func Search(state entity.GameState, maximizer entity.Mark, config Config, observer Observer) Result {
	that := &searcher{
		maximizer: maximizer,
		config:    config,
		observer:  observer,
	}

	// the root always expands, the depth limit applies below the candidate moves
	remaining := Unlimited
	if config.Bounded() {
		remaining = config.DepthLimit + 1
	}

	out := that.search(state, nil, remaining, math.Inf(-1), math.Inf(1))

	result := Result{
		Score: out.score,
		Kind:  out.kind,
		Stats: that.stats,
	}

	if out.best >= 0 {
		best := OrderMoves(state)[out.best]
		result.Move = &best
	}

	return result
}

// FindBestMove picks the move of the side to move. It reports false only when the game is over.
func FindBestMove(state entity.GameState, config Config) (entity.Move, bool) {
	if state.GameOver() {
		return entity.Move{}, false
	}

	result := Search(state, state.CurrentMark(), config, nil)
	if result.Move == nil {
		return entity.Move{}, false
	}

	return *result.Move, true
}

func (that *searcher) search(state entity.GameState, move *entity.Move, remaining int, alpha, beta float64) outcome {
	that.stats.NodesVisited++
	if that.observer != nil {
		that.observer.Enter(state, move)
	}

	if state.GameOver() {
		return that.leave(that.terminal(state))
	}

	if remaining == 0 {
		return that.leave(outcome{
			score: Heuristic(state.Board(), that.maximizer),
			kind:  KindHeuristic,
			best:  -1,
		})
	}

	next := remaining
	if next > 0 {
		next--
	}

	maximizing := state.CurrentMark() == that.maximizer

	best := outcome{score: math.Inf(1), best: -1}
	if maximizing {
		best.score = math.Inf(-1)
	}

	moves := OrderMoves(state)
	for i := range moves {
		child := that.search(moves[i].After, &moves[i], next, alpha, beta)

		if maximizing {
			if child.score > best.score {
				best = outcome{score: child.score, kind: child.kind, best: i}
			}
			alpha = math.Max(alpha, best.score)
		} else {
			if child.score < best.score {
				best = outcome{score: child.score, kind: child.kind, best: i}
			}
			beta = math.Min(beta, best.score)
		}

		if that.config.UsePruning && beta <= alpha {
			that.stats.Cutoffs++
			if that.observer != nil && i+1 < len(moves) {
				that.observer.Skip(moves[i+1:])
			}
			break
		}
	}

	return that.leave(best)
}

func (that *searcher) terminal(state entity.GameState) outcome {
	// guarded by GameOver, cannot fail
	score, _ := state.EvaluateTerminalScore(that.maximizer)

	kind := KindTie
	switch score {
	case 1:
		kind = KindWin
	case -1:
		kind = KindLoss
	}

	return outcome{score: float64(score), kind: kind, best: -1}
}

func (that *searcher) leave(out outcome) outcome {
	if that.observer != nil {
		that.observer.Leave(out.score, out.kind)
	}

	return out
}
