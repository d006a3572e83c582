package explain

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// Build runs the search engine from state and records every node it enters. Siblings
// skipped by a cutoff are attached as pruned nodes without a score.
func Build(state entity.GameState, maximizer entity.Mark, config minimax.Config) (*Node, minimax.Stats) {
	recorder := &treeRecorder{}

	result := minimax.Search(state, maximizer, config, recorder)

	return recorder.root, result.Stats
}

type treeRecorder struct {
	root  *Node
	stack []*Node
}

func (that *treeRecorder) Enter(state entity.GameState, move *entity.Move) {
	node := newNode(state, RootCell)
	if move != nil {
		node.Cell = move.Cell
	}

	if top := that.top(); top != nil {
		top.Children = append(top.Children, node)
	} else {
		that.root = node
	}

	that.stack = append(that.stack, node)
}

func (that *treeRecorder) Leave(score float64, kind minimax.Kind) {
	node := that.top()
	that.stack = that.stack[:len(that.stack)-1]

	node.Score = &score
	node.Kind = kind
}

func (that *treeRecorder) Skip(moves []entity.Move) {
	top := that.top()

	for _, move := range moves {
		node := newNode(move.After, move.Cell)
		node.Pruned = true
		node.Kind = minimax.KindPruned

		top.Children = append(top.Children, node)
	}
}

func (that *treeRecorder) top() *Node {
	if len(that.stack) == 0 {
		return nil
	}

	return that.stack[len(that.stack)-1]
}

func newNode(state entity.GameState, cell int) *Node {
	return &Node{
		Board:    state.Board(),
		Turn:     state.CurrentMark(),
		Cell:     cell,
		Terminal: state.GameOver(),
	}
}
