package explain

import (
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// Flatten lists the tree in pre-order: the root, then each child's subtree in move order.
func Flatten(root *Node) []*Node {
	if root == nil {
		return nil
	}

	nodes := make([]*Node, 0, root.Count())

	var walk func(node *Node)
	walk = func(node *Node) {
		nodes = append(nodes, node)
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)

	return nodes
}

// Stepper walks a flattened tree one node at a time.
type Stepper struct {
	nodes    []*Node
	position int
}

func NewStepper(root *Node) *Stepper {
	return &Stepper{nodes: Flatten(root)}
}

// Current returns nil only for an empty tree.
func (that *Stepper) Current() *Node {
	if len(that.nodes) == 0 {
		return nil
	}

	return that.nodes[that.position]
}

func (that *Stepper) Next() bool {
	if that.position+1 >= len(that.nodes) {
		return false
	}

	that.position++

	return true
}

func (that *Stepper) Prev() bool {
	if that.position == 0 {
		return false
	}

	that.position--

	return true
}

func (that *Stepper) Reset() {
	that.position = 0
}

func (that *Stepper) Position() int {
	return that.position
}

func (that *Stepper) Len() int {
	return len(that.nodes)
}

// Candidate is the score of one root move.
type Candidate struct {
	Cell   int          `json:"cell"`
	Score  *float64     `json:"score,omitempty"`
	Kind   minimax.Kind `json:"kind"`
	Pruned bool         `json:"pruned"`
}

// CandidateScores lists the root moves in search order.
func CandidateScores(root *Node) []Candidate {
	if root == nil {
		return nil
	}

	return lo.Map(root.Children, func(child *Node, _ int) Candidate {
		return Candidate{
			Cell:   child.Cell,
			Score:  child.Score,
			Kind:   child.Kind,
			Pruned: child.Pruned,
		}
	})
}
