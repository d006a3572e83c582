package explain

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// RootCell marks the node no move leads to.
const RootCell = -1

// Node is one position of an explanation tree. Nodes are not modified after Build returns.
type Node struct {
	Board entity.Board
	// Turn is the mark to move at this node.
	Turn entity.Mark
	// Cell is the cell of the move leading here, RootCell for the root.
	Cell     int
	Children []*Node
	// Score is nil for pruned nodes.
	Score    *float64
	Terminal bool
	Pruned   bool
	Kind     minimax.Kind
}

func (that *Node) IsRoot() bool {
	return that.Cell == RootCell
}

// Mover is the mark that played the move leading to this node.
func (that *Node) Mover() entity.Mark {
	if that.IsRoot() {
		return entity.NoMark
	}

	return that.Board[that.Cell]
}

// Count returns the number of nodes in the subtree, pruned placeholders included.
func (that *Node) Count() int {
	count := 1
	for _, child := range that.Children {
		count += child.Count()
	}

	return count
}

func (that *Node) String() string {
	label := "root"
	if !that.IsRoot() {
		label = fmt.Sprintf("%s -> %d", that.Mover(), that.Cell+1)
	}

	if that.Pruned {
		return label + " pruned"
	}

	if that.Score == nil {
		return label
	}

	return fmt.Sprintf("%s %.2f %s", label, *that.Score, that.Kind)
}
