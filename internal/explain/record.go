package explain

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// Record is the plain nested form of a Node used for export.
type Record struct {
	Board    string   `json:"board"`
	Turn     string   `json:"turn"`
	Cell     *int     `json:"cell,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Terminal bool     `json:"terminal"`
	Pruned   bool     `json:"pruned"`
	Kind     string   `json:"kind"`
	Children []Record `json:"children,omitempty"`
}

var kinds = map[minimax.Kind]struct{}{
	minimax.KindWin:       {},
	minimax.KindLoss:      {},
	minimax.KindTie:       {},
	minimax.KindHeuristic: {},
	minimax.KindPruned:    {},
}

func Serialize(node *Node) Record {
	record := Record{
		Board:    node.Board.String(),
		Turn:     string(node.Turn),
		Terminal: node.Terminal,
		Pruned:   node.Pruned,
		Kind:     string(node.Kind),
	}

	if !node.IsRoot() {
		cell := node.Cell
		record.Cell = &cell
	}

	if node.Score != nil {
		score := *node.Score
		record.Score = &score
	}

	if len(node.Children) > 0 {
		record.Children = make([]Record, 0, len(node.Children))
		for _, child := range node.Children {
			record.Children = append(record.Children, Serialize(child))
		}
	}

	return record
}

func Deserialize(record Record) (*Node, error) {
	board, err := entity.ParseBoard(record.Board)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedTree, err)
	}

	turn, err := entity.ParseMark(record.Turn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedTree, err)
	}

	kind := minimax.Kind(record.Kind)
	if _, ok := kinds[kind]; !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", apperror.ErrMalformedTree, record.Kind)
	}

	node := &Node{
		Board:    board,
		Turn:     turn,
		Cell:     RootCell,
		Terminal: record.Terminal,
		Pruned:   record.Pruned,
		Kind:     kind,
	}

	if record.Cell != nil {
		if *record.Cell < 0 || *record.Cell >= entity.BoardSize {
			return nil, fmt.Errorf("%w: cell %d", apperror.ErrMalformedTree, *record.Cell)
		}
		node.Cell = *record.Cell
	}

	if record.Score != nil {
		score := *record.Score
		node.Score = &score
	}

	for _, child := range record.Children {
		childNode, err := Deserialize(child)
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, childNode)
	}

	return node, nil
}

// Export encodes the tree as indented JSON.
func Export(root *Node) ([]byte, error) {
	data, err := json.MarshalIndent(Serialize(root), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}

	return data, nil
}

func Import(data []byte) (*Node, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedTree, err)
	}

	return Deserialize(record)
}
