package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/explain"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

const rowSeparator = "---+---+---"

// Renderer draws games on a terminal. Colours follow the terminal's capabilities.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Render prints the grid and, once the game is over, its result. Empty cells show
// the number a human types to play there.
func (that *Renderer) Render(state entity.GameState) {
	board := state.Board()
	winning := lo.Associate(state.WinningCells(), func(cell int) (int, struct{}) {
		return cell, struct{}{}
	})

	var sb strings.Builder
	sb.WriteString("\n")

	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cell := row*3 + col
			_, highlighted := winning[cell]
			cells = append(cells, " "+that.cell(board[cell], cell, highlighted)+" ")
		}

		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")

		if row < 2 {
			sb.WriteString(rowSeparator + "\n")
		}
	}

	sb.WriteString("\n")

	if winner, ok := state.Winner(); ok {
		sb.WriteString(that.out.String("Winner: " + winner.String()).Bold().String())
		sb.WriteString("\n")
	} else if state.Tie() {
		sb.WriteString(that.out.String("Draw").Bold().String())
		sb.WriteString("\n")
	}

	fmt.Fprint(that.out, sb.String())
}

// RenderAnalysis prints the score of every candidate move and the search counters.
func (that *Renderer) RenderAnalysis(candidates []explain.Candidate, stats minimax.Stats) {
	var sb strings.Builder

	for _, candidate := range candidates {
		sb.WriteString(fmt.Sprintf("  cell %d: ", candidate.Cell+1))

		if candidate.Pruned || candidate.Score == nil {
			sb.WriteString(that.out.String("pruned").Faint().String())
		} else {
			sb.WriteString(fmt.Sprintf("%+.2f (%s)", *candidate.Score, candidate.Kind))
		}

		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("  nodes: %d, cutoffs: %d\n", stats.NodesVisited, stats.Cutoffs))

	fmt.Fprint(that.out, sb.String())
}

// Message prints a line of text.
func (that *Renderer) Message(text string) {
	fmt.Fprintln(that.out, text)
}

func (that *Renderer) cell(mark entity.Mark, index int, highlighted bool) string {
	if mark == entity.NoMark {
		return that.out.String(strconv.Itoa(index + 1)).Faint().String()
	}

	style := that.out.String(mark.String())
	switch mark {
	case entity.MarkX:
		style = style.Foreground(termenv.ANSIRed)
	case entity.MarkO:
		style = style.Foreground(termenv.ANSIBlue)
	}

	if highlighted {
		style = style.Bold().Underline()
	}

	return style.String()
}
