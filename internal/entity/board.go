package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	BoardSize  = 9
	CenterCell = 4

	emptyToken = ' '
)

var (
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	CornerCells = [4]int{0, 2, 6, 8}
)

// Board is a 3x3 grid stored row-major. Empty cells hold NoMark.
type Board [BoardSize]Mark

// ParseBoard reads the canonical 9-character form: "X", "O" or a space per cell.
func ParseBoard(s string) (Board, error) {
	var board Board

	cells := []rune(s)
	if len(cells) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrMalformedBoard, BoardSize, len(cells))
	}

	for i, token := range cells {
		switch token {
		case emptyToken:
			board[i] = NoMark
		case 'X':
			board[i] = MarkX
		case 'O':
			board[i] = MarkO
		default:
			return Board{}, fmt.Errorf("%w: invalid token %q at cell %d", apperror.ErrMalformedBoard, token, i)
		}
	}

	return board, nil
}

// String renders the board back to its canonical form.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		sb.WriteString(cell.String())
	}

	return sb.String()
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that Board) EmptyCount() int {
	return that.Count(NoMark)
}

func (that Board) IsEmpty(cell int) bool {
	return that[cell] == NoMark
}

// winningLine returns the first filled triple in WinCombos order.
func (that Board) winningLine() (Mark, [3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != NoMark && a == b && b == c {
			return a, combo, true
		}
	}

	return NoMark, [3]int{}, false
}

func (that Board) wins(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}
