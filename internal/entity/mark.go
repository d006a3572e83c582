package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mark is one of the two player symbols.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	// NoMark fills an empty cell.
	NoMark Mark = ""
)

// Other returns the opposing mark.
func (that Mark) Other() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return NoMark
	}
}

func (that Mark) Valid() bool {
	return that == MarkX || that == MarkO
}

func (that Mark) String() string {
	if that == NoMark {
		return " "
	}
	return string(that)
}

// ParseMark accepts "X" or "O".
func ParseMark(s string) (Mark, error) {
	mark := Mark(s)
	if !mark.Valid() {
		return NoMark, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}

	return mark, nil
}
