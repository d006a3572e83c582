package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var quitWords = map[string]struct{}{
	"q":    {},
	"quit": {},
	"exit": {},
}

type human struct {
	mark    entity.Mark
	scanner *bufio.Scanner
	out     io.Writer
}

func newHuman(mark entity.Mark, in io.Reader, out io.Writer) *human {
	return &human{
		mark:    mark,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (that *human) Mark() entity.Mark {
	return that.mark
}

// MakeMove asks for cells 1-9 until a free one is given.
func (that *human) MakeMove(ctx context.Context, state entity.GameState) (entity.Move, error) {
	if err := checkTurn(that.mark, state); err != nil {
		return entity.Move{}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return entity.Move{}, err
		}

		fmt.Fprintf(that.out, "Player %s move (1-9): ", that.mark)

		if !that.scanner.Scan() {
			err := that.scanner.Err()
			if err == nil {
				err = io.EOF
			}

			return entity.Move{}, fmt.Errorf("%w: %w", apperror.ErrQuit, err)
		}

		raw := strings.TrimSpace(that.scanner.Text())
		if _, ok := quitWords[strings.ToLower(raw)]; ok {
			return entity.Move{}, apperror.ErrQuit
		}

		number, err := strconv.Atoi(raw)
		if err != nil || number < 1 || number > entity.BoardSize {
			fmt.Fprintln(that.out, "Enter a number 1-9")

			continue
		}

		move, err := state.MoveTo(number - 1)
		if errors.Is(err, apperror.ErrCellOccupied) {
			fmt.Fprintln(that.out, "Cell occupied. Pick another.")

			continue
		}

		if err != nil {
			return entity.Move{}, fmt.Errorf("failed to move: %w", err)
		}

		return move, nil
	}
}
