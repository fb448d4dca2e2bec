package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	HumanMark
	ComputerMark
)

// Outcome is the state of a board derived from its contents.
type Outcome uint8

const (
	InProgress Outcome = iota
	HumanWins
	ComputerWins
	Draw
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

var (
	ErrInvalidMark    = errors.New("invalid mark")
	ErrInvalidOutcome = errors.New("invalid outcome")

	// WinCombos lists rows, then columns, then diagonals.
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
)

// Board is a row-major 3x3 grid. It is an array, so assigning or passing it copies it.
type Board [BoardSize]Cell

// EvaluateOutcome reports whether someone has three in a row, the board is a draw, or play continues.
// On a constructed board holding several lines the first line in WinCombos order decides.
func EvaluateOutcome(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return winnerOf(a)
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range board {
		if cell == Empty {
			return InProgress
		}
	}

	return Draw
}

func winnerOf(mark Cell) Outcome {
	if mark == ComputerMark {
		return ComputerWins
	}
	return HumanWins
}

// ValidCell reports whether index addresses a board square.
func ValidCell(index int) bool {
	return index >= 0 && index < BoardSize
}

// EmptyCells returns the indexes of empty squares in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range b {
		if cell == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

func (b Board) IsEmpty() bool {
	return b == Board{}
}

// String renders the board as three rows, using '.' for empty squares.
func (b Board) String() string {
	var sb strings.Builder
	for i, cell := range b {
		if cell == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(cell.String())
		}
		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (c Cell) String() string {
	switch c {
	case HumanMark:
		return "X"
	case ComputerMark:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other side's mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case HumanMark:
		return ComputerMark
	case ComputerMark:
		return HumanMark
	default:
		return Empty
	}
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*c = Empty
	case "X":
		*c = HumanMark
	case "O":
		*c = ComputerMark
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMark, text)
	}
	return nil
}

func (o Outcome) IsTerminal() bool {
	return o != InProgress
}

func (o Outcome) String() string {
	switch o {
	case HumanWins:
		return "human_wins"
	case ComputerWins:
		return "computer_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*o = InProgress
	case "human_wins":
		*o = HumanWins
	case "computer_wins":
		*o = ComputerWins
	case "draw":
		*o = Draw
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutcome, text)
	}
	return nil
}
