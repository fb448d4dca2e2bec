package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	StatusHumanTurn    = "human_turn"
	StatusComputerTurn = "computer_turn"
	StatusFinished     = "finished"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is one human-vs-computer session. The human always moves first.
type Game struct {
	ID       string            `json:"id"`
	PlayerID string            `json:"player_id"`
	Board    tictactoe.Board   `json:"board"`
	Status   string            `json:"status"`
	Outcome  tictactoe.Outcome `json:"outcome"`
}

func NewGame(id, playerID string) *Game {
	return &Game{
		ID:       id,
		PlayerID: playerID,
		Board:    tictactoe.Board{},
		Status:   StatusHumanTurn,
		Outcome:  tictactoe.InProgress,
	}
}

// MakeTurn places mark on cell. A rejected turn leaves the game unchanged.
func (that *Game) MakeTurn(mark tictactoe.Cell, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	turn := that.Turn()
	if turn == tictactoe.Empty {
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}

	if !tictactoe.ValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != tictactoe.Empty {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark

	if mark == tictactoe.HumanMark {
		that.Status = StatusComputerTurn
	} else {
		that.Status = StatusHumanTurn
	}

	that.UpdateGameState()

	return nil
}

// UpdateGameState recomputes the outcome and finishes the game on a terminal board.
func (that *Game) UpdateGameState() {
	that.Outcome = tictactoe.EvaluateOutcome(that.Board)
	if that.Outcome.IsTerminal() {
		that.Status = StatusFinished
	}
}

// Reset starts over with an empty board and the human to move.
func (that *Game) Reset() {
	that.Board = tictactoe.Board{}
	that.Status = StatusHumanTurn
	that.Outcome = tictactoe.InProgress
}

// Turn returns the mark to move, or Empty once the game is over.
func (that *Game) Turn() tictactoe.Cell {
	switch that.Status {
	case StatusHumanTurn:
		return tictactoe.HumanMark
	case StatusComputerTurn:
		return tictactoe.ComputerMark
	default:
		return tictactoe.Empty
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsHumanTurn() bool {
	return that.Status == StatusHumanTurn
}

func (that *Game) IsComputerTurn() bool {
	return that.Status == StatusComputerTurn
}

// ConfirmHumanTurn reports why the human may not move right now.
func (that *Game) ConfirmHumanTurn() error {
	switch {
	case that.IsHumanTurn():
		return nil
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsComputerTurn():
		return apperror.ErrNotYourTurn
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
