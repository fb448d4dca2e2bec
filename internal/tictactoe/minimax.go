package tictactoe

import (
	"errors"
	"fmt"
)

// NoMove is returned by FindBestMove when the board has no empty cell.
const NoMove = -1

const (
	centerCell = 4
	winScore   = 10
)

// Scoring selects how terminal positions are valued.
type Scoring uint8

const (
	// DepthWeighted scores a computer win as 10-depth and a human win as depth-10,
	// so quicker wins and slower losses are preferred among equal results.
	DepthWeighted Scoring = iota
	// Plain scores +1, -1 and 0 and is indifferent between optimal lines.
	Plain
)

var ErrUnknownScoring = errors.New("unknown scoring")

// ParseScoring maps a config value ("depth" or "plain") to a Scoring.
func ParseScoring(name string) (Scoring, error) {
	switch name {
	case "depth", "":
		return DepthWeighted, nil
	case "plain":
		return Plain, nil
	default:
		return DepthWeighted, fmt.Errorf("%w: %q", ErrUnknownScoring, name)
	}
}

func (s Scoring) String() string {
	if s == Plain {
		return "plain"
	}
	return "depth"
}

func (s Scoring) terminalScore(outcome Outcome, depth int) int {
	switch outcome {
	case ComputerWins:
		if s == Plain {
			return 1
		}
		return winScore - depth
	case HumanWins:
		if s == Plain {
			return -1
		}
		return depth - winScore
	case Draw, InProgress:
		return 0
	default:
		return 0
	}
}

type Option func(engine *Engine)

// WithScoring sets the terminal scoring variant.
func WithScoring(scoring Scoring) Option {
	return func(e *Engine) {
		e.scoring = scoring
	}
}

// WithCenterOpening toggles answering an empty board with the center cell without searching.
func WithCenterOpening(enabled bool) Option {
	return func(e *Engine) {
		e.centerOpening = enabled
	}
}

// Engine picks computer moves by exhaustive minimax. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	scoring       Scoring
	centerOpening bool
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		scoring:       DepthWeighted,
		centerOpening: true,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

func (that *Engine) Scoring() Scoring {
	return that.scoring
}

// Result describes a root search.
type Result struct {
	Move  int
	Score int
	Nodes int
}

// Score returns the minimax value of board from the computer's point of view.
func (that *Engine) Score(board Board, computerTurn bool) int {
	mark := HumanMark
	if computerTurn {
		mark = ComputerMark
	}

	s := searcher{scoring: that.scoring}
	return s.score(board, 0, mark)
}

// FindBestMove returns the optimal cell for the computer, or NoMove on a full board.
func (that *Engine) FindBestMove(board Board) int {
	return that.Search(board).Move
}

// Search tries every empty cell in ascending order and keeps the first one with the
// strictly greatest score. The board argument is a copy, so the caller's board is
// never touched.
func (that *Engine) Search(board Board) Result {
	// perfect play from the empty board is a draw and the center is one of the drawing moves
	if that.centerOpening && board.IsEmpty() {
		return Result{Move: centerCell, Score: 0}
	}

	s := searcher{scoring: that.scoring}
	result := Result{Move: NoMove}

	for _, cell := range board.EmptyCells() {
		child := board
		child[cell] = ComputerMark

		score := s.score(child, 0, HumanMark)
		if result.Move == NoMove || score > result.Score {
			result.Move = cell
			result.Score = score
		}
	}

	result.Nodes = s.nodes

	return result
}

type searcher struct {
	scoring Scoring
	nodes   int
}

// score returns the minimax value of board with mark to move. The computer maximises.
func (that *searcher) score(board Board, depth int, mark Cell) int {
	that.nodes++

	if outcome := EvaluateOutcome(board); outcome.IsTerminal() {
		return that.scoring.terminalScore(outcome, depth)
	}

	maximising := mark == ComputerMark

	// a non-terminal board always has an empty cell; if not, it scores as a draw
	best, explored := 0, false
	for i, cell := range board {
		if cell != Empty {
			continue
		}

		child := board
		child[i] = mark

		score := that.score(child, depth+1, mark.Opponent())

		switch {
		case !explored:
			best, explored = score, true
		case maximising && score > best:
			best = score
		case !maximising && score < best:
			best = score
		}
	}

	return best
}

var defaultEngine = NewEngine()

// Score evaluates board with the default engine.
func Score(board Board, computerTurn bool) int {
	return defaultEngine.Score(board, computerTurn)
}

// FindBestMove picks the computer's move with the default engine.
func FindBestMove(board Board) int {
	return defaultEngine.FindBestMove(board)
}
