package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type BotService interface {
	MakeTurn(game *entity.Game) (int, error)
}

type botService struct {
	logger  *slog.Logger
	engine  *tictactoe.Engine
	metrics *metrics.Metrics
}

func NewBotService(logger *slog.Logger, engine *tictactoe.Engine, m *metrics.Metrics) BotService {
	return &botService{
		logger:  logger.With("component", "bot"),
		engine:  engine,
		metrics: m,
	}
}

// MakeTurn searches the game's board and commits the computer's reply.
func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	started := time.Now()
	result := that.engine.Search(game.Board)
	elapsed := time.Since(started)

	that.metrics.Searches.Inc()
	that.metrics.SearchNodes.Observe(float64(result.Nodes))
	that.metrics.SearchDuration.Observe(elapsed.Seconds())

	if result.Move == tictactoe.NoMove {
		return tictactoe.NoMove, apperror.ErrNoAvailableMoves
	}

	if err := game.MakeTurn(tictactoe.ComputerMark, result.Move); err != nil {
		return tictactoe.NoMove, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("computer moved",
		"cell", result.Move,
		"score", result.Score,
		"nodes", result.Nodes,
		"duration", elapsed,
		"scoring", that.engine.Scoring().String(),
		"board", game.Board.String(),
	)

	return result.Move, nil
}
