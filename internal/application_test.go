package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func TestNewEngine(t *testing.T) {
	t.Run("Defaults to depth weighted scoring", func(t *testing.T) {
		engine, err := newEngine(config.Engine{Scoring: "depth"})

		require.NoError(t, err)
		assert.Equal(t, tictactoe.DepthWeighted, engine.Scoring())
		assert.Equal(t, 4, engine.FindBestMove(tictactoe.Board{}))
	})

	t.Run("Full search still opens in the corner", func(t *testing.T) {
		// Given: the center shortcut is off
		engine, err := newEngine(config.Engine{Scoring: "plain", FullSearch: true})
		require.NoError(t, err)

		// When: searching an empty board
		result := engine.Search(tictactoe.Board{})

		// Then: every opening draws and the first cell wins the tie
		assert.Equal(t, tictactoe.Plain, engine.Scoring())
		assert.Equal(t, 0, result.Move)
		assert.Positive(t, result.Nodes)
	})

	t.Run("Unknown scoring is rejected", func(t *testing.T) {
		_, err := newEngine(config.Engine{Scoring: "greedy"})

		require.ErrorIs(t, err, tictactoe.ErrUnknownScoring)
	})
}
