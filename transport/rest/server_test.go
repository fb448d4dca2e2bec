package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	mockedRest "github.com/rocketscienceinc/tictactoe-minimax/mocks/rest"
)

var errStorage = errors.New("redis: connection refused")

func newServer(t *testing.T) (*Server, *mockedRest.MockgameUseCase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	gameUseCase := mockedRest.NewMockgameUseCase(t)

	return New(logger, gameUseCase, reg), gameUseCase
}

func do(t *testing.T, server *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	return rec
}

func TestServer_Ping(t *testing.T) {
	server, _ := newServer(t)

	rec := do(t, server, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	server, _ := newServer(t)

	rec := do(t, server, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tictactoe_engine_searches_total")
}

func TestServer_CreatePlayer(t *testing.T) {
	t.Run("Creates a player without a body", func(t *testing.T) {
		// Given: the use case creates a new player
		server, gameUseCase := newServer(t)
		gameUseCase.EXPECT().
			GetOrCreatePlayer(mock.Anything, "").
			Return(&entity.Player{ID: "p1"}, nil).
			Once()

		// When: posting without a body
		rec := do(t, server, http.MethodPost, "/players", "")

		// Then: the new player is returned
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"p1"}`, rec.Body.String())
	})

	t.Run("Returns a known player", func(t *testing.T) {
		server, gameUseCase := newServer(t)
		gameUseCase.EXPECT().
			GetOrCreatePlayer(mock.Anything, "p1").
			Return(&entity.Player{ID: "p1", GameID: "g1"}, nil).
			Once()

		rec := do(t, server, http.MethodPost, "/players", `{"id":"p1"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"p1","game_id":"g1"}`, rec.Body.String())
	})

	t.Run("Unknown player is 404", func(t *testing.T) {
		server, gameUseCase := newServer(t)
		gameUseCase.EXPECT().
			GetOrCreatePlayer(mock.Anything, "ghost").
			Return(nil, fmt.Errorf("failed to get player by id %w", apperror.ErrPlayerNotFound)).
			Once()

		rec := do(t, server, http.MethodPost, "/players", `{"id":"ghost"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Game(t *testing.T) {
	t.Run("Starts a game", func(t *testing.T) {
		server, gameUseCase := newServer(t)
		gameUseCase.EXPECT().
			GetOrCreateGame(mock.Anything, "p1").
			Return(entity.NewGame("g1", "p1"), nil).
			Once()

		rec := do(t, server, http.MethodPost, "/players/p1/game", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var game entity.Game
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &game))
		assert.Equal(t, "g1", game.ID)
		assert.Equal(t, entity.StatusHumanTurn, game.Status)
		assert.True(t, game.Board.IsEmpty())
	})

	t.Run("Missing game is 404", func(t *testing.T) {
		server, gameUseCase := newServer(t)
		gameUseCase.EXPECT().
			GetGame(mock.Anything, "p1").
			Return(nil, apperror.ErrGameNotFound).
			Once()

		rec := do(t, server, http.MethodGet, "/players/p1/game", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"game not found"}`, rec.Body.String())
	})

	t.Run("Reset returns the fresh game", func(t *testing.T) {
		server, gameUseCase := newServer(t)
		gameUseCase.EXPECT().
			ResetGame(mock.Anything, "p1").
			Return(entity.NewGame("g1", "p1"), nil).
			Once()

		rec := do(t, server, http.MethodPost, "/players/p1/game/reset", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_MakeTurn(t *testing.T) {
	t.Run("Returns the board after both moves", func(t *testing.T) {
		// Given: the use case answers a corner with the center
		server, gameUseCase := newServer(t)

		game := entity.NewGame("g1", "p1")
		game.Board[0] = tictactoe.HumanMark
		game.Board[4] = tictactoe.ComputerMark

		gameUseCase.EXPECT().
			MakeTurn(mock.Anything, "p1", 0).
			Return(game, nil).
			Once()

		// When: playing cell 0
		rec := do(t, server, http.MethodPost, "/players/p1/game/turns", `{"cell":0}`)

		// Then: the board carries both marks
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Board   []string `json:"board"`
			Status  string   `json:"status"`
			Outcome string   `json:"outcome"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, []string{"X", "", "", "", "O", "", "", "", ""}, got.Board)
		assert.Equal(t, "human_turn", got.Status)
		assert.Equal(t, "in_progress", got.Outcome)
	})

	t.Run("Missing cell is 400", func(t *testing.T) {
		server, _ := newServer(t)

		rec := do(t, server, http.MethodPost, "/players/p1/game/turns", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"cell is required"}`, rec.Body.String())
	})

	t.Run("Malformed body is 400", func(t *testing.T) {
		server, _ := newServer(t)

		rec := do(t, server, http.MethodPost, "/players/p1/game/turns", `{"cell":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid cell", err: fmt.Errorf("failed make turn: %w", apperror.ErrInvalidCell), status: http.StatusBadRequest},
		{name: "occupied cell", err: fmt.Errorf("failed make turn: %w", apperror.ErrCellOccupied), status: http.StatusConflict},
		{name: "finished game", err: fmt.Errorf("failed make turn: %w", apperror.ErrGameFinished), status: http.StatusConflict},
		{name: "no game", err: apperror.ErrGameNotFound, status: http.StatusNotFound},
		{name: "corrupt game status", err: fmt.Errorf("failed make turn: %w", entity.ErrUnknownGameStatus), status: http.StatusInternalServerError},
		{name: "storage failure", err: errStorage, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, gameUseCase := newServer(t)
			gameUseCase.EXPECT().
				MakeTurn(mock.Anything, "p1", 4).
				Return(nil, tt.err).
				Once()

			rec := do(t, server, http.MethodPost, "/players/p1/game/turns", `{"cell":4}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestServer_InternalErrorsAreHidden(t *testing.T) {
	server, gameUseCase := newServer(t)
	gameUseCase.EXPECT().
		GetGame(mock.Anything, "p1").
		Return(nil, errStorage).
		Once()

	rec := do(t, server, http.MethodGet, "/players/p1/game", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis")
}
