package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

var errCellRequired = errors.New("cell is required")

type playerRequest struct {
	ID string `json:"id"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) createPlayer(c echo.Context) error {
	var req playerRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		}
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(c.Request().Context(), req.ID)
	if err != nil {
		return that.respondError(c, err)
	}

	return c.JSON(http.StatusOK, player)
}

func (that *Server) startGame(c echo.Context) error {
	game, err := that.gameUseCase.GetOrCreateGame(c.Request().Context(), c.Param("id"))
	if err != nil {
		return that.respondError(c, err)
	}

	return c.JSON(http.StatusOK, game)
}

func (that *Server) getGame(c echo.Context) error {
	game, err := that.gameUseCase.GetGame(c.Request().Context(), c.Param("id"))
	if err != nil {
		return that.respondError(c, err)
	}

	return c.JSON(http.StatusOK, game)
}

func (that *Server) makeTurn(c echo.Context) error {
	var req turnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if req.Cell == nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errCellRequired.Error()})
	}

	game, err := that.gameUseCase.MakeTurn(c.Request().Context(), c.Param("id"), *req.Cell)
	if err != nil {
		return that.respondError(c, err)
	}

	return c.JSON(http.StatusOK, game)
}

func (that *Server) resetGame(c echo.Context) error {
	game, err := that.gameUseCase.ResetGame(c.Request().Context(), c.Param("id"))
	if err != nil {
		return that.respondError(c, err)
	}

	return c.JSON(http.StatusOK, game)
}

// respondError maps domain errors to status codes. Unknown errors are logged and hidden.
func (that *Server) respondError(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "uri", c.Request().RequestURI, "error", err)
		return c.JSON(status, errorResponse{Error: http.StatusText(status)})
	}

	return c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrPlayerNotFound), errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
