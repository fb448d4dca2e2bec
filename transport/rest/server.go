package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, error)
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase

	echo *echo.Echo
}

// New builds the HTTP API. Metrics are served from gatherer.
func New(logger *slog.Logger, gameUseCase gameUseCase, gatherer prometheus.Gatherer) *Server {
	server := &Server{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,

		echo: echo.New(),
	}

	server.echo.HideBanner = true
	server.echo.HidePort = true
	server.echo.Server.ReadTimeout = 10 * time.Second
	server.echo.Server.WriteTimeout = 10 * time.Second
	server.echo.Server.IdleTimeout = 30 * time.Second

	server.echo.Use(middleware.Recover())
	server.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			server.logger.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"error", v.Error,
			)
			return nil
		},
	}))

	server.echo.GET("/ping", server.ping)
	server.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	server.echo.POST("/players", server.createPlayer)

	game := server.echo.Group("/players/:id/game")
	game.POST("", server.startGame)
	game.GET("", server.getGame)
	game.POST("/turns", server.makeTurn)
	game.POST("/reset", server.resetGame)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves on port until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := that.echo.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", "error", err)
		}
	}()

	log.Info("Starting HTTP server", "port", port)

	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
