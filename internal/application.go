package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := newEngine(conf.Engine)
	if err != nil {
		return err
	}

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	playerRepo := repository.NewPlayerRepository(redisStorage, conf.Redis.SessionTTL)
	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.SessionTTL)
	bot := service.NewBotService(logger, engine, appMetrics)
	gameUseCase := usecase.NewGameManager(logger, playerRepo, gameRepo, bot, appMetrics)

	restServer := rest.New(logger, gameUseCase, registry)
	wsServer := websocket.New(logger, gameUseCase)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if httpErr := restServer.Start(groupCtx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	group.Go(func() error {
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	log.Info("Application started", "scoring", engine.Scoring().String(), "fullSearch", conf.Engine.FullSearch)

	err = group.Wait()

	log.Info("Application stopped")

	return err
}

func newEngine(conf config.Engine) (*tictactoe.Engine, error) {
	scoring, err := tictactoe.ParseScoring(conf.Scoring)
	if err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return tictactoe.NewEngine(
		tictactoe.WithScoring(scoring),
		tictactoe.WithCenterOpening(!conf.FullSearch),
	), nil
}
