package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type bot interface {
	MakeTurn(game *entity.Game) (int, error)
}

// GameManager owns the turn order: the human moves, then the computer answers
// until the game is finished. Turns on the same game never overlap, and a player
// never gets two games created at once.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	bot        bot
	metrics    *metrics.Metrics

	locks *keyedMutex
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, bot bot, m *metrics.Metrics) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		bot:        bot,
		metrics:    m,

		locks: newKeyedMutex(),
	}
}

// MakeTurn plays the human's cell and, if the game goes on, the computer's reply.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrGameNotFound
	}

	unlock := that.locks.Lock(gameLockKey(player.GameID))
	defer unlock()

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmHumanTurn(); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = game.MakeTurn(tictactoe.HumanMark, cell); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if !game.IsFinished() {
		if _, err = that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("computer failed to make turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if game.IsFinished() {
		that.metrics.GamesFinished.WithLabelValues(game.Outcome.String()).Inc()
		that.logger.Info("game finished", "gameID", game.ID, "outcome", game.Outcome.String())
	}

	return game, nil
}

// GetOrCreateGame returns the player's current game, starting one if there is none or it expired.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "GetOrCreateGame")

	unlock := that.locks.Lock(playerLockKey(playerID))
	defer unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID != "" {
		existingGame, err := that.getGameByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		if !errors.Is(err, apperror.ErrGameNotFound) {
			return nil, fmt.Errorf("failed get game: %w", err)
		}

		log.Info("game expired, starting a new one", "gameID", player.GameID)
	}

	newGame, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrGameNotFound
	}

	return that.getGameByID(ctx, player.GameID)
}

// ResetGame clears the board of the player's game and gives the first move to the human.
func (that *GameManager) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	unlockPlayer := that.locks.Lock(playerLockKey(playerID))
	defer unlockPlayer()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return that.createGame(ctx, player)
	}

	unlockGame := that.locks.Lock(gameLockKey(player.GameID))
	defer unlockGame()

	game, err := that.getGameByID(ctx, player.GameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return that.createGame(ctx, player)
	}

	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id %w", err)
	}

	return player, nil
}

// Player locks are always taken before game locks.
func playerLockKey(id string) string {
	return "player:" + id
}

func gameLockKey(id string) string {
	return "game:" + id
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	newGame := entity.NewGame(pkg.GenerateGameID(), player.ID)

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	player.GameID = newGame.ID
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
