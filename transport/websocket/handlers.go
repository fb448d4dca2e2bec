package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

var (
	errPlayerRequired = errors.New("player is required")
	errCellRequired   = errors.New("cell is required")
	errUnknownAction  = errors.New("unknown action")
	errInternal       = errors.New("internal error")
)

func (that *Server) handleConnect(ctx context.Context, req *Payload) (*Payload, error) {
	log := that.logger.With("method", "handleConnect")

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, req.playerID())
	if err != nil {
		return nil, err
	}

	resp := &Payload{Player: player}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetGame(ctx, player.ID)
		switch {
		case err == nil:
			resp.Game = game
		case errors.Is(err, apperror.ErrGameNotFound):
			log.Debug("game of reconnected player expired", "playerID", player.ID)
		default:
			return nil, err
		}
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return resp, nil
}

func (that *Server) handleNewGame(ctx context.Context, req *Payload) (*Payload, error) {
	if req.playerID() == "" {
		return nil, errPlayerRequired
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, req.playerID())
	if err != nil {
		return nil, err
	}

	return &Payload{Player: req.Player, Game: game}, nil
}

func (that *Server) handleGameTurn(ctx context.Context, req *Payload) (*Payload, error) {
	if req.playerID() == "" {
		return nil, errPlayerRequired
	}

	if req.Cell == nil {
		return nil, errCellRequired
	}

	game, err := that.gameUseCase.MakeTurn(ctx, req.playerID(), *req.Cell)
	if err != nil {
		return nil, err
	}

	return &Payload{Player: req.Player, Game: game}, nil
}

func (that *Server) handleGameReset(ctx context.Context, req *Payload) (*Payload, error) {
	if req.playerID() == "" {
		return nil, errPlayerRequired
	}

	game, err := that.gameUseCase.ResetGame(ctx, req.playerID())
	if err != nil {
		return nil, err
	}

	return &Payload{Player: req.Player, Game: game}, nil
}

// clientError keeps domain errors readable and hides the rest.
func clientError(err error) error {
	for _, known := range []error{
		errPlayerRequired,
		errCellRequired,
		errUnknownAction,
		apperror.ErrInvalidCell,
		apperror.ErrCellOccupied,
		apperror.ErrGameFinished,
		apperror.ErrNotYourTurn,
		apperror.ErrGameNotFound,
		apperror.ErrPlayerNotFound,
	} {
		if errors.Is(err, known) {
			return known
		}
	}

	return errInternal
}
