package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/chess"
	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

type GamePlayService interface {
	GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)

	TapSquare(ctx context.Context, playerID string, row, col int) (*entity.Game, chess.Result, error)
	TickClock(ctx context.Context, gameID string) (*entity.Game, error)

	EndGame(ctx context.Context, gameID string) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService

	engine *chess.Engine
	locks  *gameLocks
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, engine *chess.Engine) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		engine:        engine,
		locks:         newGameLocks(),
	}
}

// TapSquare feeds a tap from playerID into the engine and persists the resulting state.
func (that *gamePlayService) TapSquare(ctx context.Context, playerID string, row, col int) (*entity.Game, chess.Result, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, chess.Result{}, fmt.Errorf("failed to get player by id: %w", err)
	}

	if !player.InGame() {
		return nil, chess.Result{}, apperror.ErrNotInGame
	}

	unlock := that.locks.Lock(player.GameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, chess.Result{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, chess.Result{}, err
	}

	if err = game.CanMove(player); err != nil {
		return game, chess.Result{}, err
	}

	state, result, err := that.engine.SquareTapped(game.State, row, col)
	if err != nil {
		return game, chess.Result{}, fmt.Errorf("failed to tap square: %w", err)
	}

	if result.Transition == chess.TransitionIgnored {
		return game, result, nil
	}

	game.State = state
	if result.Move != nil {
		game.LastMove = result.Move
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, chess.Result{}, fmt.Errorf("failed to update game: %w", err)
	}

	return game, result, nil
}

// TickClock takes a second off the active side's clock. Games that are not ongoing are left alone.
func (that *gamePlayService) TickClock(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	game.State = that.engine.ClockTick(game.State)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if player.InGame() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrAlreadyInGame, player.GameID)
	}

	if game.IsFull() || !game.IsWaiting() {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameIsFull, gameID)
	}

	player.GameID = game.ID
	player.Color = chess.Black.String()
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	game.Status = entity.StatusOngoing
	game.Players = append(game.Players, player)
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// GetOrCreateGame returns the player's current game or creates a new one of gameType.
func (that *gamePlayService) GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	if !player.InGame() {
		game, updatedPlayer, err := that.gameService.CreateGame(ctx, player, gameType)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		if err = that.playerService.UpdatePlayer(ctx, updatedPlayer); err != nil {
			return nil, fmt.Errorf("failed to update player: %w", err)
		}

		return game, nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// EndGame marks the game finished and releases its players. The returned game still lists them
// so the caller can notify everyone.
func (that *gamePlayService) EndGame(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Finish()
	that.CleanupGame(ctx, game)

	return game, nil
}

func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "cleanupGame", "gameID", game.ID)

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		released := *player
		released.LeaveGame()
		if err := that.playerService.UpdatePlayer(ctx, &released); err != nil {
			log.Error("failed to update", "player", player.ID, "error", err)
		}
	}
}
