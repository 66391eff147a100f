package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/chess"
	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/internal/service"
)

const updatesBuffer = 256

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	GetGameByID(ctx context.Context, gameID string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)

	TapSquare(ctx context.Context, playerID string, row, col int) (*entity.Game, chess.Result, error)
	EndGame(ctx context.Context, gameID string) (*entity.Game, error)

	// Updates delivers every game whose state changed, after taps, clock ticks and endings.
	Updates() <-chan *entity.Game
	Shutdown()
}

type playerService interface {
	CreatePlayer(ctx context.Context) (*entity.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameService interface {
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type gamePlayService interface {
	GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	TapSquare(ctx context.Context, playerID string, row, col int) (*entity.Game, chess.Result, error)
	TickClock(ctx context.Context, gameID string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type clockService interface {
	Start(gameID string, tick service.TickFunc)
	Stop(gameID string)
	StopAll()
}

type gameUseCase struct {
	logger *slog.Logger

	playerService   playerService
	gameService     gameService
	gamePlayService gamePlayService
	clockService    clockService

	updates chan *entity.Game
}

func NewGameUseCase(
	logger *slog.Logger,
	playerService playerService,
	gameService gameService,
	gamePlayService gamePlayService,
	clockService clockService,
) GameUseCase {
	return &gameUseCase{
		logger:          logger,
		playerService:   playerService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
		clockService:    clockService,
		updates:         make(chan *entity.Game, updatesBuffer),
	}
}

func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetGameByPlayerID returns the player's current game and resumes its clock if needed.
func (that *gameUseCase) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if !player.InGame() {
		return nil, apperror.ErrNotInGame
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	that.ensureClock(game)

	return game, nil
}

func (that *gameUseCase) GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	game, err := that.gamePlayService.GetOrCreateGame(ctx, player, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create game: %w", err)
	}

	that.ensureClock(game)

	return game, nil
}

func (that *gameUseCase) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.JoinGameByID(ctx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	that.ensureClock(game)
	that.publish(ctx, game)

	return game, nil
}

func (that *gameUseCase) TapSquare(ctx context.Context, playerID string, row, col int) (*entity.Game, chess.Result, error) {
	game, result, err := that.gamePlayService.TapSquare(ctx, playerID, row, col)
	if err != nil {
		return game, chess.Result{}, fmt.Errorf("failed to tap square: %w", err)
	}

	if result.Transition != chess.TransitionIgnored {
		that.publish(ctx, game)
	}

	return game, result, nil
}

// EndGame stops the clock before finishing the game, so no tick lands on a deleted game.
func (that *gameUseCase) EndGame(ctx context.Context, gameID string) (*entity.Game, error) {
	that.clockService.Stop(gameID)

	game, err := that.gamePlayService.EndGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to end game: %w", err)
	}

	that.publish(ctx, game)

	return game, nil
}

func (that *gameUseCase) Updates() <-chan *entity.Game {
	return that.updates
}

func (that *gameUseCase) Shutdown() {
	that.clockService.StopAll()
}

func (that *gameUseCase) ensureClock(game *entity.Game) {
	if game.IsOngoing() {
		that.clockService.Start(game.ID, that.tick)
	}
}

func (that *gameUseCase) tick(ctx context.Context, gameID string) bool {
	log := that.logger.With("method", "tick", "gameID", gameID)

	game, err := that.gamePlayService.TickClock(ctx, gameID)
	if err != nil {
		log.Warn("stopping clock", "error", err)
		return false
	}

	that.publish(ctx, game)

	return true
}

func (that *gameUseCase) publish(ctx context.Context, game *entity.Game) {
	select {
	case that.updates <- game:
	case <-ctx.Done():
		that.logger.Warn("dropped game update", "gameID", game.ID, "error", ctx.Err())
	}
}
