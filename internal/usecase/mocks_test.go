package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/chess-backend/internal/chess"
	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/internal/service"
)

type mockPlayerService struct {
	mock.Mock
}

func (that *mockPlayerService) CreatePlayer(ctx context.Context) (*entity.Player, error) {
	args := that.Called(ctx)
	return args.Get(0).(*entity.Player), args.Error(1)
}

func (that *mockPlayerService) GetPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Player), args.Error(1)
}

type mockGameService struct {
	mock.Mock
}

func (that *mockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

type mockGamePlayService struct {
	mock.Mock
}

func (that *mockGamePlayService) GetOrCreateGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	args := that.Called(ctx, player, gameType)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID, playerID)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGamePlayService) TapSquare(ctx context.Context, playerID string, row, col int) (*entity.Game, chess.Result, error) {
	args := that.Called(ctx, playerID, row, col)
	return args.Get(0).(*entity.Game), args.Get(1).(chess.Result), args.Error(2)
}

func (that *mockGamePlayService) TickClock(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGamePlayService) EndGame(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	return args.Get(0).(*entity.Game), args.Error(1)
}

type mockClockService struct {
	mock.Mock
}

func (that *mockClockService) Start(gameID string, tick service.TickFunc) {
	that.Called(gameID, tick)
}

func (that *mockClockService) Stop(gameID string) {
	that.Called(gameID)
}

func (that *mockClockService) StopAll() {
	that.Called()
}
