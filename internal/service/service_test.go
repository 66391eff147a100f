package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/chess-backend/internal/chess"
	"github.com/rocketscienceinc/chess-backend/internal/repository"
	"github.com/rocketscienceinc/chess-backend/testing/suite"
)

type services struct {
	logger   *slog.Logger
	players  PlayerService
	games    GameService
	gameplay GamePlayService
}

func newServices(t *testing.T, clockSeconds int, policy chess.ReselectPolicy) (context.Context, *services) {
	t.Helper()

	ctx, st := suite.NewSQLite(t)

	players := NewPlayerService(repository.NewSQLitePlayerRepository(st.SQLite.Connection))
	games := NewGameService(repository.NewSQLiteGameRepository(st.SQLite.Connection), clockSeconds)

	return ctx, &services{
		logger:   st.Logger,
		players:  players,
		games:    games,
		gameplay: NewGamePlayService(st.Logger, players, games, chess.NewEngine(policy)),
	}
}
