package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/chess-backend/internal/repository"
)

type GameHandler interface {
	GetGame(ctx echo.Context) error
	GetBoard(ctx echo.Context) error
}

type gameHandler struct {
	logger *slog.Logger
	games  gameReader
}

func NewGameHandler(logger *slog.Logger, games gameReader) GameHandler {
	return &gameHandler{
		logger: logger,
		games:  games,
	}
}

// GetGame returns the stored game as JSON.
func (that *gameHandler) GetGame(ctx echo.Context) error {
	log := that.logger.With("method", "GetGame")

	game, err := that.games.GetGameByID(ctx.Request().Context(), ctx.Param("id"))
	if errors.Is(err, repository.ErrGameNotFound) {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": "game not found"})
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return ctx.JSON(http.StatusOK, game)
}

// GetBoard returns the board of a game as a text diagram.
func (that *gameHandler) GetBoard(ctx echo.Context) error {
	log := that.logger.With("method", "GetBoard")

	game, err := that.games.GetGameByID(ctx.Request().Context(), ctx.Param("id"))
	if errors.Is(err, repository.ErrGameNotFound) {
		return ctx.String(http.StatusNotFound, "game not found")
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return ctx.String(http.StatusOK, game.State.Board.String())
}
