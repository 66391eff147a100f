package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/chess"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	// PrivateType is a two-player game; the second player joins by game id.
	PrivateType = "private"
	// LocalType is a hot-seat game where one player moves both colors.
	LocalType = "local"
)

const maxPlayers = 2

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID       string      `json:"id"`
	Type     string      `json:"type,omitempty"`
	Status   string      `json:"status"`
	State    chess.State `json:"state"`
	Players  []*Player   `json:"players,omitempty"`
	LastMove *chess.Move `json:"last_move,omitempty"`
}

// NewGame returns a game in the starting position. Local games start right away, private games
// wait for an opponent.
func NewGame(id, gameType string, clockSeconds int) (*Game, error) {
	if err := ValidateGameType(gameType); err != nil {
		return nil, err
	}

	status := StatusWaiting
	if gameType == LocalType {
		status = StatusOngoing
	}

	return &Game{
		ID:     id,
		Type:   gameType,
		Status: status,
		State:  chess.NewState(clockSeconds),
	}, nil
}

func ValidateGameType(gameType string) error {
	switch gameType {
	case PrivateType, LocalType:
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsLocal() bool {
	return that.Type == LocalType
}

func (that *Game) IsFull() bool {
	if that.IsLocal() {
		return len(that.Players) >= 1
	}
	return len(that.Players) >= maxPlayers
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) HasPlayer(playerID string) bool {
	return slices.ContainsFunc(that.Players, func(p *Player) bool {
		return p.ID == playerID
	})
}

// CanMove reports whether player may tap squares right now. In a local game the only player
// moves for both sides; in a private game only the owner of the active color may.
func (that *Game) CanMove(player *Player) error {
	if !that.HasPlayer(player.ID) {
		return apperror.ErrNotInGame
	}

	if that.IsLocal() {
		return nil
	}

	if player.Color != that.State.Active.String() {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *Game) Finish() {
	that.Status = StatusFinished
}
