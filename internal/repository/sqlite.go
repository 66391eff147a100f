package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

// The sqlite repositories keep each record as a JSON document next to its id, the same shape
// the redis repositories store under their keys.

type sqlGame struct {
	db *sql.DB
}

func NewSQLiteGameRepository(db *sql.DB) GameRepository {
	return &sqlGame{db: db}
}

func (that *sqlGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = upsert(ctx, that.db, "games", game.ID, gameJSON); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *sqlGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	data, err := selectByID(ctx, that.db, "games", id)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Game{}, ErrGameNotFound
	}

	if err != nil {
		return &entity.Game{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(data, &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *sqlGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := deleteByID(ctx, that.db, "games", id)
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if !deleted {
		return ErrGameNotFound
	}

	return nil
}

type sqlPlayer struct {
	db *sql.DB
}

func NewSQLitePlayerRepository(db *sql.DB) PlayerRepository {
	return &sqlPlayer{db: db}
}

func (that *sqlPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if err = upsert(ctx, that.db, "players", player.ID, playerJSON); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

func (that *sqlPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	data, err := selectByID(ctx, that.db, "players", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal(data, &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}

func (that *sqlPlayer) DeleteByID(ctx context.Context, id string) error {
	deleted, err := deleteByID(ctx, that.db, "players", id)
	if err != nil {
		return fmt.Errorf("failed to delete player by ID: %w", err)
	}

	if !deleted {
		return ErrPlayerNotFound
	}

	return nil
}

// table is always one of the constant names above, never user input.
func upsert(ctx context.Context, db *sql.DB, table, id string, data []byte) error {
	query := `INSERT INTO ` + table + ` (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`

	if _, err := db.ExecContext(ctx, query, id, string(data)); err != nil {
		return err
	}

	return nil
}

func selectByID(ctx context.Context, db *sql.DB, table, id string) ([]byte, error) {
	var data string

	query := `SELECT data FROM ` + table + ` WHERE id = ?`
	if err := db.QueryRowContext(ctx, query, id).Scan(&data); err != nil {
		return nil, err
	}

	return []byte(data), nil
}

func deleteByID(ctx context.Context, db *sql.DB, table, id string) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
