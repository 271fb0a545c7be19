package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leetify-go/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{db: sqlDB, logger: logger}
}

const playerColumns = `steam64_id, leetify_id, name, privacy_mode, winrate, total_matches,
	premier_rank, leetify_rating, last_synced_at, created_at, updated_at`

func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	now := time.Now().UTC()
	if player.CreatedAt.IsZero() {
		player.CreatedAt = now
	}
	player.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (steam64_id) DO UPDATE SET
			leetify_id = excluded.leetify_id,
			name = excluded.name,
			privacy_mode = excluded.privacy_mode,
			winrate = excluded.winrate,
			total_matches = excluded.total_matches,
			premier_rank = excluded.premier_rank,
			leetify_rating = excluded.leetify_rating,
			last_synced_at = excluded.last_synced_at,
			updated_at = excluded.updated_at`,
		player.Steam64ID,
		player.LeetifyID,
		player.Name,
		player.PrivacyMode,
		player.Winrate,
		player.TotalMatches,
		player.PremierRank,
		player.LeetifyRating,
		player.LastSyncedAt,
		player.CreatedAt,
		player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.Steam64ID, err)
	}

	r.logger.Debug().Str("steam64_id", player.Steam64ID).Msg("player upserted")
	return nil
}

func (r *PlayerRepository) Get(ctx context.Context, steam64ID string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE steam64_id = ?`, steam64ID)
	return scanPlayer(row)
}

func (r *PlayerRepository) GetByLeetifyID(ctx context.Context, leetifyID string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE leetify_id = ?`, leetifyID)
	return scanPlayer(row)
}

// List returns stored players, most recently synced first.
func (r *PlayerRepository) List(ctx context.Context, limit int) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY last_synced_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(s scanner) (*domain.Player, error) {
	var (
		p       domain.Player
		premier sql.NullInt64
		rating  sql.NullFloat64
	)
	err := s.Scan(
		&p.Steam64ID,
		&p.LeetifyID,
		&p.Name,
		&p.PrivacyMode,
		&p.Winrate,
		&p.TotalMatches,
		&premier,
		&rating,
		&p.LastSyncedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}

	if premier.Valid {
		v := int(premier.Int64)
		p.PremierRank = &v
	}
	if rating.Valid {
		v := rating.Float64
		p.LeetifyRating = &v
	}
	return &p, nil
}
