package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leetify-go/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{db: sqlDB, logger: logger}
}

// UpsertMatch stores a match and its stat lines in one transaction. Stat
// lines keep their id across re-syncs.
func (r *MatchRepository) UpsertMatch(ctx context.Context, match *domain.Match, players []domain.MatchPlayer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (id, data_source, data_source_match_id, map_name, finished_at,
			team1_score, team2_score, has_banned_player, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			data_source = excluded.data_source,
			data_source_match_id = excluded.data_source_match_id,
			map_name = excluded.map_name,
			finished_at = excluded.finished_at,
			team1_score = excluded.team1_score,
			team2_score = excluded.team2_score,
			has_banned_player = excluded.has_banned_player`,
		match.ID,
		match.DataSource,
		match.DataSourceMatchID,
		match.MapName,
		match.FinishedAt,
		match.Team1Score,
		match.Team2Score,
		match.HasBannedPlayer,
		match.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", match.ID, err)
	}

	for i := range players {
		p := &players[i]
		if p.ID == "" {
			p.ID, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		p.MatchID = match.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO match_players (id, match_id, steam64_id, name, team_number,
				kills, deaths, assists, leetify_rating)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (match_id, steam64_id) DO UPDATE SET
				name = excluded.name,
				team_number = excluded.team_number,
				kills = excluded.kills,
				deaths = excluded.deaths,
				assists = excluded.assists,
				leetify_rating = excluded.leetify_rating`,
			p.ID,
			p.MatchID,
			p.Steam64ID,
			p.Name,
			p.TeamNumber,
			p.Kills,
			p.Deaths,
			p.Assists,
			p.LeetifyRating,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert match player %s/%s: %w", match.ID, p.Steam64ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match %s: %w", match.ID, err)
	}

	r.logger.Debug().Str("match_id", match.ID).Int("players", len(players)).Msg("match upserted")
	return nil
}

// GetByPlayer returns a player's stored matches, newest first.
func (r *MatchRepository) GetByPlayer(ctx context.Context, steam64ID string, limit int) ([]domain.PlayerMatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.data_source, m.data_source_match_id, m.map_name, m.finished_at,
			m.team1_score, m.team2_score, m.has_banned_player, m.created_at,
			mp.id, mp.steam64_id, mp.name, mp.team_number, mp.kills, mp.deaths,
			mp.assists, mp.leetify_rating
		FROM match_players mp
		JOIN matches m ON m.id = mp.match_id
		WHERE mp.steam64_id = ?
		ORDER BY m.finished_at DESC
		LIMIT ?`, steam64ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for %s: %w", steam64ID, err)
	}
	defer rows.Close()

	var result []domain.PlayerMatch
	for rows.Next() {
		var (
			pm     domain.PlayerMatch
			rating sql.NullFloat64
		)
		err := rows.Scan(
			&pm.ID,
			&pm.DataSource,
			&pm.DataSourceMatchID,
			&pm.MapName,
			&pm.FinishedAt,
			&pm.Team1Score,
			&pm.Team2Score,
			&pm.HasBannedPlayer,
			&pm.CreatedAt,
			&pm.Stats.ID,
			&pm.Stats.Steam64ID,
			&pm.Stats.Name,
			&pm.Stats.TeamNumber,
			&pm.Stats.Kills,
			&pm.Stats.Deaths,
			&pm.Stats.Assists,
			&rating,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		pm.Stats.MatchID = pm.ID
		if rating.Valid {
			v := rating.Float64
			pm.Stats.LeetifyRating = &v
		}
		result = append(result, pm)
	}
	return result, rows.Err()
}

func (r *MatchRepository) Count(ctx context.Context, steam64ID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_players WHERE steam64_id = ?`, steam64ID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches for %s: %w", steam64ID, err)
	}
	return n, nil
}
