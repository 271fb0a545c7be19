package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leetify-go/internal/constants"
	"leetify-go/internal/domain"
	"leetify-go/internal/repository"
	"leetify-go/leetify"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownPlayer is returned by History for a Leetify id that was never
// synced, since only the Steam64 id is indexed.
var ErrUnknownPlayer = errors.New("player has not been synced")

type TrackerService struct {
	client  *leetify.Client
	players *repository.PlayerRepository
	matches *repository.MatchRepository
	logger  zerolog.Logger
}

func NewTrackerService(
	client *leetify.Client,
	players *repository.PlayerRepository,
	matches *repository.MatchRepository,
	logger zerolog.Logger,
) *TrackerService {
	return &TrackerService{client: client, players: players, matches: matches, logger: logger}
}

type SyncResult struct {
	Player        *domain.Player `json:"player"`
	MatchesStored int            `json:"matches_stored"`
	StatLines     int            `json:"stat_lines"`
}

// Sync pulls a player's profile and match history from Leetify and stores
// both.
func (s *TrackerService) Sync(ctx context.Context, id leetify.PlayerID) (*SyncResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("id", id.String()).Str("kind", id.Kind().String()).Msg("syncing player")

	bound := s.client.Player(id)

	var (
		profile *leetify.Profile
		history []leetify.MatchSummary
	)

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	g, gctx := errgroup.WithContext(apiCtx)
	g.Go(func() error {
		p, err := bound.Profile(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		m, err := bound.Matches(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch matches: %w", err)
		}
		history = m
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("sync fetch failed")
		return nil, err
	}

	player := playerSnapshot(profile, id, time.Now().UTC())
	if existing, err := s.players.Get(ctx, player.Steam64ID); err == nil {
		player.CreatedAt = existing.CreatedAt
	}
	if err := s.players.Upsert(ctx, player); err != nil {
		s.logger.Error().Err(err).Str("steam64_id", player.Steam64ID).Msg("failed to upsert player")
		return nil, err
	}

	result := &SyncResult{Player: player}
	for i := range history {
		match, lines := matchSnapshot(&history[i])
		if err := s.matches.UpsertMatch(ctx, match, lines); err != nil {
			s.logger.Error().Err(err).Str("match_id", match.ID).Msg("failed to upsert match")
			return nil, err
		}
		result.MatchesStored++
		result.StatLines += len(lines)
	}

	s.logger.Info().
		Str("steam64_id", player.Steam64ID).
		Int("matches", result.MatchesStored).
		Int("stat_lines", result.StatLines).
		Msg("player synced")
	return result, nil
}

// History returns a player's stored matches, newest first.
func (s *TrackerService) History(ctx context.Context, id leetify.PlayerID, limit int) ([]domain.PlayerMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	switch {
	case limit <= 0:
		limit = constants.DefaultHistoryLimit
	case limit > constants.MaxHistoryLimit:
		limit = constants.MaxHistoryLimit
	}

	steam64 := id.String()
	if id.IsLeetify() {
		player, err := s.players.GetByLeetifyID(ctx, id.String())
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
		if err != nil {
			return nil, err
		}
		steam64 = player.Steam64ID
	}

	s.logger.Debug().Str("steam64_id", steam64).Int("limit", limit).Msg("getting match history")

	matches, err := s.matches.GetByPlayer(ctx, steam64, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("steam64_id", steam64).Msg("failed to get match history")
		return nil, err
	}
	return matches, nil
}

// playerSnapshot falls back to the requested id when the profile omits its
// Leetify id, so a player synced by Leetify id can be looked up by it.
func playerSnapshot(p *leetify.Profile, id leetify.PlayerID, syncedAt time.Time) *domain.Player {
	player := &domain.Player{
		Steam64ID:     p.Steam64ID,
		Name:          p.Name,
		PrivacyMode:   p.PrivacyMode,
		Winrate:       p.Winrate,
		TotalMatches:  p.TotalMatches,
		PremierRank:   p.Ranks.Premier,
		LeetifyRating: p.Ranks.Leetify,
		LastSyncedAt:  syncedAt,
	}
	switch {
	case p.ID != nil:
		player.LeetifyID = *p.ID
	case id.IsLeetify():
		player.LeetifyID = id.String()
	}
	return player
}

func matchSnapshot(m *leetify.MatchDetails) (*domain.Match, []domain.MatchPlayer) {
	match := &domain.Match{
		ID:                m.ID,
		DataSource:        m.DataSource.String(),
		DataSourceMatchID: m.DataSourceMatchID,
		MapName:           m.MapName,
		FinishedAt:        m.FinishedAt.UTC(),
		Team1Score:        m.TeamScores[0].Score,
		Team2Score:        m.TeamScores[1].Score,
		HasBannedPlayer:   m.HasBannedPlayer,
	}

	lines := make([]domain.MatchPlayer, 0, len(m.Stats))
	for _, st := range m.Stats {
		lines = append(lines, domain.MatchPlayer{
			Steam64ID:     st.Steam64ID,
			Name:          st.Name,
			TeamNumber:    st.InitialTeamNumber,
			Kills:         st.TotalKills,
			Deaths:        st.TotalDeaths,
			Assists:       st.TotalAssists,
			LeetifyRating: st.LeetifyRating,
		})
	}
	return match, lines
}
