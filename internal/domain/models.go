package domain

import (
	"time"
)

// Player is the stored snapshot of a Leetify profile as of LastSyncedAt.
type Player struct {
	Steam64ID     string    `json:"steam64_id"`
	LeetifyID     string    `json:"leetify_id,omitempty"`
	Name          string    `json:"name"`
	PrivacyMode   string    `json:"privacy_mode"`
	Winrate       float64   `json:"winrate"`
	TotalMatches  int       `json:"total_matches"`
	PremierRank   *int      `json:"premier_rank,omitempty"`
	LeetifyRating *float64  `json:"leetify_rating,omitempty"`
	LastSyncedAt  time.Time `json:"last_synced_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Match struct {
	ID                string    `json:"id"`
	DataSource        string    `json:"data_source"` // "faceit", "matchmaking", ...
	DataSourceMatchID string    `json:"data_source_match_id"`
	MapName           string    `json:"map_name"`
	FinishedAt        time.Time `json:"finished_at"`
	Team1Score        int       `json:"team1_score"`
	Team2Score        int       `json:"team2_score"`
	HasBannedPlayer   bool      `json:"has_banned_player"`
	CreatedAt         time.Time `json:"created_at"`
}

type MatchPlayer struct {
	ID            string   `json:"id"` // nanoid
	MatchID       string   `json:"match_id"`
	Steam64ID     string   `json:"steam64_id"`
	Name          string   `json:"name"`
	TeamNumber    int      `json:"team_number"`
	Kills         int      `json:"kills"`
	Deaths        int      `json:"deaths"`
	Assists       int      `json:"assists"`
	LeetifyRating *float64 `json:"leetify_rating,omitempty"`
}

// PlayerMatch is one match from a single player's point of view.
type PlayerMatch struct {
	Match
	Stats MatchPlayer `json:"stats"`
}
