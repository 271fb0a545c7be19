package leetify

import (
	"encoding/json"
	"fmt"
	"time"
)

type Profile struct {
	PrivacyMode     string           `json:"privacy_mode"`
	Winrate         float64          `json:"winrate"`
	TotalMatches    int              `json:"total_matches"`
	FirstMatchDate  *time.Time       `json:"first_match_date,omitempty"`
	Name            string           `json:"name"`
	Bans            []PlatformBan    `json:"bans"`
	Steam64ID       string           `json:"steam64_id"`
	ID              *string          `json:"id,omitempty"`
	Ranks           Ranks            `json:"ranks"`
	Rating          Rating           `json:"rating"`
	Stats           Stats            `json:"stats"`
	RecentMatches   []RecentMatch    `json:"recent_matches"`
	RecentTeammates []RecentTeammate `json:"recent_teammates"`
}

func (p *Profile) HasBans() bool {
	return len(p.Bans) > 0
}

type Ranks struct {
	Leetify     *float64          `json:"leetify,omitempty"`
	Premier     *int              `json:"premier,omitempty"`
	Faceit      *int              `json:"faceit,omitempty"`
	FaceitElo   *int              `json:"faceit_elo,omitempty"`
	Wingman     *int              `json:"wingman,omitempty"`
	Renown      *int              `json:"renown,omitempty"`
	Competitive []CompetitiveRank `json:"competitive"`
}

type CompetitiveRank struct {
	MapName string `json:"map_name"`
	Rank    int    `json:"rank"`
}

type Rating struct {
	Aim         float64 `json:"aim"`
	Positioning float64 `json:"positioning"`
	Utility     float64 `json:"utility"`
	Clutch      float64 `json:"clutch"`
	Opening     float64 `json:"opening"`
	CTLeetify   float64 `json:"ct_leetify"`
	TLeetify    float64 `json:"t_leetify"`
}

type Stats struct {
	AccuracyEnemySpotted           float64 `json:"accuracy_enemy_spotted"`
	AccuracyHead                   float64 `json:"accuracy_head"`
	CounterStrafingGoodShotsRatio  float64 `json:"counter_strafing_good_shots_ratio"`
	CTOpeningAggressionSuccessRate float64 `json:"ct_opening_aggression_success_rate"`
	CTOpeningDuelSuccessPercentage float64 `json:"ct_opening_duel_success_percentage"`
	FlashbangHitFoeAvgDuration     float64 `json:"flashbang_hit_foe_avg_duration"`
	FlashbangHitFoePerFlashbang    float64 `json:"flashbang_hit_foe_per_flashbang"`
	FlashbangHitFriendPerFlashbang float64 `json:"flashbang_hit_friend_per_flashbang"`
	FlashbangLeadingToKill         float64 `json:"flashbang_leading_to_kill"`
	FlashbangThrown                float64 `json:"flashbang_thrown"`
	HEFoesDamageAvg                float64 `json:"he_foes_damage_avg"`
	HEFriendsDamageAvg             float64 `json:"he_friends_damage_avg"`
	Preaim                         float64 `json:"preaim"`
	ReactionTimeMs                 float64 `json:"reaction_time_ms"`
	SprayAccuracy                  float64 `json:"spray_accuracy"`
	TOpeningAggressionSuccessRate  float64 `json:"t_opening_aggression_success_rate"`
	TOpeningDuelSuccessPercentage  float64 `json:"t_opening_duel_success_percentage"`
	TradedDeathsSuccessPercentage  float64 `json:"traded_deaths_success_percentage"`
	TradeKillOpportunitiesPerRound float64 `json:"trade_kill_opportunities_per_round"`
	TradeKillsSuccessPercentage    float64 `json:"trade_kills_success_percentage"`
	UtilityOnDeathAvg              float64 `json:"utility_on_death_avg"`
}

type RecentMatch struct {
	ID                   string     `json:"id"`
	FinishedAt           time.Time  `json:"finished_at"`
	DataSource           DataSource `json:"data_source"`
	Outcome              string     `json:"outcome"`
	Rank                 int        `json:"rank"`
	RankType             *int       `json:"rank_type,omitempty"`
	MapName              string     `json:"map_name"`
	LeetifyRating        float64    `json:"leetify_rating"`
	Score                Score      `json:"score"`
	Preaim               float64    `json:"preaim"`
	ReactionTimeMs       int        `json:"reaction_time_ms"`
	AccuracyEnemySpotted float64    `json:"accuracy_enemy_spotted"`
	AccuracyHead         float64    `json:"accuracy_head"`
	SprayAccuracy        float64    `json:"spray_accuracy"`
}

type RecentTeammate struct {
	Steam64ID          string `json:"steam64_id"`
	RecentMatchesCount int    `json:"recent_matches_count"`
}

type PlatformBan struct {
	Platform         string    `json:"platform"`
	PlatformNickname string    `json:"platform_nickname"`
	BannedSince      time.Time `json:"banned_since"`
}

// MatchSummary is an element of a player's match history. The history
// endpoint returns full match records.
type MatchSummary = MatchDetails

type MatchDetails struct {
	ID                string        `json:"id"`
	FinishedAt        time.Time     `json:"finished_at"`
	DataSource        DataSource    `json:"data_source"`
	DataSourceMatchID string        `json:"data_source_match_id"`
	MapName           string        `json:"map_name"`
	HasBannedPlayer   bool          `json:"has_banned_player"`
	TeamScores        TeamScores    `json:"team_scores"`
	Stats             []PlayerStats `json:"stats"`
}

// PlayerStats returns the stat line for steam64, if that player took part.
func (m *MatchDetails) PlayerStats(steam64 string) (*PlayerStats, bool) {
	for i := range m.Stats {
		if m.Stats[i].Steam64ID == steam64 {
			return &m.Stats[i], true
		}
	}
	return nil, false
}

type TeamScore struct {
	TeamNumber int `json:"team_number"`
	Score      int `json:"score"`
}

type PlayerStats struct {
	Steam64ID                         string   `json:"steam64_id"`
	Name                              string   `json:"name"`
	MVPs                              int      `json:"mvps"`
	Preaim                            float64  `json:"preaim"`
	ReactionTime                      float64  `json:"reaction_time"`
	Accuracy                          float64  `json:"accuracy"`
	AccuracyEnemySpotted              float64  `json:"accuracy_enemy_spotted"`
	AccuracyHead                      float64  `json:"accuracy_head"`
	ShotsFiredEnemySpotted            int      `json:"shots_fired_enemy_spotted"`
	ShotsFired                        int      `json:"shots_fired"`
	ShotsHitEnemySpotted              int      `json:"shots_hit_enemy_spotted"`
	ShotsHitFriend                    int      `json:"shots_hit_friend"`
	ShotsHitFriendHead                int      `json:"shots_hit_friend_head"`
	ShotsHitFoe                       int      `json:"shots_hit_foe"`
	ShotsHitFoeHead                   int      `json:"shots_hit_foe_head"`
	UtilityOnDeathAvg                 float64  `json:"utility_on_death_avg"`
	HEFoesDamageAvg                   float64  `json:"he_foes_damage_avg"`
	HEFriendsDamageAvg                float64  `json:"he_friends_damage_avg"`
	HEThrown                          int      `json:"he_thrown"`
	MolotovThrown                     int      `json:"molotov_thrown"`
	SmokeThrown                       int      `json:"smoke_thrown"`
	CounterStrafingShotsAll           int      `json:"counter_strafing_shots_all"`
	CounterStrafingShotsBad           int      `json:"counter_strafing_shots_bad"`
	CounterStrafingShotsGood          int      `json:"counter_strafing_shots_good"`
	CounterStrafingShotsGoodRatio     float64  `json:"counter_strafing_shots_good_ratio"`
	FlashbangHitFoe                   int      `json:"flashbang_hit_foe"`
	FlashbangLeadingToKill            int      `json:"flashbang_leading_to_kill"`
	FlashbangHitFoeAvgDuration        float64  `json:"flashbang_hit_foe_avg_duration"`
	FlashbangHitFriend                int      `json:"flashbang_hit_friend"`
	FlashbangThrown                   int      `json:"flashbang_thrown"`
	FlashAssist                       int      `json:"flash_assist"`
	Score                             int      `json:"score"`
	InitialTeamNumber                 int      `json:"initial_team_number"`
	SprayAccuracy                     float64  `json:"spray_accuracy"`
	TotalKills                        int      `json:"total_kills"`
	TotalDeaths                       int      `json:"total_deaths"`
	KDRatio                           float64  `json:"kd_ratio"`
	RoundsSurvived                    int      `json:"rounds_survived"`
	RoundsSurvivedPercentage          float64  `json:"rounds_survived_percentage"`
	DPR                               float64  `json:"dpr"`
	TotalAssists                      int      `json:"total_assists"`
	TotalDamage                       int      `json:"total_damage"`
	LeetifyRating                     *float64 `json:"leetify_rating,omitempty"`
	CTLeetifyRating                   *float64 `json:"ct_leetify_rating,omitempty"`
	TLeetifyRating                    *float64 `json:"t_leetify_rating,omitempty"`
	Multi1k                           int      `json:"multi1k"`
	Multi2k                           int      `json:"multi2k"`
	Multi3k                           int      `json:"multi3k"`
	Multi4k                           int      `json:"multi4k"`
	Multi5k                           int      `json:"multi5k"`
	RoundsCount                       int      `json:"rounds_count"`
	RoundsWon                         int      `json:"rounds_won"`
	RoundsLost                        int      `json:"rounds_lost"`
	TotalHSKills                      int      `json:"total_hs_kills"`
	TradeKillOpportunities            int      `json:"trade_kill_opportunities"`
	TradeKillAttempts                 int      `json:"trade_kill_attempts"`
	TradeKillsSucceed                 int      `json:"trade_kills_succeed"`
	TradeKillAttemptsPercentage       float64  `json:"trade_kill_attempts_percentage"`
	TradeKillsSuccessPercentage       float64  `json:"trade_kills_success_percentage"`
	TradeKillOpportunitiesPerRound    float64  `json:"trade_kill_opportunities_per_round"`
	TradedDeathOpportunities          int      `json:"traded_death_opportunities"`
	TradedDeathAttempts               int      `json:"traded_death_attempts"`
	TradedDeathsSucceed               int      `json:"traded_deaths_succeed"`
	TradedDeathAttemptsPercentage     float64  `json:"traded_death_attempts_percentage"`
	TradedDeathsSuccessPercentage     float64  `json:"traded_deaths_success_percentage"`
	TradedDeathsOpportunitiesPerRound float64  `json:"traded_deaths_opportunities_per_round"`
}

// Score is a two-sided round score; the API always sends exactly two values.
type Score [2]int

func (s *Score) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("score: expected exactly 2 elements, got %d", len(v))
	}
	*s = Score{v[0], v[1]}
	return nil
}

type TeamScores [2]TeamScore

func (t *TeamScores) UnmarshalJSON(data []byte) error {
	var v []TeamScore
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("team_scores: expected exactly 2 elements, got %d", len(v))
	}
	*t = TeamScores{v[0], v[1]}
	return nil
}
