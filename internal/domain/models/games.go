package models

import "time"

// GameRecord is one normalized contest row, common across all sports.
type GameRecord struct {
	GameID      string `json:"game_id"`
	Sport       string `json:"sport"`
	Date        string `json:"date"` // YYYY-MM-DD, timezone-agnostic day
	Status      string `json:"status"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
	IsCompleted bool   `json:"is_completed"`

	// Derived columns, filled once after normalization.
	TotalScore        int             `json:"total_score"`
	ScoreDifferential int             `json:"score_differential"`
	Winner            string          `json:"winner"`            // home team, away team, or "Tie"
	HomeTeamResult    string          `json:"home_team_result"`  // "Win", "Loss", "Tie" from the home side
	Flags             map[string]bool `json:"flags,omitempty"`   // sport-specific, e.g. is_high_scoring
}

// Day returns the record's calendar day as time.Time (zero time if unparsable).
func (g *GameRecord) Day() time.Time {
	t, err := time.Parse("2006-01-02", g.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// TeamStatsSummary aggregates a team's record over a set of games.
type TeamStatsSummary struct {
	TeamName           string  `json:"team_name"`
	TotalGames         int     `json:"total_games"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	WinPercentage      float64 `json:"win_percentage"`
	HomeGames          int     `json:"home_games"`
	AwayGames          int     `json:"away_games"`
	AvgPointsScored    float64 `json:"avg_points_scored"`
	AvgPointsAllowed   float64 `json:"avg_points_allowed"`
	TotalPointsScored  int     `json:"total_points_scored"`
	TotalPointsAllowed int     `json:"total_points_allowed"`
	PointDifferential  int     `json:"point_differential"`

	// Sport-specific extras (shutouts, one-run games, record splits).
	Extras map[string]any `json:"extras,omitempty"`
}

// Prediction is a heuristic outcome forecast for one game.
type Prediction struct {
	GameID             string    `json:"game_id"`
	HomeTeam           string    `json:"home_team"`
	AwayTeam           string    `json:"away_team"`
	PredictedHomeScore float64   `json:"predicted_home_score"`
	PredictedAwayScore float64   `json:"predicted_away_score"`
	PredictedTotal     float64   `json:"predicted_total"`
	HomeWinProbability float64   `json:"home_win_probability"`
	AwayWinProbability float64   `json:"away_win_probability"`
	ConfidenceScore    float64   `json:"confidence_score"`
	ModelVersion       string    `json:"model_version"`
	PredictedAt        time.Time `json:"predicted_at"`

	// Extra probability-like fields some models attach; scanned by the
	// loose team-name fallback in the EV engine.
	Extra map[string]float64 `json:"extra,omitempty"`
}
