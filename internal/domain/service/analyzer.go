package service

import (
	"context"
	"time"

	"OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
)

// Analyzer is the per-sport capability contract: fetch and normalize a
// day's games, roll up team stats, forecast an outcome, and price it
// against a quote. One concrete implementation per sport.
type Analyzer interface {
	Sport() domrepo.Sport

	// FetchGames returns the cleaned, feature-complete games for a day.
	FetchGames(ctx context.Context, day time.Time) ([]models.GameRecord, error)

	// ComputeTeamStats aggregates a team's record over the trailing window.
	ComputeTeamStats(ctx context.Context, team string, days int) (models.TeamStatsSummary, error)

	// PredictOutcome produces a heuristic win-probability forecast for one game.
	PredictOutcome(ctx context.Context, game models.GameRecord) (models.Prediction, error)

	// ExpectedValue scores home/away moneyline quotes against a prediction
	// and returns the better side's EV (percent of a $100 stake).
	ExpectedValue(pred models.Prediction, homeOdds, awayOdds int) float64
}
