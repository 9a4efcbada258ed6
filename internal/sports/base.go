package sports

import (
	"context"
	"fmt"
	"math"
	"time"

	"OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
	"OddsPull/internal/services/analytics"
	"OddsPull/internal/services/normalize"
	"OddsPull/internal/services/stats"
	"OddsPull/pkg/logger"
	"OddsPull/pkg/util"
)

// params captures what actually differs between leagues: scoring scale,
// home advantage, how steeply point spread maps to win probability, and
// how many games make a full sample.
type params struct {
	defaultScore  float64 // league-average score used when a team has no history
	homeAdvantage float64 // points added to the home side
	sigmoidK      float64 // spread-to-probability steepness
	sampleGames   float64 // games needed for full-confidence sample
	windowDays    int     // trailing stats window
	modelVersion  string
}

// analyzer is the shared engine all leagues run on; only params differ.
type analyzer struct {
	sport      domrepo.Sport
	params     params
	source     domrepo.ScoreboardSource
	store      domrepo.GameStore
	normalizer *normalize.Normalizer
	cleaner    *normalize.Cleaner
	aggregator *stats.Aggregator
	engine     *analytics.Engine
	logger     *logger.Logger
}

// Deps bundles the shared collaborators a sport analyzer needs.
type Deps struct {
	Source     domrepo.ScoreboardSource
	Store      domrepo.GameStore
	Normalizer *normalize.Normalizer
	Cleaner    *normalize.Cleaner
	Aggregator *stats.Aggregator
	Engine     *analytics.Engine
	Logger     *logger.Logger
}

func newAnalyzer(sport domrepo.Sport, p params, deps Deps) *analyzer {
	return &analyzer{
		sport:      sport,
		params:     p,
		source:     deps.Source,
		store:      deps.Store,
		normalizer: deps.Normalizer,
		cleaner:    deps.Cleaner,
		aggregator: deps.Aggregator,
		engine:     deps.Engine,
		logger:     deps.Logger,
	}
}

func (a *analyzer) Sport() domrepo.Sport {
	return a.sport
}

// FetchGames pulls the raw scoreboard for a day and runs it through
// normalization and cleaning.
func (a *analyzer) FetchGames(ctx context.Context, day time.Time) ([]models.GameRecord, error) {
	events, err := a.source.FetchEvents(ctx, a.sport, day)
	if err != nil {
		return nil, fmt.Errorf("fetch %s scoreboard for %s: %w", a.sport, util.DayString(day), err)
	}
	records := a.normalizer.Normalize(string(a.sport), events, day)
	return a.cleaner.Clean(records), nil
}

// ComputeTeamStats aggregates the team's stored games over the trailing
// window. A team with no stored games yields a zeroed summary, not an
// error.
func (a *analyzer) ComputeTeamStats(ctx context.Context, team string, days int) (models.TeamStatsSummary, error) {
	if days <= 0 {
		days = a.params.windowDays
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	games, err := a.store.GamesByTeam(ctx, a.sport, team, from, to)
	if err != nil {
		return models.TeamStatsSummary{}, fmt.Errorf("load %s games for %q: %w", a.sport, team, err)
	}
	return a.aggregator.TeamStats(team, string(a.sport), games), nil
}

// PredictOutcome forecasts a game by blending each side's scoring
// average with the opponent's defensive average, then mapping the
// predicted spread through a logistic curve.
func (a *analyzer) PredictOutcome(ctx context.Context, game models.GameRecord) (models.Prediction, error) {
	homeStats, err := a.ComputeTeamStats(ctx, game.HomeTeam, a.params.windowDays)
	if err != nil {
		return models.Prediction{}, err
	}
	awayStats, err := a.ComputeTeamStats(ctx, game.AwayTeam, a.params.windowDays)
	if err != nil {
		return models.Prediction{}, err
	}

	homeScored, homeAllowed := a.scoringAverages(homeStats)
	awayScored, awayAllowed := a.scoringAverages(awayStats)

	predictedHome := (homeScored+awayAllowed)/2.0 + a.params.homeAdvantage
	predictedAway := (awayScored + homeAllowed) / 2.0

	spread := predictedHome - predictedAway
	homeWinProb := 1.0 / (1.0 + math.Exp(-spread*a.params.sigmoidK))

	return models.Prediction{
		GameID:             game.GameID,
		HomeTeam:           game.HomeTeam,
		AwayTeam:           game.AwayTeam,
		PredictedHomeScore: predictedHome,
		PredictedAwayScore: predictedAway,
		PredictedTotal:     predictedHome + predictedAway,
		HomeWinProbability: homeWinProb,
		AwayWinProbability: 1.0 - homeWinProb,
		ConfidenceScore:    a.confidence(homeStats, awayStats),
		ModelVersion:       a.params.modelVersion,
		PredictedAt:        time.Now().UTC(),
	}, nil
}

func (a *analyzer) scoringAverages(s models.TeamStatsSummary) (scored, allowed float64) {
	if s.TotalGames == 0 {
		return a.params.defaultScore, a.params.defaultScore
	}
	return s.AvgPointsScored, s.AvgPointsAllowed
}

// confidence grows with sample size and shrinks for streaky teams,
// capped at 0.95 so no forecast ever claims certainty.
func (a *analyzer) confidence(home, away models.TeamStatsSummary) float64 {
	homeConsistency := 1.0 / (1.0 + math.Abs(diffPerGame(home))/10.0)
	awayConsistency := 1.0 / (1.0 + math.Abs(diffPerGame(away))/10.0)
	sample := math.Min(float64(home.TotalGames)/a.params.sampleGames, 1.0)
	return math.Min((homeConsistency+awayConsistency)*sample, 0.95)
}

func diffPerGame(s models.TeamStatsSummary) float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.PointDifferential) / float64(s.TotalGames)
}

// ExpectedValue scores both moneyline sides and returns the better EV
// percentage. An unpriceable side contributes nothing.
func (a *analyzer) ExpectedValue(pred models.Prediction, homeOdds, awayOdds int) float64 {
	best := 0.0
	if ev, err := a.engine.EVPercentage(pred.HomeWinProbability, homeOdds); err == nil && ev > best {
		best = ev
	}
	if ev, err := a.engine.EVPercentage(pred.AwayWinProbability, awayOdds); err == nil && ev > best {
		best = ev
	}
	return best
}
