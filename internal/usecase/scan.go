package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
	mid "OddsPull/internal/middleware"
	"OddsPull/internal/service/stream"
	"OddsPull/internal/services/analytics"
	"OddsPull/internal/sports"
	"OddsPull/pkg/logger"
)

// ScanUseCase runs the opportunity scan: predict today's games, pull
// bookmaker odds, and cross them for positive EV and arbitrage.
type ScanUseCase struct {
	registry *sports.Registry
	games    *GamesUseCase
	odds     domrepo.OddsFeed
	engine   *analytics.Engine
	store    domrepo.GameStore
	pipe     *mid.PublishPipeline
	hub      *stream.Hub
	metrics  domrepo.Metrics
	logger   *logger.Logger
	timeout  time.Duration
}

func NewScanUseCase(
	registry *sports.Registry,
	games *GamesUseCase,
	odds domrepo.OddsFeed,
	engine *analytics.Engine,
	store domrepo.GameStore,
	pipe *mid.PublishPipeline,
	hub *stream.Hub,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *ScanUseCase {
	return &ScanUseCase{
		registry: registry,
		games:    games,
		odds:     odds,
		engine:   engine,
		store:    store,
		pipe:     pipe,
		hub:      hub,
		metrics:  metrics,
		logger:   log,
		timeout:  30 * time.Second,
	}
}

// ScanResult is one sport's scan output.
type ScanResult struct {
	Sport         domrepo.Sport                 `json:"sport"`
	Opportunities []models.EVOpportunity        `json:"opportunities"`
	Arbitrage     []models.ArbitrageOpportunity `json:"arbitrage"`
	Predictions   []models.Prediction           `json:"predictions"`
	ScannedAt     time.Time                     `json:"scanned_at"`
}

// Predictions forecasts every game on a day's slate, fanning the
// per-game predictions out concurrently.
func (uc *ScanUseCase) Predictions(ctx context.Context, sport domrepo.Sport, day time.Time) ([]models.Prediction, error) {
	analyzer, err := uc.registry.Get(sport)
	if err != nil {
		return nil, err
	}
	slate, err := uc.games.GamesForDay(ctx, sport, day)
	if err != nil {
		return nil, err
	}

	preds := make([]models.Prediction, len(slate))
	errsFound := make([]error, len(slate))
	var wg sync.WaitGroup
	for i, game := range slate {
		wg.Add(1)
		go func(i int, game models.GameRecord) {
			defer wg.Done()
			preds[i], errsFound[i] = analyzer.PredictOutcome(ctx, game)
		}(i, game)
	}
	wg.Wait()

	out := make([]models.Prediction, 0, len(preds))
	for i, p := range preds {
		if errsFound[i] != nil {
			uc.metrics.RecordError("predict")
			uc.logger.Warn("prediction failed",
				logger.String("sport", string(sport)),
				logger.String("game_id", slate[i].GameID),
				logger.Error(errsFound[i]))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Scan runs the full opportunity scan for one sport.
func (uc *ScanUseCase) Scan(ctx context.Context, sport domrepo.Sport) (*ScanResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	start := time.Now()

	events, err := uc.odds.FetchOdds(ctx, sport)
	if err != nil {
		uc.metrics.RecordError("scan_odds")
		return nil, err
	}

	predictions, err := uc.Predictions(ctx, sport, time.Now().UTC())
	if err != nil {
		uc.metrics.RecordError("scan_predict")
		return nil, err
	}

	byEvent := matchPredictions(events, predictions)
	opportunities := uc.engine.FindPositiveEV(events, byEvent)
	arbitrage := uc.engine.FindArbitrage(events)

	for range opportunities {
		uc.metrics.RecordOpportunity("ev")
	}
	for range arbitrage {
		uc.metrics.RecordOpportunity("arbitrage")
	}

	if len(opportunities) > 0 {
		if err := uc.store.StoreOpportunities(ctx, opportunities); err != nil {
			uc.metrics.RecordError("scan_store")
			uc.logger.Error("store opportunities", logger.Error(err))
		}
		if uc.pipe != nil {
			_ = uc.pipe.PublishOpportunities(ctx, opportunities)
		}
	}

	result := &ScanResult{
		Sport:         sport,
		Opportunities: opportunities,
		Arbitrage:     arbitrage,
		Predictions:   predictions,
		ScannedAt:     time.Now().UTC(),
	}
	if uc.hub != nil && (len(opportunities) > 0 || len(arbitrage) > 0) {
		uc.hub.Broadcast(result)
	}

	uc.metrics.RecordLatency("scan", time.Since(start).Seconds())
	uc.logger.Info("scan complete",
		logger.String("sport", string(sport)),
		logger.Int("odds_events", len(events)),
		logger.Int("ev_opportunities", len(opportunities)),
		logger.Int("arbitrage", len(arbitrage)))
	return result, nil
}

// Arbitrage scans the current odds board only; no predictions needed.
func (uc *ScanUseCase) Arbitrage(ctx context.Context, sport domrepo.Sport) ([]models.ArbitrageOpportunity, error) {
	events, err := uc.odds.FetchOdds(ctx, sport)
	if err != nil {
		return nil, err
	}
	arbs := uc.engine.FindArbitrage(events)
	for range arbs {
		uc.metrics.RecordOpportunity("arbitrage")
	}
	return arbs, nil
}

// matchPredictions pairs odds events with predictions by team names.
// Feeds disagree on exact naming, so exact matches are tried before a
// contains fallback.
func matchPredictions(events []models.OddsEvent, predictions []models.Prediction) map[string]*models.Prediction {
	out := make(map[string]*models.Prediction, len(events))
	for _, event := range events {
		for i := range predictions {
			p := &predictions[i]
			if teamsMatch(p.HomeTeam, event.HomeTeam) && teamsMatch(p.AwayTeam, event.AwayTeam) {
				out[event.ID] = p
				break
			}
		}
	}
	return out
}

func teamsMatch(a, b string) bool {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
