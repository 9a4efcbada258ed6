package usecase

import (
	"context"
	"fmt"
	"time"

	"OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
	mid "OddsPull/internal/middleware"
	"OddsPull/internal/sports"
	"OddsPull/pkg/logger"
)

// GamesUseCase owns the ingest path (fetch, normalize, clean, store,
// publish) and the read paths the API serves games and stats from.
type GamesUseCase struct {
	registry *sports.Registry
	store    domrepo.GameStore
	pipe     *mid.PublishPipeline
	metrics  domrepo.Metrics
	logger   *logger.Logger
}

func NewGamesUseCase(registry *sports.Registry, store domrepo.GameStore, pipe *mid.PublishPipeline, metrics domrepo.Metrics, log *logger.Logger) *GamesUseCase {
	return &GamesUseCase{
		registry: registry,
		store:    store,
		pipe:     pipe,
		metrics:  metrics,
		logger:   log,
	}
}

// IngestDay runs the full pipeline for one sport and day, returning
// the cleaned records that were stored.
func (uc *GamesUseCase) IngestDay(ctx context.Context, sport domrepo.Sport, day time.Time) ([]models.GameRecord, error) {
	start := time.Now()
	analyzer, err := uc.registry.Get(sport)
	if err != nil {
		return nil, err
	}

	games, err := analyzer.FetchGames(ctx, day)
	if err != nil {
		uc.metrics.RecordError("ingest_fetch")
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}

	if err := uc.store.StoreGames(ctx, games); err != nil {
		uc.metrics.RecordError("ingest_store")
		return nil, fmt.Errorf("store %s games: %w", sport, err)
	}
	if uc.pipe != nil {
		if err := uc.pipe.PublishGames(ctx, string(sport), games); err != nil {
			// publish failures are buffered by the pipeline; storage already
			// succeeded so the ingest itself is fine
			uc.logger.Warn("publish games deferred",
				logger.String("sport", string(sport)),
				logger.Error(err))
		}
	}

	uc.metrics.RecordGamesIngested(string(sport), len(games))
	uc.metrics.RecordLatency("ingest_day", time.Since(start).Seconds())
	uc.logger.Info("ingested games",
		logger.String("sport", string(sport)),
		logger.String("day", day.Format("2006-01-02")),
		logger.Int("games", len(games)))
	return games, nil
}

// GamesForDay reads a day's games, falling back to a live fetch when
// the store has nothing for that day yet.
func (uc *GamesUseCase) GamesForDay(ctx context.Context, sport domrepo.Sport, day time.Time) ([]models.GameRecord, error) {
	games, err := uc.store.GamesByDate(ctx, sport, day)
	if err != nil {
		uc.logger.Warn("store read failed, fetching live",
			logger.String("sport", string(sport)),
			logger.Error(err))
	}
	if len(games) > 0 {
		return games, nil
	}
	return uc.IngestDay(ctx, sport, day)
}

// TeamStats aggregates a team's trailing record.
func (uc *GamesUseCase) TeamStats(ctx context.Context, sport domrepo.Sport, team string, days int) (models.TeamStatsSummary, error) {
	analyzer, err := uc.registry.Get(sport)
	if err != nil {
		return models.TeamStatsSummary{}, err
	}
	return analyzer.ComputeTeamStats(ctx, team, days)
}
