package repository

import (
	"context"
	"time"

	"OddsPull/internal/domain/models"
)

// ScoreboardSource fetches raw game events for a sport and day.
// Payloads are provider-shaped nested maps; only the normalizer
// interprets them.
type ScoreboardSource interface {
	FetchEvents(ctx context.Context, sport Sport, day time.Time) ([]map[string]any, error)
}

// OddsFeed fetches current bookmaker odds for a sport.
type OddsFeed interface {
	FetchOdds(ctx context.Context, sport Sport) ([]models.OddsEvent, error)
}

// Publisher sends scan results to a message backend.
type Publisher interface {
	PublishGames(ctx context.Context, games []models.GameRecord) error
	PublishOpportunities(ctx context.Context, opps []models.EVOpportunity) error
	Close() error
}

// GameStore persists cleaned games and scan results.
type GameStore interface {
	Init(ctx context.Context) error
	StoreGames(ctx context.Context, games []models.GameRecord) error
	StoreOpportunities(ctx context.Context, opps []models.EVOpportunity) error
	GamesByTeam(ctx context.Context, sport Sport, team string, from, to time.Time) ([]models.GameRecord, error)
	GamesByDate(ctx context.Context, sport Sport, day time.Time) ([]models.GameRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordGamesIngested(sport string, n int)
	RecordRecordsDropped(stage string, n int)
	RecordOpportunity(kind string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
