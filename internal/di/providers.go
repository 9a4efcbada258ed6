package di

import (
	"context"
	"fmt"
	"time"

	"OddsPull/internal/domain/repository"
	"OddsPull/internal/handler/api"
	mid "OddsPull/internal/middleware"
	internalrepo "OddsPull/internal/repository"
	icache "OddsPull/internal/service/cache"
	"OddsPull/internal/service/espn"
	"OddsPull/internal/service/oddsapi"
	"OddsPull/internal/service/ratelimit"
	"OddsPull/internal/service/stream"
	"OddsPull/internal/services/analytics"
	"OddsPull/internal/services/normalize"
	"OddsPull/internal/services/stats"
	"OddsPull/internal/sports"
	"OddsPull/internal/usecase"
	pkgch "OddsPull/pkg/clickhouse"
	"OddsPull/pkg/config"
	xhttp "OddsPull/pkg/http"
	pkgkafka "OddsPull/pkg/kafka"
	applogger "OddsPull/pkg/logger"
	"OddsPull/pkg/metrics"
	"OddsPull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideGameStore creates the ClickHouse game store and ensures schema.
func ProvideGameStore(chClient *pkgch.Client) (repository.GameStore, error) {
	store := internalrepo.NewClickHouseGameStore(chClient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("game store schema: %w", err)
	}
	return store, nil
}

// ProvidePublisher creates the Kafka publisher, or nil when disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.GamesTopic, cfg.Kafka.OpportunitiesTopic), nil
}

// ProvidePipeline creates the publish pipeline, or nil without a backend.
func ProvidePipeline(publisher repository.Publisher, m repository.Metrics) *mid.PublishPipeline {
	if publisher == nil {
		return nil
	}
	return mid.NewPublishPipeline(publisher, m,
		mid.WithMaxPerSec(10),
		mid.WithBufferSize(256),
	)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRateLimiter creates the shared outbound rate limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideHTTPClient creates the shared outbound HTTP client.
func ProvideHTTPClient() *xhttp.Client {
	return xhttp.NewClient()
}

// ProvideScoreboardSource creates the ESPN scoreboard client.
func ProvideScoreboardSource(cfg *config.Config, hc *xhttp.Client, rl *ratelimit.Limiter, log *applogger.Logger) repository.ScoreboardSource {
	opts := []espn.Option{}
	if cfg.ESPN.BaseURL != "" {
		opts = append(opts, espn.WithBaseURL(cfg.ESPN.BaseURL))
	}
	if cfg.ESPN.RequestsPerSec > 0 {
		opts = append(opts, espn.WithRateLimit(cfg.ESPN.RequestsPerSec, cfg.ESPN.Burst))
	}
	return espn.New(hc, rl, log, opts...)
}

// ProvideOddsFeed creates the odds API client.
func ProvideOddsFeed(cfg *config.Config, hc *xhttp.Client, rl *ratelimit.Limiter, log *applogger.Logger) repository.OddsFeed {
	opts := []oddsapi.Option{}
	if cfg.OddsAPI.BaseURL != "" {
		opts = append(opts, oddsapi.WithBaseURL(cfg.OddsAPI.BaseURL))
	}
	if cfg.OddsAPI.Regions != "" {
		opts = append(opts, oddsapi.WithRegions(cfg.OddsAPI.Regions))
	}
	if cfg.OddsAPI.RequestsPerSec > 0 {
		opts = append(opts, oddsapi.WithRateLimit(cfg.OddsAPI.RequestsPerSec, cfg.OddsAPI.Burst))
	}
	return oddsapi.New(cfg.OddsAPI.APIKey, hc, rl, log, opts...)
}

// ProvideEngine creates the EV engine.
func ProvideEngine(cfg *config.Config, log *applogger.Logger) *analytics.Engine {
	opts := []analytics.EngineOption{}
	if cfg.Scan.MinEV > 0 {
		opts = append(opts, analytics.WithMinEV(cfg.Scan.MinEV))
	}
	return analytics.NewEngine(log, opts...)
}

// ProvideRegistry builds the analyzer registry for the configured sports.
func ProvideRegistry(
	cfg *config.Config,
	source repository.ScoreboardSource,
	store repository.GameStore,
	engine *analytics.Engine,
	log *applogger.Logger,
) *sports.Registry {
	deps := sports.Deps{
		Source:     source,
		Store:      store,
		Normalizer: normalize.NewNormalizer(log, normalize.WithSportConfigs(sportConfigs(cfg))),
		Cleaner:    normalize.NewCleaner(log),
		Aggregator: stats.NewAggregator(log),
		Engine:     engine,
		Logger:     log,
	}

	registry := sports.NewRegistry()
	for _, s := range cfg.Scan.Sports {
		switch repository.Sport(s) {
		case repository.SportMLB:
			registry.Register(sports.NewMLBAnalyzer(deps))
		case repository.SportNFL:
			registry.Register(sports.NewNFLAnalyzer(deps))
		case repository.SportNBA:
			registry.Register(sports.NewNBAAnalyzer(deps))
		}
	}
	return registry
}

// sportConfigs overlays YAML overrides on the built-in sport tables.
func sportConfigs(cfg *config.Config) map[string]normalize.SportConfig {
	overlay := make(map[string]normalize.SportConfig, len(cfg.Sports))
	for sport, o := range cfg.Sports {
		overlay[sport] = normalize.SportConfig{
			TeamNames: o.TeamNames,
			Thresholds: normalize.Thresholds{
				HighScoring:   o.Thresholds.HighScoring,
				LowScoring:    o.Thresholds.LowScoring,
				BlowoutMargin: o.Thresholds.BlowoutMargin,
				CloseMargin:   o.Thresholds.CloseMargin,
			},
		}
	}
	return normalize.MergeSportConfigs(normalize.DefaultSportConfigs(), overlay)
}

// ProvideHub creates the WebSocket broadcast hub.
func ProvideHub(log *applogger.Logger) *stream.Hub {
	return stream.NewHub(log)
}

// ProvideGamesUseCase creates the ingest use case.
func ProvideGamesUseCase(
	registry *sports.Registry,
	store repository.GameStore,
	pipe *mid.PublishPipeline,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.GamesUseCase {
	return usecase.NewGamesUseCase(registry, store, pipe, m, log)
}

// ProvideScanUseCase creates the opportunity scan use case.
func ProvideScanUseCase(
	registry *sports.Registry,
	games *usecase.GamesUseCase,
	odds repository.OddsFeed,
	engine *analytics.Engine,
	store repository.GameStore,
	pipe *mid.PublishPipeline,
	hub *stream.Hub,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.ScanUseCase {
	return usecase.NewScanUseCase(registry, games, odds, engine, store, pipe, hub, m, log)
}

// ProvideCollector creates the periodic ingest+scan collector.
func ProvideCollector(
	cfg *config.Config,
	registry *sports.Registry,
	games *usecase.GamesUseCase,
	scan *usecase.ScanUseCase,
	pipe *mid.PublishPipeline,
	log *applogger.Logger,
) *usecase.Collector {
	return usecase.NewCollector(registry, games, scan, pipe, log,
		usecase.WithIngestInterval(cfg.Scan.IngestInterval),
		usecase.WithScanInterval(cfg.Scan.ScanInterval),
		usecase.WithBackfillDays(cfg.Scan.BackfillDays),
	)
}

// ProvideHandler creates the Echo API handler with cache wiring.
func ProvideHandler(
	cfg *config.Config,
	log *applogger.Logger,
	games *usecase.GamesUseCase,
	scan *usecase.ScanUseCase,
	store repository.GameStore,
	hub *stream.Hub,
) xhttp.Handler {
	h := api.NewBettingHandler(log, games, scan, store)
	h.SetHub(hub)
	if cfg.Cache.Redis.Enabled {
		h.SetCache(icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		}))
	} else {
		h.SetCache(icache.NewMemoryCache())
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.Collector,
	chClient *pkgch.Client,
	publisher repository.Publisher,
	hub *stream.Hub,
	handler xhttp.Handler,
) *server.App {
	if pub, ok := publisher.(applogger.Publisher); ok && cfg.Kafka.LogsTopic != "" {
		log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogsTopic,
			Publisher:      pub,
		})
	}
	return server.New(cfg, log, collector, chClient, publisher, hub, handler)
}
