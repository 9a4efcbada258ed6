package usecase

import (
	"context"
	"sync"
	"time"

	mid "OddsPull/internal/middleware"
	"OddsPull/internal/sports"
	"OddsPull/pkg/logger"
)

// Collector drives the periodic ingest+scan loop across all registered
// sports.
type Collector struct {
	registry *sports.Registry
	games    *GamesUseCase
	scan     *ScanUseCase
	pipe     *mid.PublishPipeline
	logger   *logger.Logger

	ingestEvery time.Duration
	scanEvery   time.Duration
	backfill    int // extra past days ingested at startup

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type CollectorOption func(*Collector)

func WithIngestInterval(d time.Duration) CollectorOption {
	return func(c *Collector) {
		if d > 0 {
			c.ingestEvery = d
		}
	}
}

func WithScanInterval(d time.Duration) CollectorOption {
	return func(c *Collector) {
		if d > 0 {
			c.scanEvery = d
		}
	}
}

func WithBackfillDays(n int) CollectorOption {
	return func(c *Collector) {
		if n >= 0 {
			c.backfill = n
		}
	}
}

func NewCollector(registry *sports.Registry, games *GamesUseCase, scan *ScanUseCase, pipe *mid.PublishPipeline, log *logger.Logger, opts ...CollectorOption) *Collector {
	c := &Collector{
		registry:    registry,
		games:       games,
		scan:        scan,
		pipe:        pipe,
		logger:      log,
		ingestEvery: 15 * time.Minute,
		scanEvery:   5 * time.Minute,
		backfill:    7,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the background loops. Initial backfill runs once so
// team stats have history to aggregate before the first scan.
func (c *Collector) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.backfillHistory(ctx)
		c.loop(ctx, c.ingestEvery, c.ingestAll)
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.loop(ctx, c.scanEvery, c.scanAll)
	}()
	return nil
}

// Shutdown stops the loops and the pipeline, waiting for in-flight work.
func (c *Collector) Shutdown(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return nil
}

func (c *Collector) loop(ctx context.Context, every time.Duration, fn func(context.Context)) {
	fn(ctx)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

func (c *Collector) backfillHistory(ctx context.Context) {
	if c.backfill == 0 {
		return
	}
	today := time.Now().UTC()
	for _, sport := range c.registry.Sports() {
		for i := c.backfill; i > 0; i-- {
			if ctx.Err() != nil {
				return
			}
			day := today.AddDate(0, 0, -i)
			if _, err := c.games.IngestDay(ctx, sport, day); err != nil {
				c.logger.Warn("backfill day failed",
					logger.String("sport", string(sport)),
					logger.String("day", day.Format("2006-01-02")),
					logger.Error(err))
			}
		}
	}
	c.logger.Info("backfill complete", logger.Int("days", c.backfill))
}

func (c *Collector) ingestAll(ctx context.Context) {
	today := time.Now().UTC()
	for _, sport := range c.registry.Sports() {
		if _, err := c.games.IngestDay(ctx, sport, today); err != nil {
			c.logger.Warn("ingest failed",
				logger.String("sport", string(sport)),
				logger.Error(err))
		}
	}
}

func (c *Collector) scanAll(ctx context.Context) {
	for _, sport := range c.registry.Sports() {
		if _, err := c.scan.Scan(ctx, sport); err != nil {
			c.logger.Warn("scan failed",
				logger.String("sport", string(sport)),
				logger.Error(err))
		}
	}
}
