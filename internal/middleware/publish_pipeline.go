package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
)

// batch is one unit of work queued for the message backend.
type batch struct {
	games []models.GameRecord
	opps  []models.EVOpportunity
}

// PublishPipeline sits between the scan loop and the message backend.
// It validates batches, throttles per sport, and buffers when the
// backend is unavailable so a broker outage never stalls ingestion.
type PublishPipeline struct {
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
	maxPerSec int
	bufSize   int
	bufCh     chan batch
	stopCh    chan struct{}
	started   bool
	mu        sync.Mutex
	lastSeen  map[string]time.Time // per-sport last accepted time
}

type PipelineOption func(*PublishPipeline)

// WithMaxPerSec caps publish batches per second per sport.
func WithMaxPerSec(n int) PipelineOption {
	return func(p *PublishPipeline) {
		if n > 0 {
			p.maxPerSec = n
		}
	}
}

// WithBufferSize sets how many batches to hold while the backend is down.
func WithBufferSize(n int) PipelineOption {
	return func(p *PublishPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

func NewPublishPipeline(publisher domrepo.Publisher, metrics domrepo.Metrics, opts ...PipelineOption) *PublishPipeline {
	p := &PublishPipeline{
		publisher: publisher,
		metrics:   metrics,
		maxPerSec: 10,
		bufSize:   256,
		stopCh:    make(chan struct{}),
		lastSeen:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan batch, p.bufSize)
	return p
}

// Start launches background flushing of buffered batches.
func (p *PublishPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case b := <-p.bufCh:
				if err := p.flush(ctx, b); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					select {
					case p.bufCh <- b:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *PublishPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// PublishGames forwards a sport's cleaned games, buffering on backend
// errors.
func (p *PublishPipeline) PublishGames(ctx context.Context, sport string, games []models.GameRecord) error {
	if len(games) == 0 {
		return nil
	}
	if !p.allow(sport, time.Now()) {
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}
	return p.forward(ctx, batch{games: games})
}

// PublishOpportunities forwards scan results, buffering on backend errors.
func (p *PublishPipeline) PublishOpportunities(ctx context.Context, opps []models.EVOpportunity) error {
	if len(opps) == 0 {
		return nil
	}
	return p.forward(ctx, batch{opps: opps})
}

func (p *PublishPipeline) forward(ctx context.Context, b batch) error {
	start := time.Now()
	if err := p.flush(ctx, b); err != nil {
		p.metrics.RecordError("pipeline_publish")
		select {
		case p.bufCh <- b:
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_publish", time.Since(start).Seconds())
	return nil
}

func (p *PublishPipeline) flush(ctx context.Context, b batch) error {
	if len(b.games) > 0 {
		if err := p.publisher.PublishGames(ctx, b.games); err != nil {
			return err
		}
	}
	if len(b.opps) > 0 {
		if err := p.publisher.PublishOpportunities(ctx, b.opps); err != nil {
			return err
		}
	}
	return nil
}

func (p *PublishPipeline) allow(sport string, now time.Time) bool {
	if p.maxPerSec <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[sport]
	if last.IsZero() || now.Sub(last) >= time.Second/time.Duration(p.maxPerSec) {
		p.lastSeen[sport] = now
		return true
	}
	return false
}
