package espn

import (
	"context"
	"fmt"
	"time"

	domrepo "OddsPull/internal/domain/repository"
	"OddsPull/internal/service/ratelimit"
	phttp "OddsPull/pkg/http"
	"OddsPull/pkg/logger"
)

const defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// Client implements a ScoreboardSource backed by the ESPN site API.
type Client struct {
	baseURL string
	http    *phttp.Client
	limiter *ratelimit.Limiter
	rate    float64 // requests per second
	burst   float64
	logger  *logger.Logger
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithRateLimit(perSec, burst float64) Option {
	return func(c *Client) {
		c.rate = perSec
		c.burst = burst
	}
}

func New(httpClient *phttp.Client, limiter *ratelimit.Limiter, log *logger.Logger, opts ...Option) domrepo.ScoreboardSource {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    httpClient,
		limiter: limiter,
		rate:    2,
		burst:   5,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type scoreboardResponse struct {
	Events []map[string]any `json:"events"`
}

// FetchEvents pulls the raw scoreboard for a sport and day. Events come
// back as untyped maps; the normalizer owns their interpretation.
func (c *Client) FetchEvents(ctx context.Context, sport domrepo.Sport, day time.Time) ([]map[string]any, error) {
	if !c.limiter.Allow("espn:"+string(sport), c.burst, c.rate) {
		return nil, fmt.Errorf("espn rate limit exceeded for %s", sport)
	}

	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sport.ESPNPath())
	var resp scoreboardResponse
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    url,
		QueryParams: map[string][]string{
			"dates": {day.Format("20060102")},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("espn scoreboard %s: %w", sport, err)
	}

	c.logger.Debug("fetched espn scoreboard",
		logger.String("sport", string(sport)),
		logger.String("day", day.Format("2006-01-02")),
		logger.Int("events", len(resp.Events)))
	return resp.Events, nil
}
