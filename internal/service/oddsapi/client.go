package oddsapi

import (
	"context"
	"fmt"

	"OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
	"OddsPull/internal/service/ratelimit"
	phttp "OddsPull/pkg/http"
	"OddsPull/pkg/logger"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

// Client implements an OddsFeed backed by the-odds-api.com. The free
// tier meters by monthly request count, so the limiter guards it hard.
type Client struct {
	baseURL string
	apiKey  string
	regions string
	http    *phttp.Client
	limiter *ratelimit.Limiter
	rate    float64
	burst   float64
	logger  *logger.Logger
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithRegions(regions string) Option {
	return func(c *Client) {
		c.regions = regions
	}
}

func WithRateLimit(perSec, burst float64) Option {
	return func(c *Client) {
		c.rate = perSec
		c.burst = burst
	}
}

func New(apiKey string, httpClient *phttp.Client, limiter *ratelimit.Limiter, log *logger.Logger, opts ...Option) domrepo.OddsFeed {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		regions: "us",
		http:    httpClient,
		limiter: limiter,
		rate:    0.5,
		burst:   2,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchOdds returns current American moneyline odds for a sport across
// US bookmakers.
func (c *Client) FetchOdds(ctx context.Context, sport domrepo.Sport) ([]models.OddsEvent, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("odds api key not configured")
	}
	if !c.limiter.Allow("oddsapi:"+string(sport), c.burst, c.rate) {
		return nil, fmt.Errorf("odds api rate limit exceeded for %s", sport)
	}

	url := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, sport.OddsKey())
	var events []models.OddsEvent
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    url,
		QueryParams: map[string][]string{
			"apiKey":     {c.apiKey},
			"regions":    {c.regions},
			"markets":    {models.MarketH2H},
			"oddsFormat": {"american"},
		},
	}, &events)
	if err != nil {
		return nil, fmt.Errorf("odds api %s: %w", sport, err)
	}

	c.logger.Debug("fetched bookmaker odds",
		logger.String("sport", string(sport)),
		logger.Int("events", len(events)))
	return events, nil
}
