package api

import (
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"

	models "OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
	icache "OddsPull/internal/service/cache"
	"OddsPull/internal/service/metrics"
	"OddsPull/internal/service/ratelimit"
	"OddsPull/internal/service/stream"
	"OddsPull/internal/usecase"
	xhttp "OddsPull/pkg/http"
	xlogger "OddsPull/pkg/logger"
	"OddsPull/pkg/util"
)

// BettingHandler exposes the games, stats, prediction and opportunity
// endpoints over Echo.
type BettingHandler struct {
	logger *xlogger.Logger
	games  *usecase.GamesUseCase
	scan   *usecase.ScanUseCase
	store  domrepo.GameStore
	hub    *stream.Hub
	cache  icache.BytesCache
	rl     *ratelimit.Limiter
}

func NewBettingHandler(log *xlogger.Logger, games *usecase.GamesUseCase, scan *usecase.ScanUseCase, store domrepo.GameStore) *BettingHandler {
	metrics.Register()
	return &BettingHandler{
		logger: log,
		games:  games,
		scan:   scan,
		store:  store,
		rl:     ratelimit.New(),
	}
}

// SetCache injects a response cache.
func (h *BettingHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetHub injects the WebSocket broadcast hub.
func (h *BettingHandler) SetHub(hub *stream.Hub) { h.hub = hub }

func (h *BettingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	g := e.Group("/api")
	g.GET("/:sport/games", h.Games)
	g.GET("/:sport/teams/:team/stats", h.TeamStats)
	g.GET("/:sport/predictions", h.Predictions)
	g.GET("/:sport/opportunities", h.Opportunities)
	g.GET("/:sport/arbitrage", h.Arbitrage)
	g.GET("/stream", h.Stream)
}

func (h *BettingHandler) Health(c echo.Context) error {
	status := map[string]any{
		"status": "healthy",
		"time":   time.Now().UTC(),
	}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["storage"] = err.Error()
		} else {
			status["storage"] = "ok"
		}
	}
	if h.hub != nil {
		status["stream_clients"] = h.hub.ClientCount()
	}
	return xhttp.SuccessResponse(c, status)
}

func (h *BettingHandler) Games(c echo.Context) error {
	endpoint := "games"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.GamesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sport, _ := domrepo.NormalizeSport(req.Sport)
	day := util.ParseDayDefault(req.Date, time.Now().UTC())

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
	}

	cacheKey := "games:" + req.Sport + ":" + util.DayString(day)
	if b, ok := h.cached(endpoint, cacheKey); ok {
		return c.JSONBlob(200, b)
	}

	games, err := h.games.GamesForDay(c.Request().Context(), sport, day)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("games usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondCached(c, endpoint, cacheKey, games, 60*time.Second)
}

func (h *BettingHandler) TeamStats(c echo.Context) error {
	endpoint := "team_stats"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.TeamStatsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sport, _ := domrepo.NormalizeSport(req.Sport)

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
	}

	stats, err := h.games.TeamStats(c.Request().Context(), sport, req.Team, req.Days)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("team stats usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stats)
}

func (h *BettingHandler) Predictions(c echo.Context) error {
	endpoint := "predictions"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.PredictionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sport, _ := domrepo.NormalizeSport(req.Sport)
	day := util.ParseDayDefault(req.Date, time.Now().UTC())

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
	}

	cacheKey := "predictions:" + req.Sport + ":" + util.DayString(day)
	if b, ok := h.cached(endpoint, cacheKey); ok {
		return c.JSONBlob(200, b)
	}

	preds, err := h.scan.Predictions(c.Request().Context(), sport, day)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("predictions usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return h.respondCached(c, endpoint, cacheKey, preds, 120*time.Second)
}

func (h *BettingHandler) Opportunities(c echo.Context) error {
	endpoint := "opportunities"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.OpportunitiesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sport, _ := domrepo.NormalizeSport(req.Sport)

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
	}

	result, err := h.scan.Scan(c.Request().Context(), sport)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	opps := result.Opportunities
	if req.MinEV > 0 {
		filtered := opps[:0]
		for _, o := range opps {
			if o.ExpectedValue >= req.MinEV {
				filtered = append(filtered, o)
			}
		}
		opps = filtered
	}
	return xhttp.SuccessResponse(c, map[string]any{
		"sport":         result.Sport,
		"opportunities": opps,
		"scanned_at":    result.ScannedAt,
	})
}

func (h *BettingHandler) Arbitrage(c echo.Context) error {
	endpoint := "arbitrage"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ArbitrageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	sport, _ := domrepo.NormalizeSport(req.Sport)

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
	}

	arbs, err := h.scan.Arbitrage(c.Request().Context(), sport)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("arbitrage usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, arbs)
}

// Stream upgrades to WebSocket and pushes scan results as they happen.
func (h *BettingHandler) Stream(c echo.Context) error {
	if h.hub == nil {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("stream not enabled"))
	}
	return h.hub.Serve(c.Request().Context(), c.Response(), c.Request())
}

func (h *BettingHandler) allow(c echo.Context, endpoint string) bool {
	if h.rl.Allow(c.RealIP()+":"+endpoint, 10, 5) {
		return true
	}
	h.logger.Warn("rate limited",
		xlogger.String("endpoint", endpoint),
		xlogger.String("remote", c.RealIP()))
	return false
}

func (h *BettingHandler) cached(endpoint, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("cache get error", xlogger.Error(err))
		return nil, false
	}
	if ok {
		metrics.APICacheHits.WithLabelValues(endpoint).Inc()
	}
	return b, ok
}

func (h *BettingHandler) respondCached(c echo.Context, endpoint, key string, data any, ttl time.Duration) error {
	if h.cache != nil {
		// mirror the SuccessResponse envelope so cache hits look identical
		envelope := map[string]any{"status": 200, "message": "OK", "data": data}
		if b, err := json.Marshal(envelope); err == nil {
			if err := h.cache.SetBytes(key, b, ttl); err != nil {
				h.logger.Warn("cache set error", xlogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, data)
}
