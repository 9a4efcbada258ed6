package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"OddsPull/internal/domain/models"
	"OddsPull/pkg/logger"
	"OddsPull/pkg/oddsmath"
)

const (
	// DefaultStake is the reference stake EV percentages are quoted against.
	DefaultStake = 100.0
	// MaxKellyFraction caps the Kelly criterion at a quarter of bankroll.
	MaxKellyFraction = 0.25
)

// Engine computes expected value, Kelly sizing, arbitrage and portfolio
// risk from predictions and bookmaker odds.
type Engine struct {
	logger *logger.Logger
	minEV  float64 // percent threshold for a quote to count as an opportunity
}

type EngineOption func(*Engine)

func WithMinEV(minEV float64) EngineOption {
	return func(e *Engine) {
		e.minEV = minEV
	}
}

func NewEngine(log *logger.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		logger: log,
		minEV:  1.0,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpectedValue returns the expected profit of staking `stake` at the
// given American odds when the true win probability is p.
func (e *Engine) ExpectedValue(probability float64, american int, stake float64) (float64, error) {
	decimal, err := oddsmath.AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	winProfit := stake * (decimal - 1.0)
	return probability*winProfit - (1.0-probability)*stake, nil
}

// EVPercentage is ExpectedValue quoted as a percentage of the stake.
func (e *Engine) EVPercentage(probability float64, american int) (float64, error) {
	ev, err := e.ExpectedValue(probability, american, DefaultStake)
	if err != nil {
		return 0, err
	}
	return ev / DefaultStake * 100.0, nil
}

// KellyStake sizes a bet by the Kelly criterion, clamped to
// [0, MaxKellyFraction] of bankroll. Negative-edge bets size to zero.
func (e *Engine) KellyStake(probability float64, american int, bankroll float64) (float64, error) {
	decimal, err := oddsmath.AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	b := decimal - 1.0
	q := 1.0 - probability
	fraction := (b*probability - q) / b
	if fraction < 0 {
		fraction = 0
	}
	if fraction > MaxKellyFraction {
		fraction = MaxKellyFraction
	}
	return fraction * bankroll, nil
}

// FindPositiveEV scans every h2h quote in the odds events against the
// matching prediction and returns quotes whose EV percentage clears the
// engine threshold, sorted by EV descending. Quotes with no matching
// prediction, and unparsable odds, are skipped.
func (e *Engine) FindPositiveEV(events []models.OddsEvent, predictions map[string]*models.Prediction) []models.EVOpportunity {
	now := time.Now().UTC()
	var opportunities []models.EVOpportunity

	for _, event := range events {
		pred := predictions[event.ID]
		if pred == nil {
			continue
		}
		for _, book := range event.Bookmakers {
			for _, market := range book.Markets {
				if market.Key != models.MarketH2H {
					continue
				}
				for _, outcome := range market.Outcomes {
					probability, ok := matchProbability(pred, outcome.Name)
					if !ok {
						continue
					}
					evPct, err := e.EVPercentage(probability, outcome.Price)
					if err != nil {
						e.logger.Warn("skipping unpriceable quote",
							logger.String("game_id", event.ID),
							logger.String("bookmaker", book.Key),
							logger.Int("odds", outcome.Price),
							logger.Error(err))
						continue
					}
					if evPct < e.minEV {
						continue
					}
					opportunities = append(opportunities, models.EVOpportunity{
						GameID:               event.ID,
						Bookmaker:            book.Key,
						Team:                 outcome.Name,
						Odds:                 outcome.Price,
						PredictedProbability: probability,
						ExpectedValue:        evPct,
						Market:               market.Key,
						Timestamp:            now,
					})
				}
			}
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].ExpectedValue > opportunities[j].ExpectedValue
	})
	return opportunities
}

// matchProbability resolves the predicted win probability for an
// outcome label. Exact team matches come first; otherwise any extra
// probability field whose key contains the team name is accepted.
func matchProbability(pred *models.Prediction, outcome string) (float64, bool) {
	if strings.EqualFold(outcome, pred.HomeTeam) {
		return pred.HomeWinProbability, true
	}
	if strings.EqualFold(outcome, pred.AwayTeam) {
		return pred.AwayWinProbability, true
	}
	needle := strings.ToLower(outcome)
	for key, value := range pred.Extra {
		lower := strings.ToLower(key)
		if strings.Contains(lower, needle) && strings.Contains(lower, "probability") {
			return value, true
		}
	}
	return 0, false
}

// FindArbitrage finds cross-bookmaker h2h price sets whose combined
// implied probability is under 1. Events with fewer than two priced
// outcomes cannot arb and are skipped.
func (e *Engine) FindArbitrage(events []models.OddsEvent) []models.ArbitrageOpportunity {
	now := time.Now().UTC()
	var opportunities []models.ArbitrageOpportunity

	for _, event := range events {
		best := bestQuotes(event)
		if len(best) < 2 {
			continue
		}

		total := 0.0
		priced := true
		for _, quote := range best {
			p, err := oddsmath.ImpliedProbability(quote.Price)
			if err != nil {
				priced = false
				break
			}
			total += p
		}
		if !priced || total >= 1.0 {
			continue
		}

		opportunities = append(opportunities, models.ArbitrageOpportunity{
			GameID:                  event.ID,
			ProfitMargin:            (1.0 - total) * 100.0,
			TotalImpliedProbability: total,
			BestOdds:                best,
			Timestamp:               now,
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].ProfitMargin > opportunities[j].ProfitMargin
	})
	return opportunities
}

// bestQuotes picks the highest decimal price per outcome across books.
func bestQuotes(event models.OddsEvent) map[string]models.BestQuote {
	best := make(map[string]models.BestQuote)
	bestDecimal := make(map[string]float64)

	for _, book := range event.Bookmakers {
		for _, market := range book.Markets {
			if market.Key != models.MarketH2H {
				continue
			}
			for _, outcome := range market.Outcomes {
				decimal, err := oddsmath.AmericanToDecimal(outcome.Price)
				if err != nil {
					continue
				}
				if decimal > bestDecimal[outcome.Name] {
					bestDecimal[outcome.Name] = decimal
					best[outcome.Name] = models.BestQuote{Bookmaker: book.Key, Price: outcome.Price}
				}
			}
		}
	}
	return best
}

// PortfolioRisk summarizes a set of staked bets. Variance assumes
// independent outcomes; correlated-outcome modelling is not implemented
// and callers must not treat same-game positions as diversified.
func (e *Engine) PortfolioRisk(positions []models.BetPosition) models.RiskSummary {
	summary := models.RiskSummary{NumberOfBets: len(positions)}
	if len(positions) == 0 {
		return summary
	}

	for _, pos := range positions {
		summary.TotalBetAmount += pos.Amount
		summary.TotalExpectedValue += pos.ExpectedValue
		p := pos.PredictedProbability
		summary.PortfolioVariance += pos.Amount * pos.Amount * p * (1.0 - p)
	}

	summary.PortfolioStdDev = math.Sqrt(summary.PortfolioVariance)
	if summary.TotalBetAmount > 0 {
		summary.PortfolioEVPercent = summary.TotalExpectedValue / summary.TotalBetAmount * 100.0
	}
	summary.AverageBetSize = summary.TotalBetAmount / float64(len(positions))
	return summary
}
