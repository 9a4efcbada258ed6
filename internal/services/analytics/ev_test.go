package analytics

import (
	"math"
	"testing"
	"time"

	"OddsPull/internal/domain/models"
	"OddsPull/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func h2h(book string, outcomes ...models.OddsOutcome) models.Bookmaker {
	return models.Bookmaker{
		Key:   book,
		Title: book,
		Markets: []models.OddsMarket{
			{Key: models.MarketH2H, LastUpdate: time.Now(), Outcomes: outcomes},
		},
	}
}

func TestExpectedValue(t *testing.T) {
	e := NewEngine(testLogger(t))

	// Coin flip at -110 loses to the vig.
	ev, err := e.ExpectedValue(0.5, -110, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ev-(-4.5454545)) > 1e-6 {
		t.Fatalf("ExpectedValue(0.5, -110, 100) = %v, want ~-4.545", ev)
	}

	// Fair coin flip at +100 is exactly break-even.
	ev, err = e.ExpectedValue(0.5, 100, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ev) > 1e-12 {
		t.Fatalf("fair bet must be zero EV, got %v", ev)
	}

	if _, err := e.ExpectedValue(0.5, 0, 100); err == nil {
		t.Fatalf("expected error for odds 0")
	}
}

func TestEVPercentage(t *testing.T) {
	e := NewEngine(testLogger(t))

	pct, err := e.EVPercentage(0.60, -110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pct-14.5454545) > 1e-6 {
		t.Fatalf("EVPercentage(0.60, -110) = %v, want ~14.545", pct)
	}
}

func TestKellyStake(t *testing.T) {
	e := NewEngine(testLogger(t))

	// p=0.6 at even money: f = (1*0.6 - 0.4)/1 = 0.2.
	stake, err := e.KellyStake(0.6, 100, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(stake-200) > 1e-9 {
		t.Fatalf("KellyStake(0.6, +100, 1000) = %v, want 200", stake)
	}

	// A huge edge clamps at a quarter of bankroll.
	stake, _ = e.KellyStake(0.9, 100, 1000)
	if math.Abs(stake-250) > 1e-9 {
		t.Fatalf("expected clamp at 250, got %v", stake)
	}

	// Negative edge sizes to zero, never a negative stake.
	stake, _ = e.KellyStake(0.40, -110, 1000)
	if stake != 0 {
		t.Fatalf("negative edge must stake 0, got %v", stake)
	}
}

func TestFindPositiveEV(t *testing.T) {
	e := NewEngine(testLogger(t))

	events := []models.OddsEvent{
		{
			ID:       "g1",
			HomeTeam: "New York Yankees",
			AwayTeam: "Boston Red Sox",
			Bookmakers: []models.Bookmaker{
				h2h("draftkings",
					models.OddsOutcome{Name: "New York Yankees", Price: -110},
					models.OddsOutcome{Name: "Boston Red Sox", Price: -110},
				),
				h2h("fanduel",
					models.OddsOutcome{Name: "New York Yankees", Price: 105},
					models.OddsOutcome{Name: "Boston Red Sox", Price: -125},
				),
			},
		},
	}
	predictions := map[string]*models.Prediction{
		"g1": {
			GameID:             "g1",
			HomeTeam:           "New York Yankees",
			AwayTeam:           "Boston Red Sox",
			HomeWinProbability: 0.60,
			AwayWinProbability: 0.40,
		},
	}

	opportunities := e.FindPositiveEV(events, predictions)
	if len(opportunities) != 2 {
		t.Fatalf("expected 2 opportunities, got %d: %+v", len(opportunities), opportunities)
	}
	// fanduel's +105 on the home side has the bigger edge and sorts first.
	if opportunities[0].Bookmaker != "fanduel" || opportunities[0].Odds != 105 {
		t.Fatalf("unexpected top opportunity: %+v", opportunities[0])
	}
	if opportunities[1].Bookmaker != "draftkings" {
		t.Fatalf("unexpected second opportunity: %+v", opportunities[1])
	}
	if math.Abs(opportunities[1].ExpectedValue-14.5454545) > 1e-6 {
		t.Fatalf("unexpected EV %v", opportunities[1].ExpectedValue)
	}
	for _, o := range opportunities {
		if o.Team == "Boston Red Sox" {
			t.Fatalf("away side at 0.40 must not clear the threshold: %+v", o)
		}
	}
}

func TestFindPositiveEVNoPrediction(t *testing.T) {
	e := NewEngine(testLogger(t))

	events := []models.OddsEvent{
		{
			ID: "g9",
			Bookmakers: []models.Bookmaker{
				h2h("draftkings", models.OddsOutcome{Name: "Denver Nuggets", Price: 200}),
			},
		},
	}
	if got := e.FindPositiveEV(events, map[string]*models.Prediction{}); len(got) != 0 {
		t.Fatalf("quote without prediction must be skipped, got %+v", got)
	}
}

func TestFindPositiveEVLooseMatch(t *testing.T) {
	e := NewEngine(testLogger(t))

	// The book labels the outcome "Yankees" while the prediction uses
	// the full name. The probability-suffixed extra field still matches.
	events := []models.OddsEvent{
		{
			ID: "g2",
			Bookmakers: []models.Bookmaker{
				h2h("betmgm", models.OddsOutcome{Name: "Yankees", Price: 120}),
			},
		},
	}
	predictions := map[string]*models.Prediction{
		"g2": {
			GameID:   "g2",
			HomeTeam: "New York Yankees",
			AwayTeam: "Boston Red Sox",
			Extra: map[string]float64{
				"yankees_win_probability": 0.55,
			},
		},
	}

	opportunities := e.FindPositiveEV(events, predictions)
	if len(opportunities) != 1 {
		t.Fatalf("expected loose match to produce 1 opportunity, got %d", len(opportunities))
	}
	if opportunities[0].PredictedProbability != 0.55 {
		t.Fatalf("unexpected probability %v", opportunities[0].PredictedProbability)
	}
}

func TestFindArbitrage(t *testing.T) {
	e := NewEngine(testLogger(t))

	events := []models.OddsEvent{
		{
			ID:       "g3",
			HomeTeam: "New York Yankees",
			AwayTeam: "Boston Red Sox",
			Bookmakers: []models.Bookmaker{
				h2h("draftkings",
					models.OddsOutcome{Name: "New York Yankees", Price: 150},
					models.OddsOutcome{Name: "Boston Red Sox", Price: 130},
				),
				h2h("fanduel",
					models.OddsOutcome{Name: "New York Yankees", Price: 140},
					models.OddsOutcome{Name: "Boston Red Sox", Price: 150},
				),
			},
		},
		{
			ID: "g4",
			Bookmakers: []models.Bookmaker{
				h2h("draftkings",
					models.OddsOutcome{Name: "Dallas Cowboys", Price: -110},
					models.OddsOutcome{Name: "Philadelphia Eagles", Price: -110},
				),
			},
		},
	}

	opportunities := e.FindArbitrage(events)
	if len(opportunities) != 1 {
		t.Fatalf("expected exactly 1 arbitrage, got %d", len(opportunities))
	}
	arb := opportunities[0]
	if arb.GameID != "g3" {
		t.Fatalf("unexpected game %s", arb.GameID)
	}
	// Best prices are +150 both sides: implied 0.4 + 0.4 = 0.8.
	if math.Abs(arb.TotalImpliedProbability-0.8) > 1e-9 {
		t.Fatalf("unexpected implied total %v", arb.TotalImpliedProbability)
	}
	if math.Abs(arb.ProfitMargin-20.0) > 1e-9 {
		t.Fatalf("unexpected margin %v", arb.ProfitMargin)
	}
	if arb.BestOdds["New York Yankees"].Bookmaker != "draftkings" {
		t.Fatalf("unexpected best home quote: %+v", arb.BestOdds)
	}
	if arb.BestOdds["Boston Red Sox"].Bookmaker != "fanduel" {
		t.Fatalf("unexpected best away quote: %+v", arb.BestOdds)
	}
}

func TestFindArbitrageNeedsTwoOutcomes(t *testing.T) {
	e := NewEngine(testLogger(t))

	events := []models.OddsEvent{
		{
			ID: "g5",
			Bookmakers: []models.Bookmaker{
				h2h("draftkings", models.OddsOutcome{Name: "Miami Heat", Price: 500}),
			},
		},
	}
	if got := e.FindArbitrage(events); len(got) != 0 {
		t.Fatalf("single-outcome event must not arb, got %+v", got)
	}
}

func TestPortfolioRisk(t *testing.T) {
	e := NewEngine(testLogger(t))

	positions := []models.BetPosition{
		{GameID: "g1", Amount: 100, ExpectedValue: 5, PredictedProbability: 0.5},
		{GameID: "g2", Amount: 100, ExpectedValue: 3, PredictedProbability: 0.5},
	}

	risk := e.PortfolioRisk(positions)
	if risk.NumberOfBets != 2 || risk.TotalBetAmount != 200 {
		t.Fatalf("unexpected totals: %+v", risk)
	}
	if math.Abs(risk.TotalExpectedValue-8) > 1e-12 {
		t.Fatalf("unexpected total EV %v", risk.TotalExpectedValue)
	}
	if math.Abs(risk.PortfolioEVPercent-4.0) > 1e-12 {
		t.Fatalf("unexpected EV pct %v", risk.PortfolioEVPercent)
	}
	// Independent bets: variance = 2 * 100^2 * 0.25 = 5000.
	if math.Abs(risk.PortfolioVariance-5000) > 1e-9 {
		t.Fatalf("unexpected variance %v", risk.PortfolioVariance)
	}
	if math.Abs(risk.PortfolioStdDev-math.Sqrt(5000)) > 1e-9 {
		t.Fatalf("unexpected std dev %v", risk.PortfolioStdDev)
	}
	if risk.AverageBetSize != 100 {
		t.Fatalf("unexpected average %v", risk.AverageBetSize)
	}
}

func TestPortfolioRiskEmpty(t *testing.T) {
	e := NewEngine(testLogger(t))

	risk := e.PortfolioRisk(nil)
	if risk.NumberOfBets != 0 || risk.TotalBetAmount != 0 || risk.PortfolioStdDev != 0 {
		t.Fatalf("empty portfolio must zero out: %+v", risk)
	}
}
