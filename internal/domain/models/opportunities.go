package models

import "time"

// EVOpportunity is one positive-expected-value quote found by a scan.
type EVOpportunity struct {
	GameID               string    `json:"game_id"`
	Bookmaker            string    `json:"bookmaker"`
	Team                 string    `json:"team"`
	Odds                 int       `json:"odds"`
	PredictedProbability float64   `json:"predicted_probability"`
	ExpectedValue        float64   `json:"expected_value"` // % of a $100 stake
	Market               string    `json:"market"`
	Timestamp            time.Time `json:"timestamp"`
}

// BestQuote is the highest American odds found for one outcome.
type BestQuote struct {
	Bookmaker string `json:"bookmaker"`
	Price     int    `json:"price"`
}

// ArbitrageOpportunity is a cross-book price set whose implied
// probabilities sum below 1.
type ArbitrageOpportunity struct {
	GameID                  string               `json:"game_id"`
	ProfitMargin            float64              `json:"profit_margin"` // percent
	TotalImpliedProbability float64              `json:"total_implied_probability"`
	BestOdds                map[string]BestQuote `json:"best_odds"` // outcome -> quote
	Timestamp               time.Time            `json:"timestamp"`
}

// BetPosition is one staked bet in a portfolio.
type BetPosition struct {
	GameID               string  `json:"game_id"`
	Amount               float64 `json:"amount"`
	ExpectedValue        float64 `json:"expected_value"`
	PredictedProbability float64 `json:"predicted_probability"`
}

// RiskSummary holds portfolio-level risk metrics for a set of bets,
// computed under the independence assumption.
type RiskSummary struct {
	TotalBetAmount       float64 `json:"total_bet_amount"`
	TotalExpectedValue   float64 `json:"total_expected_value"`
	PortfolioEVPercent   float64 `json:"portfolio_ev_percentage"`
	PortfolioVariance    float64 `json:"portfolio_variance"`
	PortfolioStdDev      float64 `json:"portfolio_std_deviation"`
	NumberOfBets         int     `json:"number_of_bets"`
	AverageBetSize       float64 `json:"average_bet_size"`
}
