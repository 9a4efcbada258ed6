package models

import "time"

// OddsOutcome is one priced side of a market.
type OddsOutcome struct {
	Name  string `json:"name"`  // team / outcome label
	Price int    `json:"price"` // American odds
}

// OddsMarket is a market (e.g. h2h, spreads) offered by one bookmaker.
type OddsMarket struct {
	Key        string        `json:"key"`
	LastUpdate time.Time     `json:"last_update"`
	Outcomes   []OddsOutcome `json:"outcomes"`
}

// Bookmaker is one book's markets for a game.
type Bookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []OddsMarket `json:"markets"`
}

// OddsEvent is a full odds payload for one game across bookmakers,
// in the-odds-api wire shape.
type OddsEvent struct {
	ID         string      `json:"id"`
	SportKey   string      `json:"sport_key"`
	HomeTeam   string      `json:"home_team"`
	AwayTeam   string      `json:"away_team"`
	Bookmakers []Bookmaker `json:"bookmakers"`
}

// MarketH2H is the only market key the EV/arbitrage scan consumes.
const MarketH2H = "h2h"

// OddsQuote is one bookmaker's price for one outcome, flattened.
type OddsQuote struct {
	GameID    string `json:"game_id"`
	Bookmaker string `json:"bookmaker"`
	Market    string `json:"market"`
	Outcome   string `json:"outcome"`
	Price     int    `json:"price"`
}
