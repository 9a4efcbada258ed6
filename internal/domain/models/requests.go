package models

// Requests for the betting HTTP endpoints. Defined in domain for consistency and reuse.

type GamesRequest struct {
	Sport string `param:"sport" json:"sport" validate:"required,oneof=mlb nfl nba"`
	Date  string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type TeamStatsRequest struct {
	Sport string `param:"sport" json:"sport" validate:"required,oneof=mlb nfl nba"`
	Team  string `param:"team" json:"team" validate:"required,min=2"`
	Days  int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=120"`
}

type PredictionsRequest struct {
	Sport string `param:"sport" json:"sport" validate:"required,oneof=mlb nfl nba"`
	Date  string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type OpportunitiesRequest struct {
	Sport string  `param:"sport" json:"sport" validate:"required,oneof=mlb nfl nba"`
	MinEV float64 `query:"min_ev" json:"min_ev" default:"1.0" validate:"gte=0,lte=100"`
}

type ArbitrageRequest struct {
	Sport string `param:"sport" json:"sport" validate:"required,oneof=mlb nfl nba"`
}
