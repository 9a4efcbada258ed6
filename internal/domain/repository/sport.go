package repository

// Sport identifies a supported league.
type Sport string

const (
	SportMLB Sport = "mlb"
	SportNFL Sport = "nfl"
	SportNBA Sport = "nba"
)

// IsValidSport returns true if s is a supported sport key.
func IsValidSport(s Sport) bool {
	switch s {
	case SportMLB, SportNFL, SportNBA:
		return true
	default:
		return false
	}
}

// NormalizeSport converts a raw string to a valid sport key ("" if unknown).
func NormalizeSport(s string) (Sport, bool) {
	sp := Sport(s)
	if IsValidSport(sp) {
		return sp, true
	}
	return "", false
}

// ESPNPath returns the scoreboard path segment used by the ESPN API.
func (s Sport) ESPNPath() string {
	switch s {
	case SportMLB:
		return "baseball/mlb"
	case SportNFL:
		return "football/nfl"
	case SportNBA:
		return "basketball/nba"
	default:
		return string(s)
	}
}

// OddsKey returns the sport key used by the odds API.
func (s Sport) OddsKey() string {
	switch s {
	case SportMLB:
		return "baseball_mlb"
	case SportNFL:
		return "americanfootball_nfl"
	case SportNBA:
		return "basketball_nba"
	default:
		return string(s)
	}
}
