package sports

import (
	domrepo "OddsPull/internal/domain/repository"
	domservice "OddsPull/internal/domain/service"
)

// NBA totals are large and margins noisy, so the spread-to-probability
// slope sits between baseball and football.
func NewNBAAnalyzer(deps Deps) domservice.Analyzer {
	return newAnalyzer(domrepo.SportNBA, params{
		defaultScore:  110.0,
		homeAdvantage: 2.5,
		sigmoidK:      0.08,
		sampleGames:   25,
		windowDays:    30,
		modelVersion:  "nba_basic_v1.0",
	}, deps)
}
