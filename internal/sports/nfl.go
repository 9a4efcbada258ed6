package sports

import (
	domrepo "OddsPull/internal/domain/repository"
	domservice "OddsPull/internal/domain/service"
)

// NFL home teams are worth about a field goal. The shallow slope
// reflects that a 3-point favorite is far from a lock.
func NewNFLAnalyzer(deps Deps) domservice.Analyzer {
	return newAnalyzer(domrepo.SportNFL, params{
		defaultScore:  21.0,
		homeAdvantage: 3.0,
		sigmoidK:      0.15,
		sampleGames:   16,
		windowDays:    90,
		modelVersion:  "nfl_basic_v1.0",
	}, deps)
}
