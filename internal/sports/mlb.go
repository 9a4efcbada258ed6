package sports

import (
	domrepo "OddsPull/internal/domain/repository"
	domservice "OddsPull/internal/domain/service"
)

// MLB scoring runs low, so a small home bump and a steep logistic
// slope: one run of expected spread moves the line a lot.
func NewMLBAnalyzer(deps Deps) domservice.Analyzer {
	return newAnalyzer(domrepo.SportMLB, params{
		defaultScore:  4.5,
		homeAdvantage: 0.1,
		sigmoidK:      1.5,
		sampleGames:   30,
		windowDays:    30,
		modelVersion:  "mlb_basic_v1.0",
	}, deps)
}
