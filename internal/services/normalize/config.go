package normalize

// Thresholds holds the fixed scoring cutoffs used for derived game flags.
// A zero margin disables the corresponding flag for that sport.
type Thresholds struct {
	HighScoring   int `yaml:"high_scoring"`
	LowScoring    int `yaml:"low_scoring"`
	BlowoutMargin int `yaml:"blowout_margin"`
	CloseMargin   int `yaml:"close_margin"`
}

// SportConfig holds per-sport normalization lookup data.
type SportConfig struct {
	TeamNames  map[string]string `yaml:"team_names"` // abbreviation -> display name
	Thresholds Thresholds        `yaml:"thresholds"`
}

// DefaultSportConfigs returns the built-in mapping tables and thresholds.
// Config files may extend or override entries without code changes.
func DefaultSportConfigs() map[string]SportConfig {
	return map[string]SportConfig{
		"mlb": {
			TeamNames: map[string]string{
				"LAA": "Los Angeles Angels",
				"LAD": "Los Angeles Dodgers",
				"NYY": "New York Yankees",
				"NYM": "New York Mets",
				"BOS": "Boston Red Sox",
				"CHC": "Chicago Cubs",
				"CWS": "Chicago White Sox",
				"ATL": "Atlanta Braves",
				"HOU": "Houston Astros",
				"SF":  "San Francisco Giants",
			},
			Thresholds: Thresholds{HighScoring: 9, LowScoring: 7},
		},
		"nfl": {
			TeamNames: map[string]string{
				"NE":  "New England Patriots",
				"GB":  "Green Bay Packers",
				"KC":  "Kansas City Chiefs",
				"SF":  "San Francisco 49ers",
				"DAL": "Dallas Cowboys",
				"NYJ": "New York Jets",
				"NYG": "New York Giants",
				"PHI": "Philadelphia Eagles",
				"BUF": "Buffalo Bills",
			},
			Thresholds: Thresholds{HighScoring: 45, LowScoring: 35, BlowoutMargin: 14},
		},
		"nba": {
			TeamNames: map[string]string{
				"LAL": "Los Angeles Lakers",
				"GSW": "Golden State Warriors",
				"BOS": "Boston Celtics",
				"MIA": "Miami Heat",
				"DEN": "Denver Nuggets",
				"NYK": "New York Knicks",
				"PHX": "Phoenix Suns",
				"MIL": "Milwaukee Bucks",
			},
			Thresholds: Thresholds{HighScoring: 220, LowScoring: 200, CloseMargin: 5},
		},
	}
}

// MergeSportConfigs overlays user-supplied entries onto the defaults.
func MergeSportConfigs(base, overlay map[string]SportConfig) map[string]SportConfig {
	out := make(map[string]SportConfig, len(base))
	for k, v := range base {
		cp := SportConfig{
			TeamNames:  make(map[string]string, len(v.TeamNames)),
			Thresholds: v.Thresholds,
		}
		for abbr, name := range v.TeamNames {
			cp.TeamNames[abbr] = name
		}
		out[k] = cp
	}
	for k, v := range overlay {
		cfg, ok := out[k]
		if !ok {
			cfg = SportConfig{TeamNames: make(map[string]string)}
		}
		for abbr, name := range v.TeamNames {
			cfg.TeamNames[abbr] = name
		}
		if v.Thresholds != (Thresholds{}) {
			cfg.Thresholds = v.Thresholds
		}
		out[k] = cfg
	}
	return out
}
