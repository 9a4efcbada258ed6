package normalize

import (
	"testing"
	"time"

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

func espnEvent(id, date, home, homeScore, away, awayScore string, completed bool) map[string]any {
	return map[string]any{
		"id":   id,
		"date": date,
		"status": map[string]any{
			"type": map[string]any{
				"name":      "STATUS_FINAL",
				"completed": completed,
			},
		},
		"competitions": []any{
			map[string]any{
				"competitors": []any{
					map[string]any{
						"homeAway": "home",
						"score":    homeScore,
						"team":     map[string]any{"displayName": home},
					},
					map[string]any{
						"homeAway": "away",
						"score":    awayScore,
						"team":     map[string]any{"displayName": away},
					},
				},
			},
		},
	}
}

func TestNormalizeBasicGame(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	records := n.Normalize("mlb", []map[string]any{
		espnEvent("401", "2025-04-10T19:05Z", "New York Yankees", "7", "Boston Red Sox", "4", true),
	}, day)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.GameID != "401" || rec.Sport != "mlb" {
		t.Fatalf("unexpected identity: %+v", rec)
	}
	if rec.Date != "2025-04-10" {
		t.Fatalf("unexpected date %s", rec.Date)
	}
	if rec.HomeTeam != "New York Yankees" || rec.AwayTeam != "Boston Red Sox" {
		t.Fatalf("unexpected teams: %s vs %s", rec.HomeTeam, rec.AwayTeam)
	}
	if rec.HomeScore != 7 || rec.AwayScore != 4 {
		t.Fatalf("unexpected scores: %d-%d", rec.HomeScore, rec.AwayScore)
	}
	if rec.TotalScore != 11 || rec.ScoreDifferential != 3 {
		t.Fatalf("unexpected derived: total=%d diff=%d", rec.TotalScore, rec.ScoreDifferential)
	}
	if rec.Winner != "New York Yankees" || rec.HomeTeamResult != "Win" {
		t.Fatalf("unexpected result: winner=%s home=%s", rec.Winner, rec.HomeTeamResult)
	}
	if !rec.Flags["is_high_scoring"] {
		t.Fatalf("11 runs must flag high scoring for mlb")
	}
	if rec.Flags["is_low_scoring"] {
		t.Fatalf("11 runs must not flag low scoring")
	}
}

func TestNormalizeDateFallback(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	event := espnEvent("402", "not-a-date", "Chicago Cubs", "3", "Atlanta Braves", "2", true)
	records := n.Normalize("mlb", []map[string]any{event}, day)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Date != "2025-04-10" {
		t.Fatalf("expected processing-day fallback, got %s", records[0].Date)
	}
}

func TestNormalizeSkipsMissingTeam(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	event := espnEvent("403", "2025-04-10T19:05Z", "", "3", "Atlanta Braves", "2", true)
	records := n.Normalize("mlb", []map[string]any{event}, day)

	if len(records) != 0 {
		t.Fatalf("expected event without a home team to be skipped, got %d records", len(records))
	}
}

func TestNormalizeAbbreviationMapping(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	event := map[string]any{
		"id":   "501",
		"date": "2025-11-02T18:00Z",
		"status": map[string]any{
			"type": map[string]any{"name": "STATUS_FINAL", "completed": true},
		},
		"competitions": []any{
			map[string]any{
				"competitors": []any{
					map[string]any{
						"homeAway": "home",
						"score":    float64(31),
						"team":     map[string]any{"abbreviation": "KC"},
					},
					map[string]any{
						"homeAway": "away",
						"score":    float64(10),
						"team":     map[string]any{"abbreviation": "NYJ"},
					},
				},
			},
		},
	}
	records := n.Normalize("nfl", []map[string]any{event}, day)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.HomeTeam != "Kansas City Chiefs" || rec.AwayTeam != "New York Jets" {
		t.Fatalf("abbreviations not mapped: %s vs %s", rec.HomeTeam, rec.AwayTeam)
	}
	if !rec.Flags["is_blowout"] {
		t.Fatalf("21-point margin must flag blowout for nfl")
	}
}

func TestNormalizeDisplayNameMapping(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	// Some feeds put the abbreviation in displayName; it goes through the
	// same lookup table.
	records := n.Normalize("mlb", []map[string]any{
		espnEvent("502", "2025-04-10T19:05Z", "NYY", "6", "BOS", "2", true),
	}, day)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.HomeTeam != "New York Yankees" || rec.AwayTeam != "Boston Red Sox" {
		t.Fatalf("display names not mapped: %s vs %s", rec.HomeTeam, rec.AwayTeam)
	}
}

func TestNormalizeSignedDifferential(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	records := n.Normalize("mlb", []map[string]any{
		espnEvent("503", "2025-04-10T19:05Z", "Houston Astros", "2", "Seattle Mariners", "7", true),
	}, day)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ScoreDifferential != -5 {
		t.Fatalf("score_differential = %d, want -5 (home 2 - away 7)", rec.ScoreDifferential)
	}
	if rec.Winner != "Seattle Mariners" || rec.HomeTeamResult != "Loss" {
		t.Fatalf("unexpected result: winner=%s home=%s", rec.Winner, rec.HomeTeamResult)
	}

	// An away rout still flags as a blowout: the flag uses the margin's
	// magnitude, not its sign.
	nfl := n.Normalize("nfl", []map[string]any{
		espnEvent("504", "2025-11-02T18:00Z", "New York Jets", "10", "Kansas City Chiefs", "31", true),
	}, day)
	if len(nfl) != 1 {
		t.Fatalf("expected 1 record, got %d", len(nfl))
	}
	if nfl[0].ScoreDifferential != -21 {
		t.Fatalf("score_differential = %d, want -21", nfl[0].ScoreDifferential)
	}
	if !nfl[0].Flags["is_blowout"] {
		t.Fatalf("21-point road margin must flag blowout for nfl")
	}
}

func TestNormalizeIncompleteGameHasNoWinner(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	event := espnEvent("601", "2025-12-25T20:00Z", "Los Angeles Lakers", "54", "Boston Celtics", "51", false)
	records := n.Normalize("nba", []map[string]any{event}, day)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Winner != "" || rec.HomeTeamResult != "" {
		t.Fatalf("in-progress game must not carry a result: %+v", rec)
	}
	if !rec.Flags["is_close_game"] {
		t.Fatalf("3-point margin must flag close game for nba")
	}
}

func TestSportFlagsThresholdBoundaries(t *testing.T) {
	n := NewNormalizer(testLogger(t))
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	// Exactly 9 total runs is not high scoring (strict >), exactly 7 is
	// not low scoring (strict <).
	records := n.Normalize("mlb", []map[string]any{
		espnEvent("701", "2025-04-10T19:05Z", "Houston Astros", "5", "Chicago White Sox", "4", true),
		espnEvent("702", "2025-04-10T19:05Z", "Houston Astros", "4", "Chicago White Sox", "3", true),
		espnEvent("703", "2025-04-10T19:05Z", "Houston Astros", "4", "Chicago White Sox", "2", true),
	}, day)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Flags["is_high_scoring"] {
		t.Fatalf("total of exactly 9 must not be high scoring")
	}
	if records[0].Flags["is_low_scoring"] {
		t.Fatalf("total of 9 must not be low scoring")
	}
	if records[1].Flags["is_low_scoring"] {
		t.Fatalf("total of exactly 7 must not be low scoring")
	}
	if !records[2].Flags["is_low_scoring"] {
		t.Fatalf("total of 6 was expected low scoring")
	}
}
