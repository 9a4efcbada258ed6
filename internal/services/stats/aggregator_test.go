package stats

import (
	"math"
	"testing"

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

func finished(id, home string, homeScore int, away string, awayScore int) models.GameRecord {
	g := models.GameRecord{
		GameID:      id,
		Sport:       "mlb",
		Date:        "2025-04-10",
		HomeTeam:    home,
		AwayTeam:    away,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		IsCompleted: true,
	}
	g.TotalScore = homeScore + awayScore
	g.ScoreDifferential = homeScore - awayScore
	switch {
	case homeScore > awayScore:
		g.Winner, g.HomeTeamResult = home, "Win"
	case awayScore > homeScore:
		g.Winner, g.HomeTeamResult = away, "Loss"
	default:
		g.Winner, g.HomeTeamResult = "Tie", "Tie"
	}
	return g
}

func TestTeamStatsPerspectiveFlip(t *testing.T) {
	a := NewAggregator(testLogger(t))

	// The Yankees win at home, then win on the road. The road win is a
	// home "Loss" in the record and must still count as a Yankees win.
	games := []models.GameRecord{
		finished("1", "New York Yankees", 5, "Boston Red Sox", 2),
		finished("2", "Boston Red Sox", 1, "New York Yankees", 4),
	}

	s := a.TeamStats("New York Yankees", "mlb", games)
	if s.TotalGames != 2 || s.Wins != 2 || s.Losses != 0 {
		t.Fatalf("unexpected record %d-%d over %d games", s.Wins, s.Losses, s.TotalGames)
	}
	if s.HomeGames != 1 || s.AwayGames != 1 {
		t.Fatalf("unexpected split home=%d away=%d", s.HomeGames, s.AwayGames)
	}
	if s.TotalPointsScored != 9 || s.TotalPointsAllowed != 3 {
		t.Fatalf("unexpected points %d/%d", s.TotalPointsScored, s.TotalPointsAllowed)
	}
	if s.WinPercentage != 1.0 {
		t.Fatalf("unexpected win pct %v", s.WinPercentage)
	}

	// Same games from Boston's side.
	b := a.TeamStats("Boston Red Sox", "mlb", games)
	if b.Wins != 0 || b.Losses != 2 {
		t.Fatalf("unexpected boston record %d-%d", b.Wins, b.Losses)
	}
}

func TestTeamStatsEmpty(t *testing.T) {
	a := NewAggregator(testLogger(t))

	s := a.TeamStats("New York Mets", "mlb", nil)
	if s.TeamName != "New York Mets" {
		t.Fatalf("unexpected team %s", s.TeamName)
	}
	if s.TotalGames != 0 || s.Wins != 0 || s.WinPercentage != 0 {
		t.Fatalf("empty input must produce a zeroed summary: %+v", s)
	}
	if s.Extras != nil {
		t.Fatalf("empty summary must not carry extras")
	}
}

func TestTeamStatsIgnoresOtherGames(t *testing.T) {
	a := NewAggregator(testLogger(t))

	games := []models.GameRecord{
		finished("1", "Chicago Cubs", 3, "Atlanta Braves", 2),
		finished("2", "Houston Astros", 6, "New York Mets", 1),
	}
	inProgress := finished("3", "Chicago Cubs", 2, "Houston Astros", 2)
	inProgress.IsCompleted = false
	inProgress.Winner, inProgress.HomeTeamResult = "", ""
	games = append(games, inProgress)

	s := a.TeamStats("Chicago Cubs", "mlb", games)
	if s.TotalGames != 1 {
		t.Fatalf("expected 1 counted game, got %d", s.TotalGames)
	}
}

func TestTeamStatsAverages(t *testing.T) {
	a := NewAggregator(testLogger(t))

	games := []models.GameRecord{
		finished("1", "Houston Astros", 4, "Chicago White Sox", 0),
		finished("2", "Houston Astros", 2, "Chicago White Sox", 3),
		finished("3", "Chicago White Sox", 5, "Houston Astros", 6),
	}

	s := a.TeamStats("Houston Astros", "mlb", games)
	if s.TotalGames != 3 || s.Wins != 2 || s.Losses != 1 {
		t.Fatalf("unexpected record: %+v", s)
	}
	if math.Abs(s.AvgPointsScored-4.0) > 1e-9 {
		t.Fatalf("unexpected avg scored %v", s.AvgPointsScored)
	}
	if math.Abs(s.AvgPointsAllowed-8.0/3.0) > 1e-9 {
		t.Fatalf("unexpected avg allowed %v", s.AvgPointsAllowed)
	}
	if s.PointDifferential != 4 {
		t.Fatalf("unexpected differential %d", s.PointDifferential)
	}
	if got := s.Extras["shutouts"]; got != 1 {
		t.Fatalf("expected 1 shutout, got %v", got)
	}
	if got := s.Extras["one_run_games"]; got != 2 {
		t.Fatalf("expected 2 one-run games, got %v", got)
	}
	if got := s.Extras["home_record"]; got != "1-1" {
		t.Fatalf("unexpected home record %v", got)
	}
	if got := s.Extras["away_record"]; got != "1-0" {
		t.Fatalf("unexpected away record %v", got)
	}
}
