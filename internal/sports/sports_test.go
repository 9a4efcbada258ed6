package sports

import (
	"context"
	"math"
	"testing"
	"time"

	"OddsPull/internal/domain/models"
	domrepo "OddsPull/internal/domain/repository"
	"OddsPull/internal/services/analytics"
	"OddsPull/internal/services/normalize"
	"OddsPull/internal/services/stats"
	"OddsPull/pkg/logger"
)

type fakeSource struct {
	events []map[string]any
	err    error
}

func (f *fakeSource) FetchEvents(_ context.Context, _ domrepo.Sport, _ time.Time) ([]map[string]any, error) {
	return f.events, f.err
}

type fakeStore struct {
	games []models.GameRecord
}

func (f *fakeStore) Init(context.Context) error                             { return nil }
func (f *fakeStore) StoreGames(_ context.Context, g []models.GameRecord) error {
	f.games = append(f.games, g...)
	return nil
}
func (f *fakeStore) StoreOpportunities(context.Context, []models.EVOpportunity) error { return nil }
func (f *fakeStore) Health(context.Context) error                                     { return nil }
func (f *fakeStore) Close() error                                                     { return nil }

func (f *fakeStore) GamesByTeam(_ context.Context, _ domrepo.Sport, team string, _, _ time.Time) ([]models.GameRecord, error) {
	var out []models.GameRecord
	for _, g := range f.games {
		if g.HomeTeam == team || g.AwayTeam == team {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) GamesByDate(_ context.Context, _ domrepo.Sport, _ time.Time) ([]models.GameRecord, error) {
	return f.games, nil
}

func testDeps(t *testing.T, source *fakeSource, store *fakeStore) Deps {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return Deps{
		Source:     source,
		Store:      store,
		Normalizer: normalize.NewNormalizer(log),
		Cleaner:    normalize.NewCleaner(log),
		Aggregator: stats.NewAggregator(log),
		Engine:     analytics.NewEngine(log),
		Logger:     log,
	}
}

func completedGame(id, home string, homeScore int, away string, awayScore int) models.GameRecord {
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

func TestRegistryLookup(t *testing.T) {
	deps := testDeps(t, &fakeSource{}, &fakeStore{})
	reg := NewDefaultRegistry(deps)

	a, err := reg.Get(domrepo.SportNFL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Sport() != domrepo.SportNFL {
		t.Fatalf("wrong analyzer: %s", a.Sport())
	}

	if _, err := reg.Get(domrepo.Sport("cricket")); err == nil {
		t.Fatalf("expected error for unknown sport")
	}

	sports := reg.Sports()
	if len(sports) != 3 {
		t.Fatalf("expected 3 sports, got %v", sports)
	}
	for i := 1; i < len(sports); i++ {
		if sports[i-1] >= sports[i] {
			t.Fatalf("sports not sorted: %v", sports)
		}
	}
}

func TestPredictOutcomeNoHistory(t *testing.T) {
	deps := testDeps(t, &fakeSource{}, &fakeStore{})
	a := NewMLBAnalyzer(deps)

	game := models.GameRecord{
		GameID:   "g1",
		HomeTeam: "New York Yankees",
		AwayTeam: "Boston Red Sox",
	}
	pred, err := a.PredictOutcome(context.Background(), game)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With no history both teams sit at league average and only the
	// home bump separates them.
	if pred.HomeWinProbability <= 0.5 {
		t.Fatalf("home side must be favored on neutral stats, got %v", pred.HomeWinProbability)
	}
	if math.Abs(pred.HomeWinProbability+pred.AwayWinProbability-1.0) > 1e-12 {
		t.Fatalf("probabilities must sum to 1")
	}
	if pred.ConfidenceScore != 0 {
		t.Fatalf("no-sample prediction must have zero confidence, got %v", pred.ConfidenceScore)
	}
	if pred.ModelVersion != "mlb_basic_v1.0" {
		t.Fatalf("unexpected model version %s", pred.ModelVersion)
	}
}

func TestPredictOutcomeFavorsStrongerTeam(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 10; i++ {
		store.games = append(store.games,
			completedGame("h"+string(rune('a'+i)), "Houston Astros", 8, "Chicago White Sox", 2))
	}
	deps := testDeps(t, &fakeSource{}, store)
	a := NewMLBAnalyzer(deps)

	game := models.GameRecord{
		GameID:   "g2",
		HomeTeam: "Houston Astros",
		AwayTeam: "Chicago White Sox",
	}
	pred, err := a.PredictOutcome(context.Background(), game)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.HomeWinProbability < 0.9 {
		t.Fatalf("dominant team must be heavily favored, got %v", pred.HomeWinProbability)
	}
	if pred.ConfidenceScore <= 0 || pred.ConfidenceScore > 0.95 {
		t.Fatalf("confidence out of range: %v", pred.ConfidenceScore)
	}
}

func TestFetchGamesPipeline(t *testing.T) {
	source := &fakeSource{
		events: []map[string]any{
			{
				"id":   "401",
				"date": "2025-04-10T19:05Z",
				"status": map[string]any{
					"type": map[string]any{"name": "STATUS_FINAL", "completed": true},
				},
				"competitions": []any{
					map[string]any{
						"competitors": []any{
							map[string]any{
								"homeAway": "home",
								"score":    "7",
								"team":     map[string]any{"displayName": "New York Yankees"},
							},
							map[string]any{
								"homeAway": "away",
								"score":    "4",
								"team":     map[string]any{"displayName": "Boston Red Sox"},
							},
						},
					},
				},
			},
		},
	}
	deps := testDeps(t, source, &fakeStore{})
	a := NewMLBAnalyzer(deps)

	games, err := a.FetchGames(context.Background(), time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].Winner != "New York Yankees" {
		t.Fatalf("unexpected winner %s", games[0].Winner)
	}
}

func TestExpectedValuePicksBetterSide(t *testing.T) {
	deps := testDeps(t, &fakeSource{}, &fakeStore{})
	a := NewMLBAnalyzer(deps)

	pred := models.Prediction{
		HomeWinProbability: 0.60,
		AwayWinProbability: 0.40,
	}
	ev := a.ExpectedValue(pred, -110, -110)
	if math.Abs(ev-14.5454545) > 1e-6 {
		t.Fatalf("unexpected EV %v", ev)
	}

	// Both sides negative EV collapses to zero.
	pred = models.Prediction{HomeWinProbability: 0.3, AwayWinProbability: 0.3}
	if ev := a.ExpectedValue(pred, -200, -200); ev != 0 {
		t.Fatalf("expected 0 for two bad sides, got %v", ev)
	}
}
