package normalize

import (
	"testing"

	"OddsPull/internal/domain/models"
)

func record(id, home, away string, homeScore, awayScore int) models.GameRecord {
	return models.GameRecord{
		GameID:    id,
		Sport:     "mlb",
		Date:      "2025-04-10",
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

func TestCleanDeduplicatesFirstWins(t *testing.T) {
	c := NewCleaner(testLogger(t))

	first := record("401", "New York Yankees", "Boston Red Sox", 7, 4)
	second := record("401", "New York Yankees", "Boston Red Sox", 9, 9)

	out := c.Clean([]models.GameRecord{first, second})
	if len(out) != 1 {
		t.Fatalf("expected 1 record after dedup, got %d", len(out))
	}
	if out[0].HomeScore != 7 {
		t.Fatalf("dedup must keep the first occurrence, got score %d", out[0].HomeScore)
	}
}

func TestCleanDropsInvalid(t *testing.T) {
	c := NewCleaner(testLogger(t))

	valid := record("402", "Chicago Cubs", "Atlanta Braves", 3, 2)
	noID := record("", "Chicago Cubs", "Atlanta Braves", 3, 2)
	noTeam := record("403", "", "Atlanta Braves", 3, 2)
	negScore := record("404", "Chicago Cubs", "Atlanta Braves", -1, 2)
	noDate := record("405", "Chicago Cubs", "Atlanta Braves", 3, 2)
	noDate.Date = ""

	out := c.Clean([]models.GameRecord{valid, noID, noTeam, negScore, noDate})
	if len(out) != 1 {
		t.Fatalf("expected only the valid record, got %d", len(out))
	}
	if out[0].GameID != "402" {
		t.Fatalf("unexpected survivor %s", out[0].GameID)
	}
}

func TestCleanPreservesOrder(t *testing.T) {
	c := NewCleaner(testLogger(t))

	out := c.Clean([]models.GameRecord{
		record("1", "A Team", "B Team", 1, 0),
		record("2", "C Team", "D Team", 2, 0),
		record("3", "E Team", "F Team", 3, 0),
	})
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	for i, want := range []string{"1", "2", "3"} {
		if out[i].GameID != want {
			t.Fatalf("order not preserved at %d: got %s", i, out[i].GameID)
		}
	}
}
