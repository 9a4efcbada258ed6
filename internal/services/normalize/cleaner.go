package normalize

import (
	"OddsPull/internal/domain/models"
	"OddsPull/pkg/logger"
)

// Cleaner validates and deduplicates normalized records before storage.
type Cleaner struct {
	logger *logger.Logger
}

func NewCleaner(log *logger.Logger) *Cleaner {
	return &Cleaner{logger: log}
}

// Clean drops records that are unusable downstream and collapses
// duplicate game IDs, keeping the first occurrence. The removal count
// is logged so silent data loss is visible in operations.
func (c *Cleaner) Clean(records []models.GameRecord) []models.GameRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.GameRecord, 0, len(records))
	var dropped, duplicates int

	for _, rec := range records {
		if !valid(&rec) {
			dropped++
			continue
		}
		if _, ok := seen[rec.GameID]; ok {
			duplicates++
			continue
		}
		seen[rec.GameID] = struct{}{}
		out = append(out, rec)
	}

	if removed := dropped + duplicates; removed > 0 {
		c.logger.Info("cleaned game records",
			logger.Int("input", len(records)),
			logger.Int("kept", len(out)),
			logger.Int("invalid", dropped),
			logger.Int("duplicates", duplicates))
	}
	return out
}

func valid(rec *models.GameRecord) bool {
	if rec.GameID == "" || rec.Date == "" {
		return false
	}
	if rec.HomeTeam == "" || rec.AwayTeam == "" {
		return false
	}
	if rec.HomeScore < 0 || rec.AwayScore < 0 {
		return false
	}
	return true
}
