package normalize

import (
	"strings"
	"time"

	"OddsPull/internal/domain/models"
	"OddsPull/pkg/logger"
	"OddsPull/pkg/util"
)

// Normalizer turns raw scoreboard events into GameRecord rows.
// One instance serves all sports; lookup tables come from SportConfig.
type Normalizer struct {
	configs map[string]SportConfig
	logger  *logger.Logger
}

type NormalizerOption func(*Normalizer)

func WithSportConfigs(configs map[string]SportConfig) NormalizerOption {
	return func(n *Normalizer) {
		n.configs = configs
	}
}

func NewNormalizer(log *logger.Logger, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		configs: DefaultSportConfigs(),
		logger:  log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts one day's raw events for a sport into game records.
// Events missing a team are skipped and logged, never fatal. Records
// without a parsable event date inherit the processing day.
func (n *Normalizer) Normalize(sport string, events []map[string]any, day time.Time) []models.GameRecord {
	cfg := n.configs[sport]
	records := make([]models.GameRecord, 0, len(events))

	for _, event := range events {
		rec, ok := n.normalizeEvent(sport, cfg, event, day)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	n.logger.Debug("normalized scoreboard events",
		logger.String("sport", sport),
		logger.Int("events", len(events)),
		logger.Int("records", len(records)))
	return records
}

func (n *Normalizer) normalizeEvent(sport string, cfg SportConfig, event map[string]any, day time.Time) (models.GameRecord, bool) {
	rec := models.GameRecord{
		GameID: extractString(event, "id"),
		Sport:  sport,
	}

	if t, ok := util.ParseEventTime(extractString(event, "date")); ok {
		rec.Date = util.DayString(t)
	} else {
		rec.Date = util.DayString(day)
	}

	status := extractMap(event, "status")
	statusType := extractMap(status, "type")
	rec.Status = extractString(statusType, "name")
	rec.IsCompleted = extractBool(statusType, "completed")

	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		n.logger.Warn("event has no competitions, skipping",
			logger.String("sport", sport),
			logger.String("game_id", rec.GameID))
		return models.GameRecord{}, false
	}
	competition, _ := competitions[0].(map[string]any)

	for _, c := range extractArray(competition, "competitors") {
		competitor, _ := c.(map[string]any)
		if competitor == nil {
			continue
		}
		team := extractMap(competitor, "team")
		name := n.teamName(cfg, team)
		score, _ := extractInt(competitor, "score")

		switch extractString(competitor, "homeAway") {
		case "home":
			rec.HomeTeam = name
			rec.HomeScore = score
		case "away":
			rec.AwayTeam = name
			rec.AwayScore = score
		}
	}

	if rec.HomeTeam == "" || rec.AwayTeam == "" {
		n.logger.Warn("event missing a team, skipping",
			logger.String("sport", sport),
			logger.String("game_id", rec.GameID),
			logger.String("home", rec.HomeTeam),
			logger.String("away", rec.AwayTeam))
		return models.GameRecord{}, false
	}

	n.derive(cfg, &rec)
	return rec, true
}

// teamName resolves the participant's name through the sport's lookup
// table. The display name itself is mapped (some feeds put abbreviations
// there); unmapped names pass through unchanged, and the abbreviation
// field is the fallback when the display name is absent.
func (n *Normalizer) teamName(cfg SportConfig, team map[string]any) string {
	if name := strings.TrimSpace(extractString(team, "displayName")); name != "" {
		if mapped, ok := cfg.TeamNames[strings.ToUpper(name)]; ok {
			return mapped
		}
		return name
	}
	abbr := strings.TrimSpace(extractString(team, "abbreviation"))
	if abbr == "" {
		return ""
	}
	if mapped, ok := cfg.TeamNames[strings.ToUpper(abbr)]; ok {
		return mapped
	}
	return abbr
}
