package stats

import (
	"strconv"
	"strings"

	"OddsPull/internal/domain/models"
	"OddsPull/pkg/logger"
)

// Aggregator rolls completed game records up into per-team summaries.
type Aggregator struct {
	logger *logger.Logger
}

func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log}
}

// TeamStats summarizes a team's record over the supplied games. Games
// the team did not play in, and games still in progress, are ignored.
// home_team_result is stored from the home side's perspective, so an
// away team's win shows up as a home "Loss".
func (a *Aggregator) TeamStats(team string, sport string, games []models.GameRecord) models.TeamStatsSummary {
	summary := models.TeamStatsSummary{TeamName: team}

	var (
		shutouts    int
		blowoutWins int
		oneRunGames int
		homeWins    int
		awayWins    int
	)

	for _, g := range games {
		isHome := sameTeam(g.HomeTeam, team)
		isAway := sameTeam(g.AwayTeam, team)
		if !isHome && !isAway {
			continue
		}
		if !g.IsCompleted {
			continue
		}

		summary.TotalGames++

		var scored, allowed int
		var won bool
		if isHome {
			summary.HomeGames++
			scored, allowed = g.HomeScore, g.AwayScore
			won = g.HomeTeamResult == "Win"
		} else {
			summary.AwayGames++
			scored, allowed = g.AwayScore, g.HomeScore
			won = g.HomeTeamResult == "Loss"
		}

		summary.TotalPointsScored += scored
		summary.TotalPointsAllowed += allowed

		if won {
			summary.Wins++
			if isHome {
				homeWins++
			} else {
				awayWins++
			}
			if abs(g.ScoreDifferential) > 14 {
				blowoutWins++
			}
		} else if g.HomeTeamResult != "Tie" {
			summary.Losses++
		}

		if allowed == 0 && scored > 0 {
			shutouts++
		}
		if abs(g.ScoreDifferential) == 1 {
			oneRunGames++
		}
	}

	if summary.TotalGames == 0 {
		return summary
	}

	n := float64(summary.TotalGames)
	summary.WinPercentage = float64(summary.Wins) / n
	summary.AvgPointsScored = float64(summary.TotalPointsScored) / n
	summary.AvgPointsAllowed = float64(summary.TotalPointsAllowed) / n
	summary.PointDifferential = summary.TotalPointsScored - summary.TotalPointsAllowed

	summary.Extras = sportExtras(sport, shutouts, blowoutWins, oneRunGames, homeWins, awayWins,
		summary.HomeGames, summary.AwayGames)
	return summary
}

func sportExtras(sport string, shutouts, blowoutWins, oneRunGames, homeWins, awayWins, homeGames, awayGames int) map[string]any {
	extras := map[string]any{
		"home_record": record(homeWins, homeGames-homeWins),
		"away_record": record(awayWins, awayGames-awayWins),
	}
	switch sport {
	case "mlb":
		extras["shutouts"] = shutouts
		extras["one_run_games"] = oneRunGames
	case "nfl":
		extras["shutouts"] = shutouts
		extras["blowout_wins"] = blowoutWins
	case "nba":
		extras["blowout_wins"] = blowoutWins
	}
	return extras
}

func record(wins, losses int) string {
	if losses < 0 {
		losses = 0
	}
	return strconv.Itoa(wins) + "-" + strconv.Itoa(losses)
}

func sameTeam(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
