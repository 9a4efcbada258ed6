package normalize

import "OddsPull/internal/domain/models"

// Derived columns are computed once at normalization time so every
// downstream consumer reads the same values.

func (n *Normalizer) derive(cfg SportConfig, rec *models.GameRecord) {
	rec.TotalScore = rec.HomeScore + rec.AwayScore
	// signed, home perspective: negative means the away team outscored
	rec.ScoreDifferential = rec.HomeScore - rec.AwayScore

	if rec.IsCompleted {
		switch {
		case rec.HomeScore > rec.AwayScore:
			rec.Winner = rec.HomeTeam
			rec.HomeTeamResult = "Win"
		case rec.AwayScore > rec.HomeScore:
			rec.Winner = rec.AwayTeam
			rec.HomeTeamResult = "Loss"
		default:
			rec.Winner = "Tie"
			rec.HomeTeamResult = "Tie"
		}
	}

	rec.Flags = sportFlags(cfg.Thresholds, rec)
}

// sportFlags evaluates the sport's scoring-profile flags. Zero-valued
// thresholds leave the corresponding flag out entirely.
func sportFlags(th Thresholds, rec *models.GameRecord) map[string]bool {
	flags := make(map[string]bool, 4)
	if th.HighScoring > 0 {
		flags["is_high_scoring"] = rec.TotalScore > th.HighScoring
	}
	if th.LowScoring > 0 {
		flags["is_low_scoring"] = rec.TotalScore < th.LowScoring
	}
	if th.BlowoutMargin > 0 {
		flags["is_blowout"] = abs(rec.ScoreDifferential) > th.BlowoutMargin
	}
	if th.CloseMargin > 0 {
		flags["is_close_game"] = abs(rec.ScoreDifferential) <= th.CloseMargin
	}
	if len(flags) == 0 {
		return nil
	}
	return flags
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
