package insights

import (
	"time"

	"github.com/rolltrack/rolltrack/internal/insights/stats"
	"github.com/rolltrack/rolltrack/internal/training"
)

type RiskZone string

const (
	RiskInsufficientData RiskZone = "insufficient_data"
	RiskUndertraining    RiskZone = "undertraining"
	RiskOptimal          RiskZone = "optimal"
	RiskCaution          RiskZone = "caution"
	RiskHighRisk         RiskZone = "high_risk"
)

const (
	acuteWindowDays   = 7
	chronicWindowDays = 28

	// minTrainingDays is the least number of training days in the chronic
	// window for the acute:chronic ratio to mean anything
	minTrainingDays = 4

	// ewmaAlpha weights the smoothed daily load toward the recent days
	ewmaAlpha = 0.25
)

type LoadSummary struct {
	AcuteDailyLoad   float64  `json:"acuteDailyLoad"`
	ChronicDailyLoad float64  `json:"chronicDailyLoad"`
	// SmoothedDailyLoad is the EWMA of the daily loads over the chronic
	// window, a less jumpy "where the load is heading" number
	SmoothedDailyLoad float64  `json:"smoothedDailyLoad"`
	ACWR              float64  `json:"acwr"`
	Risk              RiskZone `json:"risk"`
	Monotony          float64  `json:"monotony"`
	WeeklyStrain      float64  `json:"weeklyStrain"`
}

// LoadAnalysis computes the acute:chronic workload ratio and friends from the
// sessions in the last 28 days. Acute is the mean daily sRPE load of the last
// 7 days, chronic the mean over 28. Days without training count as zero load.
func LoadAnalysis(sessions []training.Session, now time.Time) LoadSummary {
	today := dayKey(now)
	chronicStart := today.AddDate(0, 0, -(chronicWindowDays - 1))
	acuteStart := today.AddDate(0, 0, -(acuteWindowDays - 1))

	loadPerDay := make(map[time.Time]float64)
	trainingDays := 0
	for _, s := range sessions {
		d := dayKey(s.HappenedAt)
		if d.Before(chronicStart) || d.After(today) {
			continue
		}
		if _, ok := loadPerDay[d]; !ok {
			trainingDays++
		}
		loadPerDay[d] += s.Load()
	}

	acuteLoads := make([]float64, 0, acuteWindowDays)
	chronicLoads := make([]float64, 0, chronicWindowDays)
	var acuteSum, chronicSum float64
	for d := chronicStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		load := loadPerDay[d]
		chronicSum += load
		chronicLoads = append(chronicLoads, load)
		if !d.Before(acuteStart) {
			acuteSum += load
			acuteLoads = append(acuteLoads, load)
		}
	}

	summary := LoadSummary{
		AcuteDailyLoad:   acuteSum / acuteWindowDays,
		ChronicDailyLoad: chronicSum / chronicWindowDays,
	}

	if smoothed := stats.EWMA(chronicLoads, ewmaAlpha); len(smoothed) > 0 {
		summary.SmoothedDailyLoad = smoothed[len(smoothed)-1]
	}

	if stdDev := stats.StdDev(acuteLoads); stdDev > 0 {
		summary.Monotony = stats.Mean(acuteLoads) / stdDev
	}
	summary.WeeklyStrain = acuteSum * summary.Monotony

	if summary.ChronicDailyLoad == 0 || trainingDays < minTrainingDays {
		summary.ACWR = 0
		summary.Risk = RiskInsufficientData
		return summary
	}

	summary.ACWR = summary.AcuteDailyLoad / summary.ChronicDailyLoad
	switch {
	case summary.ACWR < 0.8:
		summary.Risk = RiskUndertraining
	case summary.ACWR <= 1.3:
		summary.Risk = RiskOptimal
	case summary.ACWR <= 1.5:
		summary.Risk = RiskCaution
	default:
		summary.Risk = RiskHighRisk
	}

	return summary
}
