package insights

import (
	"time"

	"github.com/rolltrack/rolltrack/internal/insights/stats"
	"github.com/rolltrack/rolltrack/internal/readiness"
	"github.com/rolltrack/rolltrack/internal/training"
	"github.com/rolltrack/rolltrack/internal/whoop"
)

// CorrelationResult carries the Pearson coefficient together with the number
// of day pairs it was computed from. Fewer than 3 pairs yields coefficient 0.
type CorrelationResult struct {
	Coefficient float64 `json:"coefficient"`
	SampleSize  int     `json:"sampleSize"`
}

type Correlations struct {
	RecoveryVsPerformance CorrelationResult `json:"recoveryVsPerformance"`
	EnergyVsIntensity     CorrelationResult `json:"energyVsIntensity"`
	SleepVsNextDayPerf    CorrelationResult `json:"sleepVsNextDayPerformance"`
}

// RecoveryVsPerformance correlates the morning whoop recovery score with the
// submission ratio of that day's sparring. Days without sparring exchanges
// (no submissions either way) are left out.
func RecoveryVsPerformance(sessions []training.Session, recoveries []whoop.Recovery) CorrelationResult {
	perfByDay := performanceByDay(sessions)

	recoveryByDay := make(map[time.Time]float64, len(recoveries))
	for _, r := range recoveries {
		recoveryByDay[dayKey(r.Day)] = r.Score
	}

	var xs, ys []float64
	for day, perf := range perfByDay {
		recovery, ok := recoveryByDay[day]
		if !ok {
			continue
		}
		xs = append(xs, recovery)
		ys = append(ys, perf)
	}

	return CorrelationResult{
		Coefficient: stats.PearsonCorrelation(xs, ys),
		SampleSize:  len(xs),
	}
}

// EnergyVsIntensity correlates the check-in energy with the mean session
// intensity of the same day.
func EnergyVsIntensity(checkins []readiness.Checkin, sessions []training.Session) CorrelationResult {
	intensityByDay := make(map[time.Time][]float64)
	for _, s := range sessions {
		d := dayKey(s.HappenedAt)
		intensityByDay[d] = append(intensityByDay[d], float64(s.Intensity))
	}

	var xs, ys []float64
	for _, c := range checkins {
		if c.Energy == 0 {
			continue
		}
		intensities, ok := intensityByDay[dayKey(c.Day)]
		if !ok {
			continue
		}
		xs = append(xs, float64(c.Energy))
		ys = append(ys, stats.Mean(intensities))
	}

	return CorrelationResult{
		Coefficient: stats.PearsonCorrelation(xs, ys),
		SampleSize:  len(xs),
	}
}

// SleepVsNextDayPerformance correlates the reported sleep hours with the
// submission ratio of the FOLLOWING day.
func SleepVsNextDayPerformance(checkins []readiness.Checkin, sessions []training.Session) CorrelationResult {
	perfByDay := performanceByDay(sessions)

	var xs, ys []float64
	for _, c := range checkins {
		if c.SleepHours <= 0 {
			continue
		}
		nextDay := dayKey(c.Day).AddDate(0, 0, 1)
		perf, ok := perfByDay[nextDay]
		if !ok {
			continue
		}
		xs = append(xs, c.SleepHours)
		ys = append(ys, perf)
	}

	return CorrelationResult{
		Coefficient: stats.PearsonCorrelation(xs, ys),
		SampleSize:  len(xs),
	}
}

type DiversityResult struct {
	NormalizedEntropy  float64 `json:"normalizedEntropy"`
	DistinctTechniques int     `json:"distinctTechniques"`
	TotalDrills        int     `json:"totalDrills"`
}

// TechniqueDiversity measures how spread the drilling has been across
// techniques, as normalized Shannon entropy: 0 means hammering a single
// technique, 1 a perfectly even spread.
func TechniqueDiversity(sessions []training.Session) DiversityResult {
	countPerTechnique := make(map[string]int)
	total := 0
	for _, s := range sessions {
		for _, technique := range s.TechniquesDrilled {
			countPerTechnique[technique]++
			total++
		}
	}

	counts := make([]int, 0, len(countPerTechnique))
	for _, c := range countPerTechnique {
		counts = append(counts, c)
	}

	return DiversityResult{
		NormalizedEntropy:  stats.NormalizedEntropy(counts),
		DistinctTechniques: len(countPerTechnique),
		TotalDrills:        total,
	}
}

// WeeklyHoursTrend fits a line through the weekly mat hours and returns its
// slope, in hours per week. Positive means the volume is growing.
func WeeklyHoursTrend(sessions []training.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}

	hoursPerWeek := make(map[time.Time]float64)
	for _, s := range sessions {
		w := weekStart(dayKey(s.HappenedAt))
		hoursPerWeek[w] += float64(s.DurationMinutes) / 60
	}

	weeks := make([]time.Time, 0, len(hoursPerWeek))
	for w := range hoursPerWeek {
		weeks = append(weeks, w)
	}
	if len(weeks) < 2 {
		return 0
	}

	first, last := weeks[0], weeks[0]
	for _, w := range weeks {
		if w.Before(first) {
			first = w
		}
		if w.After(last) {
			last = w
		}
	}

	// weeks without any training count as zero hours
	var series []float64
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		series = append(series, hoursPerWeek[w])
	}

	return stats.LinearRegressionSlope(series)
}

func performanceByDay(sessions []training.Session) map[time.Time]float64 {
	subsForByDay := make(map[time.Time]int)
	subsAgainstByDay := make(map[time.Time]int)
	for _, s := range sessions {
		d := dayKey(s.HappenedAt)
		subsForByDay[d] += s.SubmissionsFor
		subsAgainstByDay[d] += s.SubmissionsAgainst
	}

	perfByDay := make(map[time.Time]float64)
	for d, subsFor := range subsForByDay {
		total := subsFor + subsAgainstByDay[d]
		if total == 0 {
			continue
		}
		perfByDay[d] = float64(subsFor) / float64(total)
	}

	return perfByDay
}
