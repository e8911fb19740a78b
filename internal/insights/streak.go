package insights

import (
	"sort"
	"time"
)

// graceRestDays is how many consecutive rest days a daily streak survives.
// One rest day between sessions keeps the streak alive, two kill it.
const graceRestDays = 1

type StreakSummary struct {
	CurrentDaily      int `json:"currentDaily"`
	LongestDaily      int `json:"longestDaily"`
	CurrentWeekly     int `json:"currentWeekly"`
	LongestWeekly     int `json:"longestWeekly"`
	TotalTrainingDays int `json:"totalTrainingDays"`
}

// Streaks crunches the raw session timestamps into the streak summary.
// Multiple sessions on the same day count as a single training day.
func Streaks(sessionTimes []time.Time, now time.Time) StreakSummary {
	days := uniqueDays(sessionTimes)
	if len(days) == 0 {
		return StreakSummary{}
	}

	summary := StreakSummary{
		TotalTrainingDays: len(days),
	}

	maxGap := graceRestDays + 1

	// longest daily streak: count of training days in a run where
	// consecutive days are at most maxGap apart
	streak := 1
	longest := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) <= maxGap {
			streak++
		} else {
			streak = 1
		}
		if streak > longest {
			longest = streak
		}
	}
	summary.LongestDaily = longest

	// current daily streak: walk back from the latest day; dead when the
	// latest session is too far behind now (today still being open, a gap
	// of maxGap days to now is forgiven)
	today := dayKey(now)
	if daysBetween(days[len(days)-1], today) <= maxGap {
		current := 1
		for i := len(days) - 1; i > 0; i-- {
			if daysBetween(days[i-1], days[i]) > maxGap {
				break
			}
			current++
		}
		summary.CurrentDaily = current
	}

	weeks := uniqueWeeks(days)

	streak = 1
	longest = 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i].Sub(weeks[i-1]) == 7*24*time.Hour {
			streak++
		} else {
			streak = 1
		}
		if streak > longest {
			longest = streak
		}
	}
	summary.LongestWeekly = longest

	// a current weekly streak requires a session this ISO week or the one before
	thisWeek := weekStart(today)
	lastTrainedWeek := weeks[len(weeks)-1]
	if thisWeek.Sub(lastTrainedWeek) <= 7*24*time.Hour {
		current := 1
		for i := len(weeks) - 1; i > 0; i-- {
			if weeks[i].Sub(weeks[i-1]) != 7*24*time.Hour {
				break
			}
			current++
		}
		summary.CurrentWeekly = current
	}

	return summary
}

func dayKey(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func uniqueDays(times []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		seen[dayKey(t)] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// weekStart returns the Monday (UTC midnight) of the ISO week of the given day.
func weekStart(day time.Time) time.Time {
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

func uniqueWeeks(days []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		seen[weekStart(d)] = struct{}{}
	}
	weeks := make([]time.Time, 0, len(seen))
	for w := range seen {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Before(weeks[j])
	})
	return weeks
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
