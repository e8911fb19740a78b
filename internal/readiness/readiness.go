package readiness

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrCheckinNotFound = errors.New("checkin not found")

// Checkin is a single morning self-report. One per day.
// All the 1-5 scale fields are optional; a zero value means "not answered"
// and is skipped when computing the score.
type Checkin struct {
	ID           int       `json:"id"`
	Day          time.Time `json:"day"`
	SleepHours   float64   `json:"sleepHours,omitempty"`
	SleepQuality int       `json:"sleepQuality,omitempty"` // 1 (terrible) to 5 (great)
	Soreness     int       `json:"soreness,omitempty"`     // 1 (fresh) to 5 (wrecked)
	Stress       int       `json:"stress,omitempty"`       // 1 (calm) to 5 (fried)
	Energy       int       `json:"energy,omitempty"`       // 1 (empty) to 5 (full tank)
	Mood         int       `json:"mood,omitempty"`         // 1 (awful) to 5 (great)
	RestingHR    int       `json:"restingHr,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

func (c *Checkin) Validate() error {
	if c.Day.IsZero() {
		return errors.New("day must be set")
	}
	if c.SleepHours < 0 || c.SleepHours > 24 {
		return errors.New("sleep hours out of range")
	}
	for name, val := range map[string]int{
		"sleepQuality": c.SleepQuality,
		"soreness":     c.Soreness,
		"stress":       c.Stress,
		"energy":       c.Energy,
		"mood":         c.Mood,
	} {
		if val != 0 && (val < 1 || val > 5) {
			return fmt.Errorf("%s must be between 1 and 5", name)
		}
	}
	return nil
}

const fullSleepHours = 8.0

// Score flattens the check-in into a 0-100 readiness composite.
// Sleep counts double, soreness and stress pull the score down.
// Fields left unanswered do not participate, and a fully empty
// check-in scores 0.
func (c *Checkin) Score() float64 {
	var weightedSum, totalWeight float64

	addScaled := func(val int, inverted bool, weight float64) {
		if val == 0 {
			return
		}
		normalized := float64(val-1) / 4
		if inverted {
			normalized = float64(5-val) / 4
		}
		weightedSum += normalized * weight
		totalWeight += weight
	}

	if c.SleepHours > 0 {
		normalized := math.Min(c.SleepHours/fullSleepHours, 1)
		weightedSum += normalized * 2
		totalWeight += 2
	}
	addScaled(c.SleepQuality, false, 2)
	addScaled(c.Soreness, true, 1.5)
	addScaled(c.Stress, true, 1)
	addScaled(c.Energy, false, 1.5)
	addScaled(c.Mood, false, 1)

	if totalWeight == 0 {
		return 0
	}

	return math.Round(weightedSum/totalWeight*1000) / 10
}

// DayKey normalizes the check-in day to UTC midnight, the unique key in storage.
func DayKey(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
