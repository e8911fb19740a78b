package whoop

import (
	"time"
)

// Recovery is the daily recovery snapshot pulled from the WHOOP API,
// flattened to the fields the insights care about.
type Recovery struct {
	ID               int       `json:"id"`
	Day              time.Time `json:"day"`
	Score            float64   `json:"score"` // 0-100
	HRVMillis        float64   `json:"hrvMillis"`
	RestingHR        int       `json:"restingHr"`
	SleepPerformance float64   `json:"sleepPerformance"` // 0-100
	DayStrain        float64   `json:"dayStrain"`
	SyncedAt         time.Time `json:"syncedAt"`
}
