package events

import (
	"fmt"
	"time"
)

type Competition struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Division  string    `json:"division"`
	Placement int       `json:"placement"`
}

type Promotion struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Belt      string    `json:"belt"`
	Stripes   int       `json:"stripes"`
}

type Seminar struct {
	ID         int       `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Instructor string    `json:"instructor"`
	Topic      string    `json:"topic"`
}

type Injury struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
	Severity  int       `json:"severity"`
}

// Event (DB level type) is a milestone on the mats, such as:
//   - competition (with placement and division)
//   - promotion (belt and stripes)
//   - seminar attended (instructor, topic)
//   - injury (location, severity)
type Event struct {
	ID        int               `json:"id"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func NewCompetitionEvent(c Competition) Event {
	return Event{
		ID:        c.ID,
		Type:      EventTypeCompetition,
		Timestamp: c.Timestamp,
		Data: map[string]string{
			"name":      c.Name,
			"division":  c.Division,
			"placement": fmt.Sprintf("%d", c.Placement),
		},
	}
}

func NewPromotionEvent(p Promotion) Event {
	return Event{
		ID:        p.ID,
		Type:      EventTypePromotion,
		Timestamp: p.Timestamp,
		Data: map[string]string{
			"belt":    p.Belt,
			"stripes": fmt.Sprintf("%d", p.Stripes),
		},
	}
}

func NewSeminarEvent(s Seminar) Event {
	return Event{
		ID:        s.ID,
		Type:      EventTypeSeminar,
		Timestamp: s.Timestamp,
		Data: map[string]string{
			"instructor": s.Instructor,
			"topic":      s.Topic,
		},
	}
}

func NewInjuryEvent(i Injury) Event {
	return Event{
		ID:        i.ID,
		Type:      EventTypeInjury,
		Timestamp: i.Timestamp,
		Data: map[string]string{
			"location": i.Location,
			"severity": fmt.Sprintf("%d", i.Severity),
		},
	}
}

// EventType can be one of:
//   - competition
//   - promotion
//   - seminar
//   - injury
type EventType string

const (
	EventTypeCompetition EventType = "competition"
	EventTypePromotion   EventType = "promotion"
	EventTypeSeminar     EventType = "seminar"
	EventTypeInjury      EventType = "injury"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeCompetition,
		EventTypePromotion,
		EventTypeSeminar,
		EventTypeInjury:
		return true
	default:
		return false
	}
}
