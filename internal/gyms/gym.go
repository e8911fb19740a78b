package gyms

import (
	"errors"
	"time"
)

var (
	ErrGymNotFound = errors.New("gym not found")
	ErrGymExists   = errors.New("gym already exists")
	// ErrGymInUse is returned when deleting a gym still referenced by sessions.
	ErrGymInUse = errors.New("gym has sessions attached")
)

type Gym struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Country     string    `json:"country,omitempty"`
	Affiliation string    `json:"affiliation,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (g *Gym) Validate() error {
	if g.Name == "" {
		return errors.New("name must be set")
	}
	if g.City == "" {
		return errors.New("city must be set")
	}
	return nil
}
