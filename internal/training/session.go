package training

import (
	"errors"
	"fmt"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// ClassType can be one of:
//   - gi
//   - nogi
//   - open_mat
//   - drilling
//   - comp_class
//   - private
//   - strength
type ClassType string

const (
	ClassTypeGi        ClassType = "gi"
	ClassTypeNoGi      ClassType = "nogi"
	ClassTypeOpenMat   ClassType = "open_mat"
	ClassTypeDrilling  ClassType = "drilling"
	ClassTypeCompClass ClassType = "comp_class"
	ClassTypePrivate   ClassType = "private"
	ClassTypeStrength  ClassType = "strength"
)

func (ct ClassType) String() string {
	return string(ct)
}

func (ct ClassType) IsValid() bool {
	switch ct {
	case ClassTypeGi,
		ClassTypeNoGi,
		ClassTypeOpenMat,
		ClassTypeDrilling,
		ClassTypeCompClass,
		ClassTypePrivate,
		ClassTypeStrength:
		return true
	default:
		return false
	}
}

// Session is a single training session (a class, an open mat, a private, ...)
type Session struct {
	ID                 int               `json:"id"`
	GymID              *int              `json:"gymId,omitempty"`
	Type               ClassType         `json:"type"`
	DurationMinutes    int               `json:"durationMinutes"`
	Intensity          int               `json:"intensity"` // RPE, 1 to 10
	RoundsSparred      int               `json:"roundsSparred"`
	SubmissionsFor     int               `json:"submissionsFor"`
	SubmissionsAgainst int               `json:"submissionsAgainst"`
	TechniquesDrilled  []string          `json:"techniquesDrilled"`
	InjuryNote         string            `json:"injuryNote,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	HappenedAt         time.Time         `json:"happenedAt"`
}

func (s *Session) Validate() error {
	if !s.Type.IsValid() {
		return fmt.Errorf("invalid class type: %s", s.Type)
	}
	if s.DurationMinutes <= 0 {
		return errors.New("duration must be greater than 0")
	}
	if s.Intensity < 1 || s.Intensity > 10 {
		return errors.New("intensity must be between 1 and 10")
	}
	return nil
}

// Load is the session training load (sRPE): duration in minutes times the RPE
func (s *Session) Load() float64 {
	return float64(s.DurationMinutes * s.Intensity)
}

// SessionParams is used to filter sessions when listing
type SessionParams struct {
	Type               ClassType
	GymID              *int
	From               *time.Time
	To                 *time.Time
	ExcludeTestingData bool
}

type ListParams struct {
	SessionParams
	Page int
	Size int
}
