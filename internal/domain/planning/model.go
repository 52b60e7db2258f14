package planning

import (
	"errors"
	"strings"
)

// Weekday indexes, Monday through Sunday.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Domain errors
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyCourseTypeID = errors.New("course type ID cannot be empty")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
)

// Court is a physical resource a course may occupy.
// The JSON field names follow the planning export format.
type Court struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"nom" validate:"required"`
}

// Coach is a staff resource a course may be assigned to.
type Coach struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"nom" validate:"required"`
}

// CourseType is a category with a default display color.
type CourseType struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"nom" validate:"required"`
	Color       string `json:"couleur" validate:"required,hexcolor"`
	Description string `json:"description,omitempty"`
}

// Course is a single scheduled session on the weekly grid.
//
// CourtID, CoachID and CustomColor are nullable references; they marshal
// as explicit null when unset, matching the export format. Weekday is a
// 0-based offset, Monday=0 through Sunday=6. Times are wall-clock "HH:MM"
// strings; a course never crosses midnight.
type Course struct {
	ID           string  `json:"id" validate:"required"`
	CourseTypeID string  `json:"type_cours_id" validate:"required"`
	Weekday      int     `json:"jour_semaine" validate:"min=0,max=6"`
	StartTime    string  `json:"heure_debut" validate:"required,datetime=15:04"`
	EndTime      string  `json:"heure_fin" validate:"required,datetime=15:04"`
	CourtID      *string `json:"terrain_id"`
	CoachID      *string `json:"coach_id"`
	CustomColor  *string `json:"couleur_custom"`
	Capacity     *int    `json:"capacite,omitempty"`
}

// Validate checks the invariants a course must satisfy before it is
// committed to the schedule. The engine trusts its caller once validated,
// so this runs at the edit boundary.
// PRE: Course struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.CourseTypeID) == "" {
		return ErrEmptyCourseTypeID
	}
	if c.Weekday < Monday || c.Weekday > Sunday {
		return ErrInvalidWeekday
	}
	start, err := MinutesOfDay(c.StartTime)
	if err != nil {
		return err
	}
	end, err := MinutesOfDay(c.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}

// DurationMinutes returns the session length in minutes.
// PRE: StartTime and EndTime are in HH:MM format
// POST: Returns end minus start in minutes, or error if times can't be parsed
func (c *Course) DurationMinutes() (int, error) {
	start, err := MinutesOfDay(c.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := MinutesOfDay(c.EndTime)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}
