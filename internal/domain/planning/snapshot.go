package planning

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Hours defines the grid's displayed time range. Course times are not
// enforced against it; a course outside displayed hours simply won't render.
type Hours struct {
	Opening string `json:"ouverture" validate:"required,datetime=15:04"`
	Closing string `json:"fermeture" validate:"required,datetime=15:04"`
}

// Snapshot is the full serializable schedule state: facility name, theme
// colors, operating hours and the four collections. It is the unit of
// persistence, export, import, undo and redo — individual entities are
// never the unit of history.
type Snapshot struct {
	SportsComplex string       `json:"sports_complex" validate:"required"`
	PrimaryColor  string       `json:"primary_color" validate:"required,hexcolor"`
	DarkColor     string       `json:"dark_color" validate:"required,hexcolor"`
	Hours         Hours        `json:"horaires"`
	Courts        []Court      `json:"terrains" validate:"dive"`
	Coaches       []Coach      `json:"coaches" validate:"dive"`
	CourseTypes   []CourseType `json:"types_cours" validate:"dive"`
	Planning      []Course     `json:"planning" validate:"dive"`
}

// Clone returns a deep copy. History entries and reads hand out clones so
// no caller can mutate the live state through a shared slice.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Courts = make([]Court, len(s.Courts))
	copy(out.Courts, s.Courts)
	out.Coaches = make([]Coach, len(s.Coaches))
	copy(out.Coaches, s.Coaches)
	out.CourseTypes = make([]CourseType, len(s.CourseTypes))
	copy(out.CourseTypes, s.CourseTypes)
	out.Planning = make([]Course, len(s.Planning))
	for i, c := range s.Planning {
		out.Planning[i] = c
		if c.CourtID != nil {
			v := *c.CourtID
			out.Planning[i].CourtID = &v
		}
		if c.CoachID != nil {
			v := *c.CoachID
			out.Planning[i].CoachID = &v
		}
		if c.CustomColor != nil {
			v := *c.CustomColor
			out.Planning[i].CustomColor = &v
		}
		if c.Capacity != nil {
			v := *c.Capacity
			out.Planning[i].Capacity = &v
		}
	}
	return out
}

// ExportFilename returns the download name for an exported snapshot:
// <facility-slug>-planning-<ISO date>.json
func (s Snapshot) ExportFilename(now time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(s.SportsComplex))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "planning"
		return fmt.Sprintf("%s-%s.json", slug, now.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s-planning-%s.json", slug, now.Format("2006-01-02"))
}

// defaultSnapshot is built once per process so repeated resets yield the
// identical snapshot, seeded ids included.
var defaultSnapshot = buildDefaultSnapshot()

// DefaultSnapshot returns a copy of the built-in example schedule used when
// the durable slot is absent or unreadable, and by reset.
func DefaultSnapshot() Snapshot {
	return defaultSnapshot.Clone()
}

func buildDefaultSnapshot() Snapshot {
	return Snapshot{
		SportsComplex: "Bourgo Arena",
		PrimaryColor:  "#82FF13",
		DarkColor:     "#000000",
		Hours:         Hours{Opening: "08:00", Closing: "22:00"},
		Courts: []Court{
			{ID: newID(), Name: "Court 1"},
			{ID: newID(), Name: "Court 2"},
			{ID: newID(), Name: "Terrain 1"},
		},
		Coaches: []Coach{
			{ID: newID(), Name: "Jean Dupont"},
			{ID: newID(), Name: "Marie Martin"},
			{ID: newID(), Name: "Pierre Durand"},
		},
		CourseTypes: []CourseType{
			{ID: newID(), Name: "Padel", Color: "#3b82f6", Description: "Cours de padel"},
			{ID: newID(), Name: "Boxe", Color: "#ef4444", Description: "Cours de boxe"},
			{ID: newID(), Name: "Basketball", Color: "#f59e0b", Description: "Cours de basketball"},
			{ID: newID(), Name: "Fitness", Color: "#10b981", Description: "Cours de fitness"},
		},
		Planning: []Course{},
	}
}

func newID() string {
	return uuid.New().String()
}
