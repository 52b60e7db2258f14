package planning

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator instances cache struct metadata.
var validate = validator.New()

// ErrDanglingReference indicates a course points at an entity the snapshot
// does not contain.
var ErrDanglingReference = errors.New("dangling reference")

// ValidateImport checks a snapshot supplied by an import file before it
// replaces the live state: structural validation of fields, then a
// referential pass over course references. The engine itself stays
// permissive; this runs only at the import boundary.
// PRE: s was decoded from syntactically valid JSON
// POST: Returns nil if the snapshot is safe to load, error otherwise
func ValidateImport(s Snapshot) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid planning data: %w", err)
	}

	courts := make(map[string]bool, len(s.Courts))
	for _, c := range s.Courts {
		courts[c.ID] = true
	}
	coaches := make(map[string]bool, len(s.Coaches))
	for _, c := range s.Coaches {
		coaches[c.ID] = true
	}
	types := make(map[string]bool, len(s.CourseTypes))
	for _, t := range s.CourseTypes {
		types[t.ID] = true
	}

	for _, c := range s.Planning {
		if !types[c.CourseTypeID] {
			return fmt.Errorf("%w: course %s references unknown course type %s", ErrDanglingReference, c.ID, c.CourseTypeID)
		}
		if c.CourtID != nil && !courts[*c.CourtID] {
			return fmt.Errorf("%w: course %s references unknown court %s", ErrDanglingReference, c.ID, *c.CourtID)
		}
		if c.CoachID != nil && !coaches[*c.CoachID] {
			return fmt.Errorf("%w: course %s references unknown coach %s", ErrDanglingReference, c.ID, *c.CoachID)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("course %s: %w", c.ID, err)
		}
	}
	return nil
}
