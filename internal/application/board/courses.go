package board

import (
	"context"

	"arenaboard/internal/domain/planning"
)

// CourseDraft carries the fields of a course to create; the engine assigns
// the id.
type CourseDraft struct {
	CourseTypeID string
	Weekday      int
	StartTime    string
	EndTime      string
	CourtID      *string
	CoachID      *string
	CustomColor  *string
	Capacity     *int
}

// CoursePatch is a partial update. Nil pointer fields are left untouched;
// the Clear flags null out the corresponding optional reference, which a
// plain nil pointer cannot express.
type CoursePatch struct {
	CourseTypeID *string
	Weekday      *int
	StartTime    *string
	EndTime      *string
	CourtID      *string
	ClearCourt   bool
	CoachID      *string
	ClearCoach   bool
	CustomColor  *string
	ClearColor   bool
	Capacity     *int
}

// AddCourse appends a new course with a fresh id.
// PRE: draft has been validated at the edit boundary (start < end)
// POST: Course is in the planning, history recorded, state persisted
func (b *Board) AddCourse(ctx context.Context, draft CourseDraft) planning.Course {
	b.mu.Lock()
	defer b.mu.Unlock()

	course := planning.Course{
		ID:           newID(),
		CourseTypeID: draft.CourseTypeID,
		Weekday:      draft.Weekday,
		StartTime:    draft.StartTime,
		EndTime:      draft.EndTime,
		CourtID:      draft.CourtID,
		CoachID:      draft.CoachID,
		CustomColor:  draft.CustomColor,
		Capacity:     draft.Capacity,
	}
	b.state.Planning = append(b.state.Planning, course)
	b.commit(ctx)
	b.log.Debug().Str("course_id", course.ID).Msg("course added")
	return course
}

// UpdateCourse merges the patch into the course with the given id. An
// unknown id matches nothing and changes nothing.
// POST: Returns the updated course and whether the id was found
func (b *Board) UpdateCourse(ctx context.Context, id string, patch CoursePatch) (planning.Course, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var updated planning.Course
	found := false
	for i := range b.state.Planning {
		if b.state.Planning[i].ID != id {
			continue
		}
		c := &b.state.Planning[i]
		if patch.CourseTypeID != nil {
			c.CourseTypeID = *patch.CourseTypeID
		}
		if patch.Weekday != nil {
			c.Weekday = *patch.Weekday
		}
		if patch.StartTime != nil {
			c.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			c.EndTime = *patch.EndTime
		}
		if patch.ClearCourt {
			c.CourtID = nil
		} else if patch.CourtID != nil {
			c.CourtID = patch.CourtID
		}
		if patch.ClearCoach {
			c.CoachID = nil
		} else if patch.CoachID != nil {
			c.CoachID = patch.CoachID
		}
		if patch.ClearColor {
			c.CustomColor = nil
		} else if patch.CustomColor != nil {
			c.CustomColor = patch.CustomColor
		}
		if patch.Capacity != nil {
			c.Capacity = patch.Capacity
		}
		updated = *c
		found = true
		break
	}
	b.commit(ctx)
	return updated, found
}

// DeleteCourse removes the course with the given id. An unknown id matches
// nothing and changes nothing.
func (b *Board) DeleteCourse(ctx context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	kept := b.state.Planning[:0]
	for _, c := range b.state.Planning {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	b.state.Planning = kept
	b.commit(ctx)
	return found
}

// MoveCourse relocates a course to a new weekday and start time, preserving
// its duration: new end = new start + (old end - old start), formatted back
// to HH:MM with minute-of-day wraparound.
//
// An unknown id returns without mutating and without recording history, so
// undo history is not inflated with null entries.
// POST: Returns the moved course and whether the id was found
func (b *Board) MoveCourse(ctx context.Context, id string, weekday int, startTime string) (planning.Course, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i := range b.state.Planning {
		if b.state.Planning[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return planning.Course{}, false
	}

	c := &b.state.Planning[idx]
	duration, err := c.DurationMinutes()
	if err != nil {
		// Committed courses have validated times; an unparseable one is
		// left untouched rather than moved to garbage.
		b.log.Warn().Str("course_id", id).Err(err).Msg("move skipped")
		return planning.Course{}, false
	}
	newStart, err := planning.MinutesOfDay(startTime)
	if err != nil {
		b.log.Warn().Str("course_id", id).Err(err).Msg("move skipped")
		return planning.Course{}, false
	}

	c.Weekday = weekday
	c.StartTime = startTime
	c.EndTime = planning.FormatMinutesOfDay(newStart + duration)
	moved := *c
	b.commit(ctx)
	b.log.Debug().Str("course_id", id).Int("weekday", weekday).Str("start", startTime).Msg("course moved")
	return moved, true
}
