package board

import (
	"context"

	"arenaboard/internal/domain/planning"
)

// CourseTypePatch is a partial update for a course type.
type CourseTypePatch struct {
	Name        *string
	Color       *string
	Description *string
}

// AddCourt appends a new court with a fresh id.
func (b *Board) AddCourt(ctx context.Context, name string) planning.Court {
	b.mu.Lock()
	defer b.mu.Unlock()

	court := planning.Court{ID: newID(), Name: name}
	b.state.Courts = append(b.state.Courts, court)
	b.commit(ctx)
	return court
}

// UpdateCourt renames the court with the given id.
func (b *Board) UpdateCourt(ctx context.Context, id, name string) (planning.Court, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var updated planning.Court
	found := false
	for i := range b.state.Courts {
		if b.state.Courts[i].ID == id {
			b.state.Courts[i].Name = name
			updated = b.state.Courts[i]
			found = true
			break
		}
	}
	b.commit(ctx)
	return updated, found
}

// DeleteCourt removes a court and nulls the reference on every course that
// pointed to it. A course without a court is still valid.
func (b *Board) DeleteCourt(ctx context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	kept := b.state.Courts[:0]
	for _, c := range b.state.Courts {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	b.state.Courts = kept
	for i := range b.state.Planning {
		if b.state.Planning[i].CourtID != nil && *b.state.Planning[i].CourtID == id {
			b.state.Planning[i].CourtID = nil
		}
	}
	b.commit(ctx)
	return found
}

// AddCoach appends a new coach with a fresh id.
func (b *Board) AddCoach(ctx context.Context, name string) planning.Coach {
	b.mu.Lock()
	defer b.mu.Unlock()

	coach := planning.Coach{ID: newID(), Name: name}
	b.state.Coaches = append(b.state.Coaches, coach)
	b.commit(ctx)
	return coach
}

// UpdateCoach renames the coach with the given id.
func (b *Board) UpdateCoach(ctx context.Context, id, name string) (planning.Coach, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var updated planning.Coach
	found := false
	for i := range b.state.Coaches {
		if b.state.Coaches[i].ID == id {
			b.state.Coaches[i].Name = name
			updated = b.state.Coaches[i]
			found = true
			break
		}
	}
	b.commit(ctx)
	return updated, found
}

// DeleteCoach removes a coach and nulls the reference on every course that
// pointed to it.
func (b *Board) DeleteCoach(ctx context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	kept := b.state.Coaches[:0]
	for _, c := range b.state.Coaches {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	b.state.Coaches = kept
	for i := range b.state.Planning {
		if b.state.Planning[i].CoachID != nil && *b.state.Planning[i].CoachID == id {
			b.state.Planning[i].CoachID = nil
		}
	}
	b.commit(ctx)
	return found
}

// AddCourseType appends a new course type with a fresh id.
func (b *Board) AddCourseType(ctx context.Context, name, color, description string) planning.CourseType {
	b.mu.Lock()
	defer b.mu.Unlock()

	ct := planning.CourseType{ID: newID(), Name: name, Color: color, Description: description}
	b.state.CourseTypes = append(b.state.CourseTypes, ct)
	b.commit(ctx)
	return ct
}

// UpdateCourseType merges the patch into the course type with the given id.
func (b *Board) UpdateCourseType(ctx context.Context, id string, patch CourseTypePatch) (planning.CourseType, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var updated planning.CourseType
	found := false
	for i := range b.state.CourseTypes {
		if b.state.CourseTypes[i].ID != id {
			continue
		}
		t := &b.state.CourseTypes[i]
		if patch.Name != nil {
			t.Name = *patch.Name
		}
		if patch.Color != nil {
			t.Color = *patch.Color
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		updated = *t
		found = true
		break
	}
	b.commit(ctx)
	return updated, found
}

// DeleteCourseType removes a course type and every course that referenced
// it. The cascade is a delete, not a nulling: a course without a type is
// meaningless, while a course without a court or coach is valid.
func (b *Board) DeleteCourseType(ctx context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	keptTypes := b.state.CourseTypes[:0]
	for _, t := range b.state.CourseTypes {
		if t.ID == id {
			found = true
			continue
		}
		keptTypes = append(keptTypes, t)
	}
	b.state.CourseTypes = keptTypes

	keptCourses := b.state.Planning[:0]
	for _, c := range b.state.Planning {
		if c.CourseTypeID == id {
			continue
		}
		keptCourses = append(keptCourses, c)
	}
	b.state.Planning = keptCourses
	b.commit(ctx)
	return found
}
