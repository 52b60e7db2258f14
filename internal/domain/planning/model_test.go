package planning_test

import (
	"testing"

	"arenaboard/internal/domain/planning"
)

// TestCourse_Validate tests the committed-course invariants.
func TestCourse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		course  planning.Course
		wantErr bool
	}{
		{
			name:    "valid course",
			course:  planning.Course{ID: "1", CourseTypeID: "t1", Weekday: 2, StartTime: "18:00", EndTime: "19:00"},
			wantErr: false,
		},
		{
			name:    "empty course type",
			course:  planning.Course{ID: "2", CourseTypeID: "  ", Weekday: 0, StartTime: "09:00", EndTime: "10:00"},
			wantErr: true,
		},
		{
			name:    "weekday below range",
			course:  planning.Course{ID: "3", CourseTypeID: "t1", Weekday: -1, StartTime: "09:00", EndTime: "10:00"},
			wantErr: true,
		},
		{
			name:    "weekday above range",
			course:  planning.Course{ID: "4", CourseTypeID: "t1", Weekday: 7, StartTime: "09:00", EndTime: "10:00"},
			wantErr: true,
		},
		{
			name:    "start equals end",
			course:  planning.Course{ID: "5", CourseTypeID: "t1", Weekday: 1, StartTime: "09:00", EndTime: "09:00"},
			wantErr: true,
		},
		{
			name:    "start after end",
			course:  planning.Course{ID: "6", CourseTypeID: "t1", Weekday: 1, StartTime: "10:30", EndTime: "09:15"},
			wantErr: true,
		},
		{
			name:    "garbage start time",
			course:  planning.Course{ID: "7", CourseTypeID: "t1", Weekday: 1, StartTime: "morning", EndTime: "10:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.course.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Course.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCourse_DurationMinutes checks the duration arithmetic the move
// operation relies on.
func TestCourse_DurationMinutes(t *testing.T) {
	c := planning.Course{StartTime: "09:00", EndTime: "10:30"}
	got, err := c.DurationMinutes()
	if err != nil {
		t.Fatalf("DurationMinutes() error = %v", err)
	}
	if got != 90 {
		t.Errorf("DurationMinutes() = %d, want 90", got)
	}

	c = planning.Course{StartTime: "??", EndTime: "10:30"}
	if _, err := c.DurationMinutes(); err == nil {
		t.Error("DurationMinutes() on garbage start should error")
	}
}
