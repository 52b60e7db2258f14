package planning_test

import (
	"errors"
	"testing"

	"arenaboard/internal/domain/planning"
)

func validSnapshot() planning.Snapshot {
	court := "court-1"
	return planning.Snapshot{
		SportsComplex: "Test Arena",
		PrimaryColor:  "#82FF13",
		DarkColor:     "#000000",
		Hours:         planning.Hours{Opening: "08:00", Closing: "22:00"},
		Courts:        []planning.Court{{ID: "court-1", Name: "Court 1"}},
		Coaches:       []planning.Coach{{ID: "coach-1", Name: "Jean Dupont"}},
		CourseTypes:   []planning.CourseType{{ID: "type-1", Name: "Padel", Color: "#3b82f6"}},
		Planning: []planning.Course{{
			ID:           "c1",
			CourseTypeID: "type-1",
			Weekday:      2,
			StartTime:    "18:00",
			EndTime:      "19:00",
			CourtID:      &court,
		}},
	}
}

// TestValidateImport covers the structural and referential checks at the
// import boundary.
func TestValidateImport(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*planning.Snapshot)
		wantErr bool
	}{
		{"valid snapshot", func(s *planning.Snapshot) {}, false},
		{"default snapshot", nil, false},
		{"missing facility name", func(s *planning.Snapshot) { s.SportsComplex = "" }, true},
		{"bad primary color", func(s *planning.Snapshot) { s.PrimaryColor = "green" }, true},
		{"bad opening time", func(s *planning.Snapshot) { s.Hours.Opening = "8am" }, true},
		{"court without id", func(s *planning.Snapshot) { s.Courts[0].ID = "" }, true},
		{"course with unknown type", func(s *planning.Snapshot) { s.Planning[0].CourseTypeID = "ghost" }, true},
		{"course with unknown court", func(s *planning.Snapshot) { ghost := "ghost"; s.Planning[0].CourtID = &ghost }, true},
		{"course with unknown coach", func(s *planning.Snapshot) { ghost := "ghost"; s.Planning[0].CoachID = &ghost }, true},
		{"course start after end", func(s *planning.Snapshot) { s.Planning[0].StartTime = "20:00" }, true},
		{"null optional references", func(s *planning.Snapshot) { s.Planning[0].CourtID = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snap planning.Snapshot
			if tt.mutate == nil {
				snap = planning.DefaultSnapshot()
			} else {
				snap = validSnapshot()
				tt.mutate(&snap)
			}
			err := planning.ValidateImport(snap)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImport() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateImport_DanglingSentinel verifies referential failures wrap
// the sentinel error so callers can classify them.
func TestValidateImport_DanglingSentinel(t *testing.T) {
	snap := validSnapshot()
	snap.Planning[0].CourseTypeID = "ghost"
	err := planning.ValidateImport(snap)
	if !errors.Is(err, planning.ErrDanglingReference) {
		t.Errorf("error = %v, want ErrDanglingReference", err)
	}
}
