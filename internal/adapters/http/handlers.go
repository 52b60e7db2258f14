package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"arenaboard/internal/application/board"
	"arenaboard/internal/domain/planning"
)

var (
	errInvalidCSRFKey = errors.New("CSRF key must be 64 hex characters (32 bytes)")
	errMissingCSRFKey = errors.New("CSRF key is required in production")
)

// timeNow is a variable for testability.
var timeNow = time.Now

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": msg})
}

// handleGetPlanning handles GET /api/planning — the read path for both the
// admin grid and the display view.
func (a *api) handleGetPlanning(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.board.Snapshot())
}

// handleGetHistory handles GET /api/history. The predicates are used to
// disable undo/redo controls, not to guard against invalid calls.
func (a *api) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"can_undo": a.board.CanUndo(),
		"can_redo": a.board.CanRedo(),
	})
}

// handleUndo handles POST /api/undo. Undo at the earliest entry is a safe
// no-op, never an error.
func (a *api) handleUndo(w http.ResponseWriter, r *http.Request) {
	applied := a.board.Undo(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{
		"applied":  applied,
		"can_undo": a.board.CanUndo(),
		"can_redo": a.board.CanRedo(),
	})
}

// handleRedo handles POST /api/redo.
func (a *api) handleRedo(w http.ResponseWriter, r *http.Request) {
	applied := a.board.Redo(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{
		"applied":  applied,
		"can_undo": a.board.CanUndo(),
		"can_redo": a.board.CanRedo(),
	})
}

// handleReset handles POST /api/reset. The blocking confirmation dialog
// lives in the UI; the endpoint itself resets unconditionally.
func (a *api) handleReset(w http.ResponseWriter, r *http.Request) {
	a.board.Reset(r.Context())
	writeJSON(w, http.StatusOK, a.board.Snapshot())
}

// courseDraftRequest is the create payload for a course.
type courseDraftRequest struct {
	CourseTypeID string  `json:"type_cours_id"`
	Weekday      int     `json:"jour_semaine"`
	StartTime    string  `json:"heure_debut"`
	EndTime      string  `json:"heure_fin"`
	CourtID      *string `json:"terrain_id"`
	CoachID      *string `json:"coach_id"`
	CustomColor  *string `json:"couleur_custom"`
	Capacity     *int    `json:"capacite"`
}

// handleAddCourse handles POST /api/courses. The start < end invariant is
// enforced here, at the edit boundary; the engine trusts validated input.
func (a *api) handleAddCourse(w http.ResponseWriter, r *http.Request) {
	var req courseDraftRequest
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid course payload: "+err.Error())
		return
	}
	probe := planning.Course{
		ID:           "pending",
		CourseTypeID: req.CourseTypeID,
		Weekday:      req.Weekday,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if err := probe.Validate(); err != nil {
		badRequest(w, err.Error())
		return
	}
	course := a.board.AddCourse(r.Context(), board.CourseDraft{
		CourseTypeID: req.CourseTypeID,
		Weekday:      req.Weekday,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		CourtID:      req.CourtID,
		CoachID:      req.CoachID,
		CustomColor:  req.CustomColor,
		Capacity:     req.Capacity,
	})
	writeJSON(w, http.StatusCreated, course)
}

// handleUpdateCourse handles PATCH /api/courses/{id}. The body is a partial
// course; absent fields are left untouched and explicit nulls clear the
// optional references, so the raw message distinguishes the two.
func (a *api) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var raw map[string]json.RawMessage
	if err := strictDecode(r, &raw); err != nil {
		badRequest(w, "invalid course payload: "+err.Error())
		return
	}
	patch, err := coursePatchFromRaw(raw)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := a.validateCoursePatch(id, patch); err != nil {
		badRequest(w, err.Error())
		return
	}
	course, ok := a.board.UpdateCourse(r.Context(), id, patch)
	if !ok {
		notFound(w, "course not found")
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func coursePatchFromRaw(raw map[string]json.RawMessage) (board.CoursePatch, error) {
	var patch board.CoursePatch
	decode := func(key string, v any) error {
		msg, ok := raw[key]
		if !ok {
			return errNoField
		}
		return json.Unmarshal(msg, v)
	}

	for key := range raw {
		switch key {
		case "type_cours_id", "jour_semaine", "heure_debut", "heure_fin",
			"terrain_id", "coach_id", "couleur_custom", "capacite":
		default:
			return patch, errors.New("unknown field " + key)
		}
	}

	if err := decode("type_cours_id", &patch.CourseTypeID); err != nil && err != errNoField {
		return patch, err
	}
	if err := decode("jour_semaine", &patch.Weekday); err != nil && err != errNoField {
		return patch, err
	}
	if err := decode("heure_debut", &patch.StartTime); err != nil && err != errNoField {
		return patch, err
	}
	if err := decode("heure_fin", &patch.EndTime); err != nil && err != errNoField {
		return patch, err
	}
	if msg, ok := raw["terrain_id"]; ok {
		if string(msg) == "null" {
			patch.ClearCourt = true
		} else if err := json.Unmarshal(msg, &patch.CourtID); err != nil {
			return patch, err
		}
	}
	if msg, ok := raw["coach_id"]; ok {
		if string(msg) == "null" {
			patch.ClearCoach = true
		} else if err := json.Unmarshal(msg, &patch.CoachID); err != nil {
			return patch, err
		}
	}
	if msg, ok := raw["couleur_custom"]; ok {
		if string(msg) == "null" {
			patch.ClearColor = true
		} else if err := json.Unmarshal(msg, &patch.CustomColor); err != nil {
			return patch, err
		}
	}
	if err := decode("capacite", &patch.Capacity); err != nil && err != errNoField {
		return patch, err
	}
	return patch, nil
}

var errNoField = errors.New("field absent")

// validateCoursePatch checks the merged result would still satisfy the
// committed-course invariants before the engine applies it.
func (a *api) validateCoursePatch(id string, patch board.CoursePatch) error {
	snap := a.board.Snapshot()
	for _, c := range snap.Planning {
		if c.ID != id {
			continue
		}
		merged := c
		if patch.CourseTypeID != nil {
			merged.CourseTypeID = *patch.CourseTypeID
		}
		if patch.Weekday != nil {
			merged.Weekday = *patch.Weekday
		}
		if patch.StartTime != nil {
			merged.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			merged.EndTime = *patch.EndTime
		}
		return merged.Validate()
	}
	// Unknown ids fall through to the engine's no-op handling.
	return nil
}

// handleDeleteCourse handles DELETE /api/courses/{id}.
func (a *api) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	if !a.board.DeleteCourse(r.Context(), r.PathValue("id")) {
		notFound(w, "course not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveRequest is the payload for relocating a course on the grid.
type moveRequest struct {
	Weekday   int    `json:"jour_semaine"`
	StartTime string `json:"heure_debut"`
}

// handleMoveCourse handles POST /api/courses/{id}/move. Duration is
// preserved by the engine; only the target day and start are supplied.
func (a *api) handleMoveCourse(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid move payload: "+err.Error())
		return
	}
	if req.Weekday < planning.Monday || req.Weekday > planning.Sunday {
		badRequest(w, planning.ErrInvalidWeekday.Error())
		return
	}
	if _, err := planning.MinutesOfDay(req.StartTime); err != nil {
		badRequest(w, err.Error())
		return
	}
	course, ok := a.board.MoveCourse(r.Context(), r.PathValue("id"), req.Weekday, req.StartTime)
	if !ok {
		notFound(w, "course not found")
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// nameRequest covers courts and coaches, which carry only a name.
type nameRequest struct {
	Name string `json:"nom"`
}

func (a *api) handleAddCourt(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := strictDecode(r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(w, planning.ErrEmptyName.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a.board.AddCourt(r.Context(), req.Name))
}

func (a *api) handleUpdateCourt(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := strictDecode(r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(w, planning.ErrEmptyName.Error())
		return
	}
	court, ok := a.board.UpdateCourt(r.Context(), r.PathValue("id"), req.Name)
	if !ok {
		notFound(w, "court not found")
		return
	}
	writeJSON(w, http.StatusOK, court)
}

func (a *api) handleDeleteCourt(w http.ResponseWriter, r *http.Request) {
	if !a.board.DeleteCourt(r.Context(), r.PathValue("id")) {
		notFound(w, "court not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleAddCoach(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := strictDecode(r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(w, planning.ErrEmptyName.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a.board.AddCoach(r.Context(), req.Name))
}

func (a *api) handleUpdateCoach(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := strictDecode(r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(w, planning.ErrEmptyName.Error())
		return
	}
	coach, ok := a.board.UpdateCoach(r.Context(), r.PathValue("id"), req.Name)
	if !ok {
		notFound(w, "coach not found")
		return
	}
	writeJSON(w, http.StatusOK, coach)
}

func (a *api) handleDeleteCoach(w http.ResponseWriter, r *http.Request) {
	if !a.board.DeleteCoach(r.Context(), r.PathValue("id")) {
		notFound(w, "coach not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// courseTypeRequest is the create payload for a course type.
type courseTypeRequest struct {
	Name        string `json:"nom"`
	Color       string `json:"couleur"`
	Description string `json:"description"`
}

func (a *api) handleAddCourseType(w http.ResponseWriter, r *http.Request) {
	var req courseTypeRequest
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid course type payload: "+err.Error())
		return
	}
	probe := planning.CourseType{ID: "pending", Name: req.Name, Color: req.Color}
	if err := validateCourseType(probe); err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a.board.AddCourseType(r.Context(), req.Name, req.Color, req.Description))
}

func (a *api) handleUpdateCourseType(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := strictDecode(r, &raw); err != nil {
		badRequest(w, "invalid course type payload: "+err.Error())
		return
	}
	var patch board.CourseTypePatch
	if msg, ok := raw["nom"]; ok {
		if err := json.Unmarshal(msg, &patch.Name); err != nil {
			badRequest(w, err.Error())
			return
		}
	}
	if msg, ok := raw["couleur"]; ok {
		if err := json.Unmarshal(msg, &patch.Color); err != nil {
			badRequest(w, err.Error())
			return
		}
	}
	if msg, ok := raw["description"]; ok {
		if err := json.Unmarshal(msg, &patch.Description); err != nil {
			badRequest(w, err.Error())
			return
		}
	}
	ct, ok := a.board.UpdateCourseType(r.Context(), r.PathValue("id"), patch)
	if !ok {
		notFound(w, "course type not found")
		return
	}
	writeJSON(w, http.StatusOK, ct)
}

func (a *api) handleDeleteCourseType(w http.ResponseWriter, r *http.Request) {
	if !a.board.DeleteCourseType(r.Context(), r.PathValue("id")) {
		notFound(w, "course type not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateCourseType(ct planning.CourseType) error {
	if strings.TrimSpace(ct.Name) == "" {
		return planning.ErrEmptyName
	}
	if !strings.HasPrefix(ct.Color, "#") {
		return errors.New("color must be a hex value")
	}
	return nil
}
