package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"arenaboard/internal/domain/planning"
)

// handleExport handles GET /api/export: the current snapshot as a JSON
// download named <facility-slug>-planning-<ISO date>.json. Reading the
// export has no side effect.
func (a *api) handleExport(w http.ResponseWriter, r *http.Request) {
	snap := a.board.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		a.log.Error().Err(err).Msg("export encode failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.ExportFilename(timeNow())))
	_, _ = w.Write(data)
}

// handleImport handles POST /api/import. Malformed JSON is a blocking
// error surfaced to the user; a syntactically valid snapshot additionally
// passes structural and referential validation before it replaces the live
// state wholesale.
func (a *api) handleImport(w http.ResponseWriter, r *http.Request) {
	var snap planning.Snapshot
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&snap); err != nil {
		badRequest(w, "invalid planning file: "+err.Error())
		return
	}
	if err := planning.ValidateImport(snap); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	a.board.LoadSnapshot(r.Context(), snap)
	writeJSON(w, http.StatusOK, a.board.Snapshot())
}

// handleValidatePlanning handles POST /api/planning/validate: a stub that
// checks only that sports_complex is present and planning is an array,
// echoes the result, and persists nothing.
func (a *api) handleValidatePlanning(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "failed to process planning data",
			"details": err.Error(),
		})
		return
	}

	name, _ := data["sports_complex"].(string)
	_, planningIsArray := data["planning"].([]any)
	if name == "" || !planningIsArray {
		badRequest(w, "invalid planning data structure")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "planning data validated successfully",
		"data":    data,
	})
}
