// Package web exposes the scheduling board over HTTP: a JSON API consumed
// by the admin grid and the read-only display view. It is a thin consumer
// of the board engine; all invariants live there.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/rs/zerolog"

	"arenaboard/internal/adapters/http/middleware"
	"arenaboard/internal/application/board"
)

// Options configures the HTTP surface.
type Options struct {
	// Env is "production" or "development"; production requires CSRFKey.
	Env string
	// CSRFKey is the hex-encoded 32-byte CSRF secret. Empty generates a
	// random per-startup key outside production.
	CSRFKey string
	// RateLimitPerSecond is the per-IP request budget. Zero means 10.
	RateLimitPerSecond int
}

type api struct {
	board *board.Board
	log   zerolog.Logger
}

// NewMux wires HTTP handlers for the app.
// PRE: b is a constructed board engine
// POST: Returns the root handler with the full middleware chain applied
func NewMux(b *board.Board, log zerolog.Logger, opts Options) (http.Handler, error) {
	a := &api{board: b, log: log}

	mux := http.NewServeMux()
	a.registerRoutes(mux)

	csrfKey, err := loadCSRFKey(opts, log)
	if err != nil {
		return nil, err
	}

	perSecond := opts.RateLimitPerSecond
	if perSecond <= 0 {
		perSecond = 10
	}
	limiter := middleware.NewRateLimiter(perSecond)

	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
	), nil
}

func (a *api) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/planning", a.handleGetPlanning)
	mux.HandleFunc("GET /api/history", a.handleGetHistory)
	mux.HandleFunc("POST /api/undo", a.handleUndo)
	mux.HandleFunc("POST /api/redo", a.handleRedo)
	mux.HandleFunc("POST /api/reset", a.handleReset)

	mux.HandleFunc("POST /api/courses", a.handleAddCourse)
	mux.HandleFunc("PATCH /api/courses/{id}", a.handleUpdateCourse)
	mux.HandleFunc("DELETE /api/courses/{id}", a.handleDeleteCourse)
	mux.HandleFunc("POST /api/courses/{id}/move", a.handleMoveCourse)

	mux.HandleFunc("POST /api/courts", a.handleAddCourt)
	mux.HandleFunc("PATCH /api/courts/{id}", a.handleUpdateCourt)
	mux.HandleFunc("DELETE /api/courts/{id}", a.handleDeleteCourt)

	mux.HandleFunc("POST /api/coaches", a.handleAddCoach)
	mux.HandleFunc("PATCH /api/coaches/{id}", a.handleUpdateCoach)
	mux.HandleFunc("DELETE /api/coaches/{id}", a.handleDeleteCoach)

	mux.HandleFunc("POST /api/course-types", a.handleAddCourseType)
	mux.HandleFunc("PATCH /api/course-types/{id}", a.handleUpdateCourseType)
	mux.HandleFunc("DELETE /api/course-types/{id}", a.handleDeleteCourseType)

	mux.HandleFunc("GET /api/export", a.handleExport)
	mux.HandleFunc("POST /api/import", a.handleImport)
	mux.HandleFunc("POST /api/planning/validate", a.handleValidatePlanning)
}

// loadCSRFKey decodes the CSRF secret. In production the key MUST be set;
// in development a random key is generated per startup.
func loadCSRFKey(opts Options, log zerolog.Logger) ([]byte, error) {
	if opts.CSRFKey != "" {
		key, err := hex.DecodeString(opts.CSRFKey)
		if err != nil || len(key) != 32 {
			return nil, errInvalidCSRFKey
		}
		return key, nil
	}
	if opts.Env == "production" {
		return nil, errMissingCSRFKey
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	log.Warn().Msg("using random CSRF key; sessions won't survive restart")
	return key, nil
}
