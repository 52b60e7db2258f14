package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"

	web "arenaboard/internal/adapters/http"
	"arenaboard/internal/adapters/storage"
	snapshotStore "arenaboard/internal/adapters/storage/snapshot"
	"arenaboard/internal/application/board"
	"arenaboard/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ARENA_CONFIG"))
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("loading config failed")
	}

	log := newLogger(cfg)

	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	timed := storage.NewTimedDB(db, log, storage.DefaultSlowQueryThreshold)
	slot := snapshotStore.NewSQLiteStore(timed, cfg.StorageKey)
	engine := board.New(context.Background(), slot, log)

	// Periodic autosave, independent of the per-mutation writes.
	jobs := cron.New()
	if _, err := jobs.AddFunc("@every "+cfg.Autosave.Std().String(), func() {
		engine.Autosave(context.Background())
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule autosave")
	}
	jobs.Start()
	defer jobs.Stop()

	mux, err := web.NewMux(engine, log, web.Options{
		Env:     cfg.Env,
		CSRFKey: cfg.CSRFKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build HTTP handler")
	}

	log.Info().
		Str("version", version).
		Str("addr", cfg.Addr).
		Str("env", cfg.Env).
		Dur("autosave", cfg.Autosave.Std()).
		Msg("arenaboard starting")

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = zerolog.New(os.Stdout)
	if cfg.Env != "production" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return out.Level(level).With().Timestamp().Logger()
}
