package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/mind-engage/mindengage-mocktest/internal/api/http"
	"github.com/mind-engage/mindengage-mocktest/internal/config"
	"github.com/mind-engage/mindengage-mocktest/internal/db"
	"github.com/mind-engage/mindengage-mocktest/internal/editor"
	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/session"
	"github.com/mind-engage/mindengage-mocktest/internal/storage"
	syncx "github.com/mind-engage/mindengage-mocktest/internal/sync"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}
	cfg := config.FromEnv()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	templates := template.NewSQLStore(dbh)
	tests := exam.NewSQLStore(dbh)
	events := syncx.NewEventRepo(dbh)

	if cfg.SeedTemplates {
		if err := seedTemplates(ctx, templates, logger); err != nil {
			log.Fatalf("seed templates: %v", err)
		}
	}

	// --- Assets ---
	var (
		uploader storage.Uploader
		blobs    storage.BlobStore
	)
	switch cfg.BlobDriver {
	case "mock":
		uploader = storage.MockUploader{BaseURL: cfg.AssetBaseURL}
	case "fs":
		fs, err := storage.NewFSStore(cfg.BlobBasePath)
		if err != nil {
			log.Fatalf("blob store: %v", err)
		}
		base := cfg.AssetBaseURL
		if base == "" {
			base = "/assets"
		}
		uploader, blobs = storage.BlobUploader{Store: fs, BaseURL: base}, fs
	default:
		log.Fatalf("unknown BLOB_DRIVER %q", cfg.BlobDriver)
	}

	hub := api.NewHub(session.Deps{
		Templates: templates,
		Tests:     tests,
		Editors:   editor.NewDefaultRegistry(),
		Events:    events,
		Logger:    logger,
	})

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.API{
		Templates: templates,
		Tests:     tests,
		Hub:       hub,
		Events:    events,
		Uploader:  uploader,
		Blobs:     blobs,
		Logger:    logger,
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	logger.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver, "blob", cfg.BlobDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// seedTemplates stores the built-in templates that are not present yet.
func seedTemplates(ctx context.Context, store template.Store, logger *slog.Logger) error {
	for _, t := range template.Samples() {
		_, err := store.GetTemplate(ctx, t.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, template.ErrNotFound) {
			return err
		}
		t.CreatedAt = time.Now().Unix()
		if err := store.PutTemplate(ctx, t); err != nil {
			return err
		}
		logger.Info("seeded template", "template_id", t.ID)
	}
	return nil
}
