package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/session"
	"github.com/mind-engage/mindengage-mocktest/internal/storage"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

type API struct {
	Templates template.Store
	Tests     exam.Store
	Hub       *Hub
	Events    session.EventSink // optional
	Uploader  storage.Uploader
	Blobs     storage.BlobStore // optional, serves GET /assets/*
	Logger    *slog.Logger
}

// Mount registers the authoring routes on r.
func Mount(r chi.Router, a API) {
	r.Put("/templates/{templateID}", PutTemplateHandler(a.Templates))
	r.Get("/templates/{templateID}", GetTemplateHandler(a.Templates))

	r.Post("/tests", CreateTestHandler(a.Tests, a.Templates))
	r.Get("/tests/{testID}", GetTestHandler(a.Tests))
	r.Post("/tests/{testID}/duplicate", DuplicateTestHandler(a.Tests, a.Events, a.Logger))

	sh := SessionHandlers{Hub: a.Hub}
	r.Route("/tests/{testID}/session", func(sr chi.Router) {
		sr.Post("/", sh.Open)
		sr.Get("/", sh.Get)
		sr.Delete("/", sh.Close)
		sr.Post("/retry", sh.Retry)
		sr.Post("/questions/{questionID}/open", sh.OpenQuestion)
		sr.Post("/cancel", sh.Cancel)
		sr.Post("/commit", sh.Commit)
		sr.Put("/sections/{sectionID}/audio", sh.SectionAudio)
		sr.Post("/save", sh.Save)
	})

	if a.Uploader != nil {
		r.Route("/assets", func(ar chi.Router) {
			MountAssets(ar, a.Uploader, a.Blobs)
		})
	}
}
