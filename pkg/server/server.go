package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/de-tools/audit-atlas/pkg/handlers/audit"
	auditatlasmiddleware "github.com/de-tools/audit-atlas/pkg/server/middleware"
	"github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/de-tools/audit-atlas/pkg/services/stats"
	"github.com/de-tools/audit-atlas/pkg/services/templates"
)

type Dependencies struct {
	Audits    audit.Manager
	Reporter  stats.Reporter
	Templates templates.Catalog
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

func ConfigureRouter(config Config) *chi.Mux {
	h := handlers.NewHandler(
		config.Dependencies.Audits,
		config.Dependencies.Reporter,
		config.Dependencies.Templates,
	)

	router := chi.NewRouter()
	router.Use(auditatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/templates", h.ListTemplates)
		r.Get("/templates/{templateID}", h.GetTemplate)

		r.Post("/audits", h.CreateAudit)
		r.Get("/audits", h.ListAudits)
		r.Get("/audits/{auditID}", h.GetAudit)
		r.Post("/audits/{auditID}/start", h.StartAudit)
		r.Post("/audits/{auditID}/complete", h.CompleteAudit)

		r.Post("/audits/{auditID}/answers", h.SubmitAnswer)
		r.Get("/audits/{auditID}/answers", h.ListAnswers)
		r.Get("/audits/{auditID}/questions", h.GetQuestions)
		r.Get("/audits/{auditID}/results", h.GetResults)

		r.Get("/audits/{auditID}/recommendations", h.ListRecommendations)
		r.Post("/audits/{auditID}/recommendations/regenerate", h.RegenerateRecommendations)
		r.Patch("/recommendations/{recommendationID}/status", h.UpdateRecommendationStatus)

		r.Get("/statistics", h.GetStatistics)
		r.Get("/comparison", h.CompareAudits)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
