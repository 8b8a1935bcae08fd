// Package server exposes the PDF conversion endpoints over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docuconv/pdf2json/internal/config"
	"github.com/docuconv/pdf2json/internal/entities"
	"github.com/docuconv/pdf2json/internal/pdf"
)

// Server wraps the HTTP server instance and its handlers
type Server struct {
	httpServer *http.Server
}

// New builds and wires all routes
func New(cfg *config.Config, pdfService *pdf.Service, entityExtractor *entities.Extractor) *Server {
	h := NewHandler(cfg, pdfService, entityExtractor)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", h.Root)
	r.Route("/convert", func(cr chi.Router) {
		cr.Post("/pdf2json", h.ConvertPDF)
		cr.Post("/po-pdf", h.ConvertPurchaseOrder)
		cr.Post("/advanced", h.ConvertAdvanced)
		cr.Post("/tables", h.ConvertTables)
	})

	httpSrv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
