// Package server exposes the site over HTTP: the gallery page, the inquiry
// form handler, the diagnostics endpoint and the health check.
package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"

	"bibiartisan/internal/domain"
	"bibiartisan/internal/flash"
	"bibiartisan/internal/services"
	"bibiartisan/internal/util"
)

const defaultMaxFormBytes = 1 << 20

// Options configures the optional surfaces of the server
type Options struct {
	// DiagnosticsEnabled mounts GET /debug behind a diagnostics-scoped token.
	DiagnosticsEnabled bool
	SecretKey          string
	MaxFormBytes       int64
}

// Server lists the site HTTP handlers
type Server struct {
	Mounts []*MountPoint

	Index       http.Handler
	Submit      http.Handler
	Diagnostics http.Handler
	Health      http.Handler

	gallery     *services.GalleryService
	inquiry     *services.InquiryService
	diagnostics *services.DiagnosticsService
	health      *services.HealthService
	flash       flash.Store
	opts        Options
	log         *zap.Logger
}

// MountPoint holds information about the mounted endpoints
type MountPoint struct {
	Method  string
	Verb    string
	Pattern string
}

// New instantiates HTTP handlers for all site endpoints
func New(
	gallery *services.GalleryService,
	inquiry *services.InquiryService,
	diagnostics *services.DiagnosticsService,
	health *services.HealthService,
	flashStore flash.Store,
	opts Options,
	log *zap.Logger,
) *Server {
	if opts.MaxFormBytes <= 0 {
		opts.MaxFormBytes = defaultMaxFormBytes
	}
	s := &Server{
		gallery:     gallery,
		inquiry:     inquiry,
		diagnostics: diagnostics,
		health:      health,
		flash:       flashStore,
		opts:        opts,
		log:         log.Named("http"),
	}

	s.Index = http.HandlerFunc(s.handleIndex)
	s.Submit = http.HandlerFunc(s.handleSubmit)
	s.Health = http.HandlerFunc(s.handleHealth)
	s.Mounts = []*MountPoint{
		{Method: "Index", Verb: http.MethodGet, Pattern: "/"},
		{Method: "Submit", Verb: http.MethodPost, Pattern: "/"},
		{Method: "Health", Verb: http.MethodGet, Pattern: "/health"},
	}
	if opts.DiagnosticsEnabled {
		s.Diagnostics = services.RequireToken(opts.SecretKey, util.ScopeDiagnostics, s.log)(http.HandlerFunc(s.handleDiagnostics))
		s.Mounts = append(s.Mounts, &MountPoint{Method: "Diagnostics", Verb: http.MethodGet, Pattern: "/debug"})
	}
	return s
}

// Use wraps the server handlers with the given middleware
func (s *Server) Use(m func(http.Handler) http.Handler) {
	s.Index = m(s.Index)
	s.Submit = m(s.Submit)
	s.Health = m(s.Health)
	if s.Diagnostics != nil {
		s.Diagnostics = m(s.Diagnostics)
	}
}

// Mount configures the mux to serve the site endpoints
func (s *Server) Mount(mux goahttp.Muxer) {
	mount(mux, http.MethodGet, "/", s.Index)
	mount(mux, http.MethodPost, "/", s.Submit)
	mount(mux, http.MethodGet, "/health", s.Health)
	if s.Diagnostics != nil {
		mount(mux, http.MethodGet, "/debug", s.Diagnostics)
	}
}

func mount(mux goahttp.Muxer, method, pattern string, h http.Handler) {
	mux.Handle(method, pattern, h.ServeHTTP)
}

// handleIndex renders the page with any messages left by the last submission
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := s.gallery.RenderContext(ctx)
	if err != nil {
		s.log.Error("Failed to load page", zap.Error(err))
		s.encodeError(w, r, http.StatusInternalServerError, services.Internal(err))
		return
	}
	page.Messages = append(page.Messages, s.popFlash(w, r)...)

	if err := encodeResponse(ctx, w, http.StatusOK, page); err != nil {
		s.log.Error("Failed to encode response", zap.Error(err))
	}
}

// handleSubmit accepts the contact form. Accepted submissions redirect to the
// page with their messages stored for display. Rejected ones re-render the page.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.encodeError(w, r, http.StatusBadRequest, services.BadRequest("invalid form body"))
		return
	}

	form := services.InquiryForm{
		Name:        r.PostForm.Get("name"),
		Email:       r.PostForm.Get("email"),
		Phone:       r.PostForm.Get("phone"),
		RequestType: r.PostForm.Get("request-type"),
		Message:     r.PostForm.Get("message"),
	}

	result, err := s.inquiry.Submit(ctx, form)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			s.renderRejected(w, r, verr)
			return
		}
		s.encodeError(w, r, http.StatusInternalServerError, services.Internal(err))
		return
	}

	if err := s.flash.Add(w, r, result.Messages...); err != nil {
		s.log.Warn("Failed to store flash messages", zap.Uint("inquiry_id", result.Inquiry.ID), zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderRejected(w http.ResponseWriter, r *http.Request, verr *services.ValidationError) {
	ctx := r.Context()

	page, err := s.gallery.RenderContext(ctx)
	if err != nil {
		s.log.Error("Failed to load page", zap.Error(err))
		s.encodeError(w, r, http.StatusInternalServerError, services.Internal(err))
		return
	}
	page.Messages = append(page.Messages, s.popFlash(w, r)...)
	page.Messages = append(page.Messages, domain.Error(verr.Message))

	if err := encodeResponse(ctx, w, http.StatusBadRequest, page); err != nil {
		s.log.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if claims, ok := services.ClaimsFromContext(ctx); ok {
		s.log.Info("Diagnostics requested", zap.String("subject", claims.Subject))
	}
	if err := encodeResponse(ctx, w, http.StatusOK, s.diagnostics.Show(ctx)); err != nil {
		s.log.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result := s.health.Check(ctx)
	status := http.StatusOK
	if result.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	if err := encodeResponse(ctx, w, status, result); err != nil {
		s.log.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) []domain.Message {
	msgs, err := s.flash.Pop(w, r)
	if err != nil {
		s.log.Warn("Failed to read flash messages", zap.Error(err))
		return nil
	}
	return msgs
}

func (s *Server) encodeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if encErr := encodeError(r.Context(), w, status, err); encErr != nil {
		s.log.Error("Failed to encode error", zap.Error(encErr))
	}
}
