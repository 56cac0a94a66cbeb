// Package server exposes the control-plane HTTP API for starting and
// stopping the automation loop and inspecting its state.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/XavierBriggs/Hermes/internal/scheduler"
	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	baseCtx   context.Context
	scheduler *scheduler.Scheduler
	provider  contracts.OddsProvider
}

// NewHandler creates a new handler with dependencies. The context must
// outlive individual requests; it bounds the run loop started through the
// control plane.
func NewHandler(ctx context.Context, sched *scheduler.Scheduler, provider contracts.OddsProvider) *Handler {
	return &Handler{
		baseCtx:   ctx,
		scheduler: sched,
		provider:  provider,
	}
}

// Router builds the chi router with all control-plane routes
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)
	r.Get("/status", h.Status)
	r.Post("/start", h.StartBot)
	r.Post("/stop", h.StopBot)

	return r
}

// Root returns a service banner
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "hermes",
		"message": "Betting tips bot control plane",
	})
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "hermes",
	})
}

// Status reports whether the loop is running, the last run outcome, and
// remaining odds API quota
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"running": h.scheduler.Running(),
	}

	if last := h.scheduler.LastRun(); last != nil {
		resp["last_run"] = last
	}
	if lastErr := h.scheduler.LastError(); lastErr != "" {
		resp["last_error"] = lastErr
	}
	if h.provider != nil {
		if limits := h.provider.GetRateLimits(); limits != nil {
			resp["rate_limits"] = limits
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// StartBot launches the automation loop. The loop runs on the handler's
// long-lived context, not the request's, which dies when the handler returns.
func (h *Handler) StartBot(w http.ResponseWriter, r *http.Request) {
	if !h.scheduler.Start(h.baseCtx) {
		respondError(w, http.StatusBadRequest, "bot is already running", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "started",
		"message": "Bot started successfully",
	})
}

// StopBot halts the automation loop
func (h *Handler) StopBot(w http.ResponseWriter, r *http.Request) {
	if !h.scheduler.Stop() {
		respondError(w, http.StatusBadRequest, "bot is not running", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "stopped",
		"message": "Bot stopped successfully",
	})
}

// Helper functions

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
