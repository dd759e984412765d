package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/roniherschmann/go-checkid/internal/alphabet"
	"github.com/roniherschmann/go-checkid/internal/config"
	"github.com/roniherschmann/go-checkid/internal/core"
	"github.com/roniherschmann/go-checkid/internal/metrics"
)

type Router struct {
	cfg     config.Config
	svc     *core.Service
	limiter *rateLimiter
}

func NewRouter(cfg config.Config, svc *core.Service) http.Handler {
	r := chi.NewRouter()
	// Logging middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", dur).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	api := &Router{
		cfg:     cfg,
		svc:     svc,
		limiter: newRateLimiter(cfg.CreateRateRPS, cfg.CreateRateBurst),
	}

	r.MethodFunc(http.MethodGet, "/healthz", api.handleHealth)
	r.MethodFunc(http.MethodGet, "/readyz", api.handleReady)

	// Metrics
	r.MethodFunc(http.MethodGet, "/metrics", metrics.Handler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ids", api.handleGenerate)
		r.Post("/validate", api.handleValidate)
		r.Get("/validate/{id}", api.handleValidateGet)
		r.Get("/presets", api.handlePresets)
		r.Get("/stats", api.handleStats)
	})

	return r
}

type validateResp struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
}

type presetResp struct {
	Name     string `json:"name"`
	Symbols  string `json:"symbols"`
	Radix    int    `json:"radix"`
	FoldCase bool   `json:"foldCase"`
}

func (rt *Router) handleGenerate(w http.ResponseWriter, r *http.Request) {
	metrics.GenerateRequests.Inc()
	ip := clientIP(r)
	if !rt.limiter.Allow(ip) {
		metrics.RateLimited.Inc()
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	var req core.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := rt.svc.Generate(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, res, http.StatusCreated)
}

func (rt *Router) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req core.ValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	rt.validate(w, r, req)
}

func (rt *Router) handleValidateGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := core.ValidateRequest{
		AlphabetSpec: core.AlphabetSpec{Preset: q.Get("preset"), Symbols: q.Get("symbols")},
		ID:           chi.URLParam(r, "id"),
	}
	if v := q.Get("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid length", http.StatusBadRequest)
			return
		}
		req.Length = n
	}
	rt.validate(w, r, req)
}

func (rt *Router) validate(w http.ResponseWriter, r *http.Request, req core.ValidateRequest) {
	ok, err := rt.svc.Validate(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, validateResp{ID: req.ID, Valid: ok}, http.StatusOK)
}

func (rt *Router) handlePresets(w http.ResponseWriter, r *http.Request) {
	ps := alphabet.Presets()
	out := make([]presetResp, 0, len(ps))
	for _, p := range ps {
		out = append(out, presetResp{
			Name:     p.Name,
			Symbols:  p.Alphabet.String(),
			Radix:    p.Alphabet.Radix(),
			FoldCase: p.FoldCase,
		})
	}
	writeJSON(w, out, http.StatusOK)
}

func (rt *Router) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := rt.svc.Stats()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, stats, http.StatusOK)
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (rt *Router) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// An empty body is an empty request: every field has a default.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, alphabet.ErrInvalidAlphabet),
		errors.Is(err, core.ErrInvalidLength),
		errors.Is(err, core.ErrInvalidCount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func clientIP(r *http.Request) string {
	// Try X-Forwarded-For or Real-IP first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if rip := r.Header.Get("X-Real-Ip"); rip != "" {
		return rip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
