package apihttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"torrentmeta/piratebay/internal/domain"
	"torrentmeta/piratebay/internal/index"
	"torrentmeta/piratebay/internal/piratebay"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MetadataService is the slice of the index service the HTTP layer needs.
type MetadataService interface {
	Search(ctx context.Context, query string, category *piratebay.Category) (domain.TorrentListResponse, error)
	Top100(ctx context.Context, category piratebay.Category, last48h bool) (domain.TorrentListResponse, error)
	Torrent(ctx context.Context, id uint64) (domain.TorrentResponse, error)
	Files(ctx context.Context, id uint64) (domain.FileListResponse, error)
}

const maxQueryLength = 500

type Server struct {
	service MetadataService
	logger  *slog.Logger
}

type ServerOption func(*Server)

func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(service MetadataService, options ...ServerOption) *Server {
	server := &Server{
		service: service,
		logger:  slog.Default(),
	}
	for _, option := range options {
		if option != nil {
			option(server)
		}
	}
	if server.logger == nil {
		server.logger = slog.Default()
	}
	return server
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/top100", s.handleTop100)
	mux.HandleFunc("/api/torrent/files", s.handleTorrentFiles)
	mux.HandleFunc("/api/torrent", s.handleTorrent)
	mux.HandleFunc("/api/categories", s.handleCategories)
	traced := otelhttp.NewHandler(loggingMiddleware(s.logger, mux), "piratebay-metadata",
		otelhttp.WithFilter(func(r *http.Request) bool {
			p := r.URL.Path
			return p != "/metrics" && p != "/health"
		}),
	)
	return recoveryMiddleware(s.logger, rateLimitMiddleware(50, 100, metricsMiddleware(traced)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/search" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "query is required")
		return
	}
	if len(query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "query too long (max 500 characters)")
		return
	}
	category, ok := parseOptionalCategory(w, r)
	if !ok {
		return
	}

	response, err := s.service.Search(r.Context(), query, category)
	if err != nil {
		s.logger.Warn("search request failed",
			slog.String("query", truncate(query, 80)),
			slog.String("error", err.Error()),
		)
		switch {
		case errors.Is(err, index.ErrInvalidQuery):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			writeError(w, http.StatusBadGateway, "upstream_error", "search failed")
		}
		return
	}

	s.logger.Info("search completed",
		slog.String("query", truncate(query, 80)),
		slog.Int("totalItems", response.TotalItems),
		slog.Bool("cached", response.Cached),
		slog.Int64("elapsedMs", response.ElapsedMS),
	)
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTop100(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/top100" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("cat"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "cat is required")
		return
	}
	category, ok := parseCategory(w, raw)
	if !ok {
		return
	}
	last48h := parseOptionalBool(r.URL.Query().Get("last48h"))

	response, err := s.service.Top100(r.Context(), category, last48h)
	if err != nil {
		s.logger.Warn("top100 request failed",
			slog.Int("category", int(category.Code())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "upstream_error", "top100 failed")
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTorrent(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/torrent" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := parseTorrentID(w, r)
	if !ok {
		return
	}

	response, err := s.service.Torrent(r.Context(), id)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		s.logger.Warn("torrent request failed",
			slog.Uint64("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "upstream_error", "torrent lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTorrentFiles(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/torrent/files" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := parseTorrentID(w, r)
	if !ok {
		return
	}

	response, err := s.service.Files(r.Context(), id)
	if err != nil {
		s.logger.Warn("file listing request failed",
			slog.Uint64("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "upstream_error", "file listing failed")
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleCategories serves the static category table so clients do not need
// their own copy.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/categories" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items := make([]domain.CategoryInfo, 0, 64)
	for category := range piratebay.Categories() {
		items = append(items, domain.CategoryInfo{
			Code: category.Code(),
			Name: category.Name(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func parseOptionalCategory(w http.ResponseWriter, r *http.Request) (*piratebay.Category, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("cat"))
	if raw == "" {
		return nil, true
	}
	category, ok := parseCategory(w, raw)
	if !ok {
		return nil, false
	}
	return &category, true
}

func parseCategory(w http.ResponseWriter, raw string) (piratebay.Category, bool) {
	code, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid category code")
		return piratebay.Category{}, false
	}
	category, known := piratebay.NewCategory(uint16(code))
	if !known {
		writeError(w, http.StatusBadRequest, "invalid_request", "unknown category code")
		return piratebay.Category{}, false
	}
	return category, true
}

func parseTorrentID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return 0, false
	}
	return id, true
}

func parseOptionalBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
