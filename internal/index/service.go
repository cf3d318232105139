// Package index serves Pirate Bay metadata with caching on top of the raw
// apibay client: listings are filtered, magnet links attached and responses
// kept in a TTL cache (optionally backed by Redis).
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"torrentmeta/piratebay/internal/domain"
	"torrentmeta/piratebay/internal/metrics"
	"torrentmeta/piratebay/internal/piratebay"
)

var (
	ErrInvalidQuery = errors.New("query must not be empty")
	ErrNotFound     = errors.New("torrent not found")
)

// Client is the slice of the apibay client the service depends on.
type Client interface {
	Search(ctx context.Context, query string, category *piratebay.Category) ([]piratebay.PartialTorrent, error)
	Top100(ctx context.Context, category piratebay.Category, last48h bool) ([]piratebay.PartialTorrent, error)
	Torrent(ctx context.Context, id uint64) (piratebay.Torrent, error)
	TorrentFiles(ctx context.Context, id uint64) ([]piratebay.TorrentFile, error)
}

type Service struct {
	client Client
	logger *slog.Logger

	cacheDisabled bool
	cache         *memoryCache
	redisCache    *RedisCacheBackend
	cacheTTL      time.Duration

	refreshCategories []piratebay.Category
	refreshInterval   time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

func WithCacheDisabled() Option {
	return func(s *Service) { s.cacheDisabled = true }
}

func WithRedisCache(backend *RedisCacheBackend) Option {
	return func(s *Service) { s.redisCache = backend }
}

// WithTop100Refresh keeps the top-100 listings for the given categories warm
// in the background. Requires StartBackground.
func WithTop100Refresh(categories []piratebay.Category, interval time.Duration) Option {
	return func(s *Service) {
		s.refreshCategories = categories
		s.refreshInterval = interval
	}
}

func NewService(client Client, opts ...Option) *Service {
	s := &Service{
		client:   client,
		logger:   slog.Default(),
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = newMemoryCache(s.cacheTTL, defaultCacheMaxEntries)
	return s
}

// Search looks up torrents by name, optionally restricted to a category.
func (s *Service) Search(ctx context.Context, query string, category *piratebay.Category) (domain.TorrentListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.TorrentListResponse{}, ErrInvalidQuery
	}

	key := searchCacheKey(query, category)
	started := time.Now()
	var cached domain.TorrentListResponse
	if s.cacheLookup(ctx, key, &cached) {
		cached.Cached = true
		cached.ElapsedMS = time.Since(started).Milliseconds()
		return cached, nil
	}

	torrents, err := observeUpstream("search", func() ([]piratebay.PartialTorrent, error) {
		return s.client.Search(ctx, query, category)
	})
	if err != nil {
		return domain.TorrentListResponse{}, err
	}

	response := domain.TorrentListResponse{Items: s.mapListing(torrents)}
	response.TotalItems = len(response.Items)
	s.cacheStore(ctx, key, response)
	response.ElapsedMS = time.Since(started).Milliseconds()
	return response, nil
}

// Top100 returns the top-100 listing for a category.
func (s *Service) Top100(ctx context.Context, category piratebay.Category, last48h bool) (domain.TorrentListResponse, error) {
	key := top100CacheKey(category, last48h)
	started := time.Now()
	var cached domain.TorrentListResponse
	if s.cacheLookup(ctx, key, &cached) {
		cached.Cached = true
		cached.ElapsedMS = time.Since(started).Milliseconds()
		return cached, nil
	}

	torrents, err := observeUpstream("top100", func() ([]piratebay.PartialTorrent, error) {
		return s.client.Top100(ctx, category, last48h)
	})
	if err != nil {
		return domain.TorrentListResponse{}, err
	}

	response := domain.TorrentListResponse{Items: s.mapListing(torrents)}
	response.TotalItems = len(response.Items)
	s.cacheStore(ctx, key, response)
	response.ElapsedMS = time.Since(started).Milliseconds()
	return response, nil
}

// Torrent returns full metadata for one torrent.
func (s *Service) Torrent(ctx context.Context, id uint64) (domain.TorrentResponse, error) {
	key := "torrent|" + strconv.FormatUint(id, 10)
	started := time.Now()
	var cached domain.TorrentResponse
	if s.cacheLookup(ctx, key, &cached) {
		cached.Cached = true
		cached.ElapsedMS = time.Since(started).Milliseconds()
		return cached, nil
	}

	torrent, err := observeUpstream("torrent", func() (piratebay.Torrent, error) {
		return s.client.Torrent(ctx, id)
	})
	if err != nil {
		return domain.TorrentResponse{}, err
	}
	// Unknown IDs come back as an all-zero placeholder record.
	if torrent.ID == 0 {
		return domain.TorrentResponse{}, fmt.Errorf("torrent %d: %w", id, ErrNotFound)
	}

	response := domain.TorrentResponse{
		Torrent: domain.TorrentDetails{
			TorrentSummary: s.mapSummary(torrent.PartialTorrent),
			Description:    torrent.Descr,
			Language:       torrent.Language,
			TextLanguage:   torrent.TextLanguage,
		},
	}
	s.cacheStore(ctx, key, response)
	response.ElapsedMS = time.Since(started).Milliseconds()
	return response, nil
}

// Files returns the file listing of one torrent.
func (s *Service) Files(ctx context.Context, id uint64) (domain.FileListResponse, error) {
	key := "files|" + strconv.FormatUint(id, 10)
	started := time.Now()
	var cached domain.FileListResponse
	if s.cacheLookup(ctx, key, &cached) {
		cached.Cached = true
		cached.ElapsedMS = time.Since(started).Milliseconds()
		return cached, nil
	}

	files, err := observeUpstream("files", func() ([]piratebay.TorrentFile, error) {
		return s.client.TorrentFiles(ctx, id)
	})
	if err != nil {
		return domain.FileListResponse{}, err
	}

	response := domain.FileListResponse{
		TorrentID: id,
		Files:     make([]domain.TorrentFile, 0, len(files)),
	}
	for _, file := range files {
		response.Files = append(response.Files, domain.TorrentFile{
			Name:      file.Name,
			SizeBytes: file.Size,
		})
	}
	response.TotalFiles = len(response.Files)
	s.cacheStore(ctx, key, response)
	response.ElapsedMS = time.Since(started).Milliseconds()
	return response, nil
}

// mapListing converts listing rows to summaries, dropping the placeholder
// row the API returns instead of an empty listing.
func (s *Service) mapListing(torrents []piratebay.PartialTorrent) []domain.TorrentSummary {
	items := make([]domain.TorrentSummary, 0, len(torrents))
	for _, torrent := range torrents {
		if isPlaceholder(torrent) {
			continue
		}
		items = append(items, s.mapSummary(torrent))
	}
	return items
}

func (s *Service) mapSummary(torrent piratebay.PartialTorrent) domain.TorrentSummary {
	summary := domain.TorrentSummary{
		ID:        torrent.ID,
		Name:      torrent.Name,
		InfoHash:  torrent.InfoHash,
		Seeders:   torrent.Seeders,
		Leechers:  torrent.Leechers,
		NumFiles:  torrent.NumFiles,
		SizeBytes: torrent.Size,
		Username:  torrent.Username,
		Status:    string(torrent.Status),
		AddedAt:   torrent.Added,
		Category: domain.CategoryInfo{
			Code: torrent.Category.Code(),
			Name: torrent.Category.Name(),
		},
		IMDB: torrent.IMDB,
	}
	magnet, err := torrent.Magnet()
	if err != nil {
		// Serve the row without a magnet rather than dropping it.
		s.logger.Warn("skipping magnet link", "torrent_id", torrent.ID, "error", err)
		return summary
	}
	summary.Magnet = magnet
	return summary
}

// isPlaceholder reports the "No results returned" row apibay serves instead
// of an empty listing, and any row with a zeroed info hash.
func isPlaceholder(torrent piratebay.PartialTorrent) bool {
	if torrent.ID == 0 && torrent.Name == "No results returned" {
		return true
	}
	return torrent.InfoHash == "" || strings.Trim(torrent.InfoHash, "0") == ""
}

func searchCacheKey(query string, category *piratebay.Category) string {
	cat := ""
	if category != nil {
		cat = strconv.FormatUint(uint64(category.Code()), 10)
	}
	return "search|q=" + strings.ToLower(query) + "|cat=" + cat
}

func top100CacheKey(category piratebay.Category, last48h bool) string {
	key := "top100|cat=" + strconv.FormatUint(uint64(category.Code()), 10)
	if last48h {
		key += "|48h"
	}
	return key
}

// cacheLookup consults Redis first, then the in-memory cache. Redis errors
// degrade to a miss.
func (s *Service) cacheLookup(ctx context.Context, key string, dest any) bool {
	if s.cacheDisabled {
		return false
	}
	now := time.Now()

	if s.redisCache != nil {
		payload, found, err := s.redisCache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("redis cache lookup failed", "key", key, "error", err)
		} else if found {
			if err := json.Unmarshal(payload, dest); err == nil {
				metrics.CacheHitsTotal.Inc()
				// Keep a local copy so the next lookup skips the round trip.
				s.cache.set(key, payload, now)
				return true
			}
		}
	}

	payload, ok := s.cache.get(key, now)
	if !ok {
		metrics.CacheMissesTotal.Inc()
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		metrics.CacheMissesTotal.Inc()
		return false
	}
	metrics.CacheHitsTotal.Inc()
	return true
}

func (s *Service) cacheStore(ctx context.Context, key string, value any) {
	if s.cacheDisabled {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if s.redisCache != nil {
		if err := s.redisCache.Set(ctx, key, payload, s.cache.ttl); err != nil {
			s.logger.Warn("redis cache store failed", "key", key, "error", err)
		}
	}
	s.cache.set(key, payload, time.Now())
}

// observeUpstream wraps one apibay call with request metrics.
func observeUpstream[T any](operation string, call func() (T, error)) (T, error) {
	started := time.Now()
	result, err := call()
	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()
	return result, err
}
