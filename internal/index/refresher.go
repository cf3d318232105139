package index

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"torrentmeta/piratebay/internal/domain"
	"torrentmeta/piratebay/internal/piratebay"
)

const (
	defaultRefreshInterval = 5 * time.Minute
	refreshTimeout         = 30 * time.Second

	// Bound parallel refreshes so a long category list does not hammer
	// apibay at every tick.
	maxConcurrentRefreshes = 3
)

// StartBackground launches the top-100 refresher when categories were
// configured. It returns immediately; the refresher stops when ctx is
// cancelled.
func (s *Service) StartBackground(ctx context.Context) {
	if len(s.refreshCategories) == 0 || s.cacheDisabled {
		return
	}
	go s.runRefresher(ctx)
}

func (s *Service) runRefresher(ctx context.Context) {
	interval := s.refreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	// Warm once at startup, then on every tick.
	s.runRefreshCycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runRefreshCycle(ctx)
		}
	}
}

func (s *Service) runRefreshCycle(ctx context.Context) {
	sem := semaphore.NewWeighted(maxConcurrentRefreshes)
	var wg sync.WaitGroup

	for _, category := range s.refreshCategories {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		default:
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
			defer cancel()

			if err := s.refreshTop100(refreshCtx, category); err != nil {
				s.logger.Warn("top100 refresh failed",
					"category", category.Code(), "error", err)
			}
		}()
	}

	wg.Wait()
}

// refreshTop100 re-fetches one listing and overwrites its cache entry
// regardless of freshness.
func (s *Service) refreshTop100(ctx context.Context, category piratebay.Category) error {
	torrents, err := observeUpstream("top100", func() ([]piratebay.PartialTorrent, error) {
		return s.client.Top100(ctx, category, false)
	})
	if err != nil {
		return err
	}
	response := domain.TorrentListResponse{Items: s.mapListing(torrents)}
	response.TotalItems = len(response.Items)
	s.cacheStore(ctx, top100CacheKey(category, false), response)
	return nil
}
