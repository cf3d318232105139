package index

import (
	"fmt"
	"testing"
	"time"
)

func TestMemoryCacheExpiry(t *testing.T) {
	cache := newMemoryCache(time.Minute, 10)
	now := time.Now()

	cache.set("k", []byte("v"), now)
	if payload, ok := cache.get("k", now.Add(30*time.Second)); !ok || string(payload) != "v" {
		t.Fatalf("expected hit before expiry, got %q %v", payload, ok)
	}
	if _, ok := cache.get("k", now.Add(2*time.Minute)); ok {
		t.Fatal("expected miss after expiry")
	}
	// The expired entry was dropped, not just hidden.
	cache.mu.Lock()
	_, present := cache.entries["k"]
	cache.mu.Unlock()
	if present {
		t.Fatal("expired entry still stored")
	}
}

func TestMemoryCacheTrimsOldest(t *testing.T) {
	cache := newMemoryCache(time.Hour, 3)
	base := time.Now()

	for i := 0; i < 5; i++ {
		cache.set(fmt.Sprintf("k%d", i), []byte("v"), base.Add(time.Duration(i)*time.Second))
	}

	cache.mu.Lock()
	size := len(cache.entries)
	_, oldest := cache.entries["k0"]
	_, newest := cache.entries["k4"]
	cache.mu.Unlock()

	if size != 3 {
		t.Fatalf("cache holds %d entries, want 3", size)
	}
	if oldest {
		t.Error("oldest entry survived the trim")
	}
	if !newest {
		t.Error("newest entry was trimmed")
	}
}

func TestMemoryCacheDefaults(t *testing.T) {
	cache := newMemoryCache(0, 0)
	if cache.ttl != defaultCacheTTL {
		t.Errorf("ttl = %v", cache.ttl)
	}
	if cache.maxEntries != defaultCacheMaxEntries {
		t.Errorf("maxEntries = %d", cache.maxEntries)
	}
}
