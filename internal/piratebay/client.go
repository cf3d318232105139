package piratebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultEndpoint  = "https://apibay.org"
	defaultUserAgent = "piratebay-metadata/1.0"

	maxResponseBytes = 8 * 1024 * 1024
)

type Config struct {
	Endpoint  string
	UserAgent string
	Client    *http.Client
}

// Client issues requests against the apibay JSON API. The injected
// http.Client is reused across all operations; timeouts, proxies and
// connection pooling are whatever the caller configured on it. The Client
// itself never retries and never caches.
type Client struct {
	client    *http.Client
	endpoint  string
	userAgent string
}

func NewClient(cfg Config) *Client {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		client:    client,
		endpoint:  strings.TrimRight(endpoint, "/"),
		userAgent: userAgent,
	}
}

// Search queries torrents by name match, optionally restricted to a
// category. A nil category searches everything.
func (c *Client) Search(ctx context.Context, query string, category *Category) ([]PartialTorrent, error) {
	cat := ""
	if category != nil {
		cat = strconv.FormatUint(uint64(category.Code()), 10)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("cat", cat)

	var torrents []PartialTorrent
	if err := c.getJSON(ctx, "/q.php", params, &torrents); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return torrents, nil
}

// Top100 fetches the top-100 listing for a category. With last48h set, only
// torrents uploaded in the last 48 hours are listed.
func (c *Client) Top100(ctx context.Context, category Category, last48h bool) ([]PartialTorrent, error) {
	suffix := ""
	if last48h {
		suffix = "_48h"
	}
	path := fmt.Sprintf("/precompiled/data_top100%s_%d.json", suffix, category.Code())

	var torrents []PartialTorrent
	if err := c.getJSON(ctx, path, nil, &torrents); err != nil {
		return nil, fmt.Errorf("top100: %w", err)
	}
	return torrents, nil
}

// Torrent fetches full metadata for a single torrent by ID.
func (c *Client) Torrent(ctx context.Context, id uint64) (Torrent, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatUint(id, 10))

	var torrent Torrent
	if err := c.getJSON(ctx, "/t.php", params, &torrent); err != nil {
		return Torrent{}, fmt.Errorf("torrent %d: %w", id, err)
	}
	return torrent, nil
}

// TorrentFiles fetches the file listing of a torrent by ID.
func (c *Client) TorrentFiles(ctx context.Context, id uint64) ([]TorrentFile, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatUint(id, 10))

	var files []TorrentFile
	if err := c.getJSON(ctx, "/f.php", params, &files); err != nil {
		return nil, fmt.Errorf("torrent %d files: %w", id, err)
	}
	return files, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	uri, err := url.Parse(c.endpoint + path)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if len(params) > 0 {
		uri.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("apibay HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
