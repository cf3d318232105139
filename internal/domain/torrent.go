package domain

import "time"

// CategoryInfo is the resolved category of a torrent: the numeric code the
// API reported plus its display name.
type CategoryInfo struct {
	Code uint16 `json:"code"`
	Name string `json:"name"`
}

// TorrentSummary is one row of a listing (search or top-100).
type TorrentSummary struct {
	ID        uint64       `json:"id"`
	Name      string       `json:"name"`
	InfoHash  string       `json:"infoHash"`
	Magnet    string       `json:"magnet,omitempty"`
	Seeders   uint64       `json:"seeders"`
	Leechers  uint64       `json:"leechers"`
	NumFiles  uint64       `json:"numFiles"`
	SizeBytes uint64       `json:"sizeBytes"`
	Username  string       `json:"username"`
	Status    string       `json:"status"`
	AddedAt   time.Time    `json:"addedAt"`
	Category  CategoryInfo `json:"category"`
	IMDB      string       `json:"imdb,omitempty"`
}

// TorrentDetails extends a summary with the attributes only the
// single-torrent endpoint returns.
type TorrentDetails struct {
	TorrentSummary
	Description  string  `json:"description,omitempty"`
	Language     *uint64 `json:"language,omitempty"`
	TextLanguage *uint64 `json:"textLanguage,omitempty"`
}

// TorrentFile is one entry of a torrent's file listing.
type TorrentFile struct {
	Name      string `json:"name"`
	SizeBytes uint64 `json:"sizeBytes"`
}

type TorrentListResponse struct {
	Items      []TorrentSummary `json:"items"`
	TotalItems int              `json:"totalItems"`
	Cached     bool             `json:"cached"`
	ElapsedMS  int64            `json:"elapsedMs"`
}

type TorrentResponse struct {
	Torrent   TorrentDetails `json:"torrent"`
	Cached    bool           `json:"cached"`
	ElapsedMS int64          `json:"elapsedMs"`
}

type FileListResponse struct {
	TorrentID  uint64        `json:"torrentId"`
	Files      []TorrentFile `json:"files"`
	TotalFiles int           `json:"totalFiles"`
	Cached     bool          `json:"cached"`
	ElapsedMS  int64         `json:"elapsedMs"`
}
