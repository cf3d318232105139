// Package piratebay is a client for The Pirate Bay's JSON API at apibay.org.
// It covers metadata only: searching, top-100 listings, single-torrent
// lookups and file listings. It is not a torrent client.
package piratebay

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PartialTorrent carries the attributes returned by the listing endpoints
// (search and top-100). The remaining attributes require a Torrent lookup
// by ID.
type PartialTorrent struct {
	ID       uint64
	Name     string
	InfoHash string
	Leechers uint64
	Seeders  uint64
	NumFiles uint64
	Size     uint64
	Username string
	Added    time.Time
	Status   UserStatus
	Category Category

	// IMDB is the external movie-database identifier, empty when the API
	// reports none.
	IMDB string
}

func (t *PartialTorrent) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		Name     string          `json:"name"`
		InfoHash string          `json:"info_hash"`
		Leechers json.RawMessage `json:"leechers"`
		Seeders  json.RawMessage `json:"seeders"`
		NumFiles json.RawMessage `json:"num_files"`
		Size     json.RawMessage `json:"size"`
		Username string          `json:"username"`
		Added    json.RawMessage `json:"added"`
		Status   UserStatus      `json:"status"`
		Category Category        `json:"category"`
		IMDB     json.RawMessage `json:"imdb"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if t.ID, err = flexUint64(raw.ID); err != nil {
		return fmt.Errorf("field id: %w", err)
	}
	if t.Leechers, err = flexUint64(raw.Leechers); err != nil {
		return fmt.Errorf("field leechers: %w", err)
	}
	if t.Seeders, err = flexUint64(raw.Seeders); err != nil {
		return fmt.Errorf("field seeders: %w", err)
	}
	if t.NumFiles, err = flexUint64(raw.NumFiles); err != nil {
		return fmt.Errorf("field num_files: %w", err)
	}
	if t.Size, err = flexUint64(raw.Size); err != nil {
		return fmt.Errorf("field size: %w", err)
	}
	if t.Added, err = flexUnixTime(raw.Added); err != nil {
		return fmt.Errorf("field added: %w", err)
	}
	if t.IMDB, err = optionalString(raw.IMDB); err != nil {
		return fmt.Errorf("field imdb: %w", err)
	}
	t.Name = raw.Name
	t.InfoHash = raw.InfoHash
	t.Username = raw.Username
	t.Status = raw.Status
	t.Category = raw.Category
	return nil
}

// Torrent is the full detail record returned when requesting a single
// torrent by ID. It embeds a PartialTorrent, so all listing attributes are
// promoted onto it.
type Torrent struct {
	PartialTorrent

	// Descr is the free-text description.
	Descr string

	// Language and TextLanguage are numeric codes with no documented
	// upstream meaning; they are preserved as opaque optional values.
	Language     *uint64
	TextLanguage *uint64
}

func (t *Torrent) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &t.PartialTorrent); err != nil {
		return err
	}
	var raw struct {
		Descr        string  `json:"descr"`
		Language     *uint64 `json:"language"`
		TextLanguage *uint64 `json:"textlanguage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Descr = raw.Descr
	t.Language = raw.Language
	t.TextLanguage = raw.TextLanguage
	return nil
}

// UserStatus is the trust level of an uploader.
type UserStatus string

const (
	StatusMember    UserStatus = "member"
	StatusTrusted   UserStatus = "trusted"
	StatusHelper    UserStatus = "helper"
	StatusVIP       UserStatus = "vip"
	StatusModerator UserStatus = "moderator"
	StatusSuperMod  UserStatus = "supermod"
	StatusAdmin     UserStatus = "admin"
)

func (s *UserStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("expected a user status string")
	}
	switch status := UserStatus(strings.ToLower(raw)); status {
	case StatusMember, StatusTrusted, StatusHelper, StatusVIP,
		StatusModerator, StatusSuperMod, StatusAdmin:
		*s = status
		return nil
	default:
		return fmt.Errorf("unknown user status %q", raw)
	}
}

// TorrentFile is one entry in a torrent's file listing. The API wraps both
// attributes in single-element arrays, unwrapped here.
type TorrentFile struct {
	Name string
	Size uint64
}

func (f *TorrentFile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name json.RawMessage `json:"name"`
		Size json.RawMessage `json:"size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var err error
	if f.Name, err = unitArray[string](raw.Name); err != nil {
		return fmt.Errorf("field name: %w", err)
	}
	if f.Size, err = unitArray[uint64](raw.Size); err != nil {
		return fmt.Errorf("field size: %w", err)
	}
	return nil
}
