package piratebay

import (
	"fmt"
	"net/url"
)

// InvalidInfoHashError reports an info hash that cannot form a valid magnet
// URI. The API hands out info hashes verbatim, so this indicates corrupt
// upstream data rather than a recoverable runtime condition; callers should
// treat it as fatal.
type InvalidInfoHashError struct {
	InfoHash string
	err      error
}

func (e *InvalidInfoHashError) Error() string {
	return fmt.Sprintf("info hash %q does not form a valid magnet link: %v", e.InfoHash, e.err)
}

func (e *InvalidInfoHashError) Unwrap() error {
	return e.err
}

// Magnet builds a magnet link from the torrent's info hash and name,
// carrying one tr parameter per known tracker.
func (t *PartialTorrent) Magnet() (string, error) {
	// The xt value is written by hand: a query encoder would escape the
	// colons in urn:btih.
	base := "magnet:?xt=urn:btih:" + t.InfoHash
	if _, err := url.Parse(base); err != nil {
		return "", &InvalidInfoHashError{InfoHash: t.InfoHash, err: err}
	}

	params := url.Values{}
	params.Set("dn", t.Name)
	for _, tracker := range magnetTrackers {
		params.Add("tr", tracker)
	}
	return base + "&" + params.Encode(), nil
}

// Trackers returns the trackers appended to generated magnet links.
func Trackers() []string {
	return append([]string(nil), magnetTrackers...)
}
