package piratebay

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestMagnet(t *testing.T) {
	torrent := PartialTorrent{
		Name:     "Big Buck Bunny (2008)",
		InfoHash: "DD8255ECDC7CA55FB0BBF81323D87062DB1F6D1C",
	}
	magnet, err := torrent.Magnet()
	if err != nil {
		t.Fatalf("magnet: %v", err)
	}

	// The xt parameter carries the hash verbatim, colons unescaped.
	wantPrefix := "magnet:?xt=urn:btih:DD8255ECDC7CA55FB0BBF81323D87062DB1F6D1C&"
	if !strings.HasPrefix(magnet, wantPrefix) {
		t.Fatalf("magnet %q does not start with %q", magnet, wantPrefix)
	}
	if !strings.Contains(magnet, "dn=Big+Buck+Bunny+%282008%29") {
		t.Fatalf("magnet %q is missing the encoded display name", magnet)
	}
	if got, want := strings.Count(magnet, "&tr="), len(Trackers()); got != want {
		t.Fatalf("magnet carries %d tr parameters, want %d", got, want)
	}

	// The part after the hand-built prefix is standard query encoding.
	params, err := url.ParseQuery(magnet[len(wantPrefix):])
	if err != nil {
		t.Fatalf("parse magnet query: %v", err)
	}
	if got := params.Get("dn"); got != torrent.Name {
		t.Fatalf("dn = %q, want %q", got, torrent.Name)
	}
	trackers := params["tr"]
	if len(trackers) != len(Trackers()) {
		t.Fatalf("decoded %d trackers, want %d", len(trackers), len(Trackers()))
	}
	for i, want := range Trackers() {
		if trackers[i] != want {
			t.Fatalf("tracker %d = %q, want %q", i, trackers[i], want)
		}
	}
}

func TestMagnetInvalidInfoHash(t *testing.T) {
	torrent := PartialTorrent{
		Name:     "broken",
		InfoHash: "DD8255EC\nDC7CA55F",
	}
	_, err := torrent.Magnet()
	if err == nil {
		t.Fatal("expected an error for a control character in the hash")
	}
	var invalid *InvalidInfoHashError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInfoHashError, got %T: %v", err, err)
	}
	if invalid.InfoHash != torrent.InfoHash {
		t.Fatalf("error carries hash %q, want %q", invalid.InfoHash, torrent.InfoHash)
	}
	if errors.Unwrap(invalid) == nil {
		t.Fatal("expected a wrapped parse error")
	}
}

func TestTrackersReturnsCopy(t *testing.T) {
	first := Trackers()
	first[0] = "udp://mutated.example:1337"
	if second := Trackers(); second[0] == first[0] {
		t.Fatal("Trackers must not expose the internal slice")
	}
}
