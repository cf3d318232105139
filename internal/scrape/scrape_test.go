package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleScript = `
var cats = '<option value="category:100">Audio</option>' +
	'<option value="category:101 sub">Music</option>' +
	'<option value="category:104 sub">FLAC</option>' +
	'<option value="category:200">Video</option>' +
	'<option value="category:207 sub">HD - Movies</option>';
var magnet = "&tr=" + encodeURIComponent('udp://tracker.opentrackr.org:1337') +
	"&tr=" + encodeURIComponent('udp://open.stealth.si:80/announce');
`

func TestParse(t *testing.T) {
	data, err := Parse(sampleScript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(data.Categories) != 2 {
		t.Fatalf("got %d parents", len(data.Categories))
	}
	audio := data.Categories[0]
	if audio.Code != 100 || audio.Name != "Audio" {
		t.Errorf("parent 0 = %+v", audio)
	}
	if len(audio.Subcategories) != 2 || audio.Subcategories[1].Name != "FLAC" {
		t.Errorf("audio subcategories = %+v", audio.Subcategories)
	}
	if len(data.Trackers) != 2 {
		t.Fatalf("got %d trackers", len(data.Trackers))
	}
	if data.Trackers[0] != "udp://tracker.opentrackr.org:1337" {
		t.Errorf("tracker 0 = %q", data.Trackers[0])
	}
}

func TestParseRejectsChangedMarkup(t *testing.T) {
	cases := []struct {
		name   string
		script string
	}{
		{"empty script", ""},
		{"categories without trackers", `<option value="category:100">Audio</option>`},
		{"trackers without categories", `encodeURIComponent('udp://t.example:80')`},
		{"orphan subcategory", `category:101 x>Music< encodeURIComponent('udp://t.example:80'`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.script); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	data, err := Parse(sampleScript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	flat := data.Flatten()
	want := []FlatCategory{
		{100, "Audio"},
		{101, "Audio: Music"},
		{104, "Audio: FLAC"},
		{200, "Video"},
		{207, "Video: HD - Movies"},
	}
	if len(flat) != len(want) {
		t.Fatalf("got %d rows, want %d", len(flat), len(want))
	}
	for i := range want {
		if flat[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, flat[i], want[i])
		}
	}
}

func TestRenderGo(t *testing.T) {
	data, err := Parse(sampleScript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out strings.Builder
	if err := RenderGo(&out, data); err != nil {
		t.Fatalf("render: %v", err)
	}
	source := out.String()
	for _, want := range []string{
		"package piratebay",
		"DO NOT EDIT",
		`{207, "Video: HD - Movies"},`,
		`"udp://open.stealth.si:80/announce",`,
	} {
		if !strings.Contains(source, want) {
			t.Errorf("generated source is missing %q", want)
		}
	}
}

func TestFetch(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(sampleScript))
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), nil, server.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/static/main.js" {
		t.Errorf("path = %q", gotPath)
	}
	if len(data.Categories) == 0 || len(data.Trackers) == 0 {
		t.Fatalf("data = %+v", data)
	}
}

func TestFetchDoesNotFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://unrelated.example/", http.StatusFound)
	}))
	defer server.Close()

	if _, err := Fetch(context.Background(), nil, server.URL); err == nil {
		t.Fatal("expected error for a redirecting mirror")
	}
}
