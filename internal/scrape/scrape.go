// Package scrape extracts the category table and magnet trackers from
// thepiratebay.org's main.js. The site ships both embedded in its frontend
// script, so the parse is regex-based and tied to the current markup.
package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

const (
	scriptPath        = "/static/main.js"
	maxScriptBytes    = 4 * 1024 * 1024
	defaultMirror     = "https://thepiratebay.org"
	generatedFileNote = "// Code generated by cmd/scrapecategories. DO NOT EDIT."
)

var (
	// Matches `category:207` followed by the option label, as the site's
	// category picker renders it. Brittle, but so is the source.
	categoryPattern = regexp.MustCompile(`category:(\d{3})[^>]*>([^<]+)<`)
	trackerPattern  = regexp.MustCompile(`encodeURIComponent\('(udp://[^']+)'`)
)

type Subcategory struct {
	Code uint16 `json:"code"`
	Name string `json:"name"`
}

// ParentCategory is a top-level category (code divisible by 100) with its
// subcategories.
type ParentCategory struct {
	Code          uint16        `json:"code"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Data struct {
	Categories []ParentCategory `json:"categories"`
	Trackers   []string         `json:"trackers"`
}

// FlatCategory is one row of the flattened table: subcategory names are
// prefixed with their parent ("Video: HD - Movies").
type FlatCategory struct {
	Code uint16
	Name string
}

// Fetch downloads and parses the frontend script from a mirror. Redirects
// are not followed: mirrors answer search-engine probes with redirects to
// unrelated hosts.
func Fetch(ctx context.Context, client *http.Client, mirror string) (Data, error) {
	if client == nil {
		client = &http.Client{}
	}
	mirror = strings.TrimRight(strings.TrimSpace(mirror), "/")
	if mirror == "" {
		mirror = defaultMirror
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mirror+scriptPath, nil)
	if err != nil {
		return Data{}, err
	}

	noRedirects := *client
	noRedirects.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := noRedirects.Do(req)
	if err != nil {
		return Data{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Data{}, fmt.Errorf("fetch %s: HTTP %d", mirror+scriptPath, resp.StatusCode)
	}
	script, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptBytes))
	if err != nil {
		return Data{}, err
	}
	return Parse(string(script))
}

// Parse extracts categories and trackers from the script text. Codes
// divisible by 100 open a new parent; every other code attaches to the most
// recent parent.
func Parse(script string) (Data, error) {
	var data Data
	for _, match := range categoryPattern.FindAllStringSubmatch(script, -1) {
		code, err := strconv.ParseUint(match[1], 10, 16)
		if err != nil {
			return Data{}, fmt.Errorf("category code %q: %w", match[1], err)
		}
		name := strings.TrimSpace(match[2])
		if code%100 == 0 {
			data.Categories = append(data.Categories, ParentCategory{
				Code: uint16(code),
				Name: name,
			})
			continue
		}
		if len(data.Categories) == 0 {
			return Data{}, fmt.Errorf("subcategory %d %q before any parent", code, name)
		}
		parent := &data.Categories[len(data.Categories)-1]
		parent.Subcategories = append(parent.Subcategories, Subcategory{
			Code: uint16(code),
			Name: name,
		})
	}
	if len(data.Categories) == 0 {
		return Data{}, errors.New("no categories found; the script markup has changed")
	}

	for _, match := range trackerPattern.FindAllStringSubmatch(script, -1) {
		data.Trackers = append(data.Trackers, match[1])
	}
	if len(data.Trackers) == 0 {
		return Data{}, errors.New("no trackers found; the script markup has changed")
	}
	return data, nil
}

// Flatten returns the table in code order with parent-prefixed names.
func (d Data) Flatten() []FlatCategory {
	flat := make([]FlatCategory, 0, len(d.Categories)*8)
	for _, parent := range d.Categories {
		flat = append(flat, FlatCategory{Code: parent.Code, Name: parent.Name})
		for _, sub := range parent.Subcategories {
			flat = append(flat, FlatCategory{
				Code: sub.Code,
				Name: parent.Name + ": " + sub.Name,
			})
		}
	}
	return flat
}

// RenderText writes a human-readable listing.
func RenderText(w io.Writer, data Data) error {
	if _, err := fmt.Fprintln(w, "Categories:"); err != nil {
		return err
	}
	for _, parent := range data.Categories {
		fmt.Fprintf(w, "  %d %s\n", parent.Code, parent.Name)
		for _, sub := range parent.Subcategories {
			fmt.Fprintf(w, "    %d %s: %s\n", sub.Code, parent.Name, sub.Name)
		}
	}
	fmt.Fprintln(w, "\nTrackers:")
	for _, tracker := range data.Trackers {
		fmt.Fprintf(w, "  %s\n", tracker)
	}
	return nil
}

// RenderJSON writes the structured form.
func RenderJSON(w io.Writer, data Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	return encoder.Encode(data)
}

// RenderGo writes the table as Go source for internal/piratebay/scraped.go.
func RenderGo(w io.Writer, data Data) error {
	var b strings.Builder
	b.WriteString(generatedFileNote + "\n\n")
	b.WriteString("package piratebay\n\n")
	b.WriteString("type categoryEntry struct {\n\tcode uint16\n\tname string\n}\n\n")
	b.WriteString("// categoryTable maps category codes to display names as scraped from\n")
	b.WriteString("// thepiratebay.org's main.js.\n")
	b.WriteString("var categoryTable = []categoryEntry{\n")
	for _, entry := range data.Flatten() {
		fmt.Fprintf(&b, "\t{%d, %q},\n", entry.Code, entry.Name)
	}
	b.WriteString("}\n\n")
	b.WriteString("// magnetTrackers are the trackers thepiratebay.org appends to its own\n")
	b.WriteString("// magnet links.\n")
	b.WriteString("var magnetTrackers = []string{\n")
	for _, tracker := range data.Trackers {
		fmt.Fprintf(&b, "\t%q,\n", tracker)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
