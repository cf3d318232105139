// Command scrapecategories regenerates the category table and tracker list
// from a Pirate Bay mirror. The -format=go output replaces
// internal/piratebay/scraped.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"torrentmeta/piratebay/internal/scrape"
)

func main() {
	mirror := flag.String("mirror", "https://thepiratebay.org", "mirror to scrape")
	format := flag.String("format", "text", "output format: text, json or go")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	data, err := scrape.Fetch(ctx, &http.Client{}, *mirror)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrapecategories: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "text":
		err = scrape.RenderText(os.Stdout, data)
	case "json":
		err = scrape.RenderJSON(os.Stdout, data)
	case "go":
		err = scrape.RenderGo(os.Stdout, data)
	default:
		fmt.Fprintf(os.Stderr, "scrapecategories: unknown format %q\n", *format)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrapecategories: %v\n", err)
		os.Exit(1)
	}
}
