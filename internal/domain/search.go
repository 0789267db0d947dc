package domain

import "time"

// SearchResult is one raw candidate article returned by the search
// provider, before any article-shape gating.
type SearchResult struct {
	URL         string
	Title       string
	Text        string
	Author      string
	Image       string
	Favicon     string
	Score       float64
	PublishedAt time.Time
	Links       []string
}
