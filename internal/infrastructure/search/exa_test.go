package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"simsanalytics/internal/config"
)

func TestSearchRequestShape(t *testing.T) {
	t.Parallel()

	var captured searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.Header.Get("x-api-key") != "secret" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"url":"https://thedailystar.net/news/2024/talks","title":"Talks","text":"body","author":"Desk","score":0.91,"publishedDate":"2024-05-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	client := NewExaClient(config.SearchConfig{
		Endpoint:   srv.URL,
		APIKey:     "secret",
		Query:      "Bangladesh India relations news",
		NumResults: 7,
	}, []string{"thedailystar.net", "reuters.com"}, nil)

	results, err := client.Search(context.Background())
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if captured.Category != "news" || captured.Livecrawl != "always" || !captured.Text {
		t.Fatalf("unexpected request payload: %+v", captured)
	}
	if captured.NumResults != 7 || len(captured.IncludeDomains) != 2 {
		t.Fatalf("config not carried into payload: %+v", captured)
	}
	if len(captured.IncludeText) != 1 || captured.IncludeText[0] != "Bangladesh" {
		t.Fatalf("include-text constraint missing: %+v", captured.IncludeText)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.URL != "https://thedailystar.net/news/2024/talks" || r.Title != "Talks" || r.Author != "Desk" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.PublishedAt.IsZero() {
		t.Fatalf("published date not parsed")
	}
	if r.PublishedAt.Year() != 2024 || r.PublishedAt.Month() != 5 {
		t.Fatalf("wrong published date: %s", r.PublishedAt)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewExaClient(config.SearchConfig{Endpoint: srv.URL, APIKey: "secret"}, nil, nil)
	if _, err := client.Search(context.Background()); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestSearchRequiresConfiguration(t *testing.T) {
	t.Parallel()

	client := NewExaClient(config.SearchConfig{}, nil, nil)
	if _, err := client.Search(context.Background()); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}

func TestParsePublished(t *testing.T) {
	t.Parallel()

	if ts := parsePublished("2024-05-01"); ts.IsZero() || ts.Day() != 1 {
		t.Fatalf("date-only layout not parsed: %s", ts)
	}
	if ts := parsePublished("not a date"); !ts.IsZero() {
		t.Fatalf("garbage must yield zero time")
	}
	if ts := parsePublished(""); !ts.IsZero() {
		t.Fatalf("empty must yield zero time")
	}
}
