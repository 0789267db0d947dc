package nlp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTagEntities(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/entities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer token")
		}
		w.Write([]byte(`{"entities":[{"text":"Dhaka","label":"GPE"},{"text":"Sheikh Hasina","label":"PERSON"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	entities, err := client.TagEntities(context.Background(), "Sheikh Hasina spoke in Dhaka.")
	if err != nil {
		t.Fatalf("tag entities: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
	if entities[0].Text != "Dhaka" || entities[0].Label != "GPE" {
		t.Fatalf("unexpected entity: %+v", entities[0])
	}
}

func TestTagEntitiesErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.TagEntities(context.Background(), "text"); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}
