package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBrave_Fetch_ParsesResults(t *testing.T) {
	t.Parallel()
	var gotToken, gotSafe string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Subscription-Token")
		gotSafe = r.URL.Query().Get("safesearch")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"web": map[string]any{
				"results": []map[string]any{
					{"title": "Hit", "url": "https://brave.example/", "description": "desc"},
				},
			},
		})
	}))
	defer srv.Close()

	b := &Brave{BaseURL: srv.URL, APIKey: "token123"}
	got, eerr := b.Fetch(context.Background(), Query{Text: "q", SafeSearch: 2}, srv.Client())
	if eerr != nil {
		t.Fatalf("fetch error: %v", eerr)
	}
	if gotToken != "token123" {
		t.Fatalf("subscription token not sent, got %q", gotToken)
	}
	if gotSafe != "strict" {
		t.Fatalf("safesearch mapping wrong, got %q", gotSafe)
	}
	r, ok := got["https://brave.example/"]
	if !ok || r.Title != "Hit" || r.Description != "desc" {
		t.Fatalf("unexpected results: %v", got)
	}
}

func TestBrave_Fetch_UnauthorizedIsRequestError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	b := &Brave{BaseURL: srv.URL}
	_, eerr := b.Fetch(context.Background(), Query{Text: "q"}, srv.Client())
	if eerr == nil || eerr.Kind != RequestError {
		t.Fatalf("expected RequestError, got %v", eerr)
	}
}
