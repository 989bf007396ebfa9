package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const litePage = `<!DOCTYPE html>
<html><body><table>
<tr><td><a rel="nofollow" href="https://one.example/page" class="result-link">First hit</a></td></tr>
<tr><td class="result-snippet">First snippet text.</td></tr>
<tr><td><a rel="nofollow" href="https://two.example/" class="result-link">Second hit</a></td></tr>
<tr><td class="result-snippet">Second snippet text.</td></tr>
<tr><td><a href="https://nav.example/" class="nav-link">next</a></td></tr>
</table></body></html>`

func TestDuckDuckGo_Fetch_ParsesLiteMarkup(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(litePage))
	}))
	defer srv.Close()

	d := &DuckDuckGo{BaseURL: srv.URL}
	got, eerr := d.Fetch(context.Background(), Query{Text: "q"}, srv.Client())
	if eerr != nil {
		t.Fatalf("fetch error: %v", eerr)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d: %v", len(got), got)
	}
	first, ok := got["https://one.example/page"]
	if !ok {
		t.Fatalf("missing first result: %v", got)
	}
	if first.Title != "First hit" || first.Description != "First snippet text." {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if _, ok := got["https://nav.example/"]; ok {
		t.Fatalf("navigation links must not become results")
	}
}

func TestDuckDuckGo_Fetch_NoResultsIsEmptyResultSet(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>No results.</body></html>"))
	}))
	defer srv.Close()

	d := &DuckDuckGo{BaseURL: srv.URL}
	_, eerr := d.Fetch(context.Background(), Query{Text: "q"}, srv.Client())
	if eerr == nil || eerr.Kind != EmptyResultSet {
		t.Fatalf("expected EmptyResultSet, got %v", eerr)
	}
}

func TestDuckDuckGo_SafeSearchMapping(t *testing.T) {
	for level, want := range map[int]string{0: "-2", 1: "-1", 2: "1", 5: "1"} {
		if got := duckDuckGoSafe(level); got != want {
			t.Fatalf("level %d: want %q, got %q", level, want, got)
		}
	}
}
