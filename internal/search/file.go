package search

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
)

// FileProvider serves results from a local JSON file for offline runs and
// tests. The file holds an array of objects:
// {"title": "...", "url": "...", "description": "..."}.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) QueryTypes() QueryType { return TypeText }

func (f *FileProvider) Fetch(_ context.Context, q Query, _ *http.Client) (map[string]Result, *EngineError) {
	fail := func(kind ErrorKind) (map[string]Result, *EngineError) {
		return nil, &EngineError{Kind: kind, Engine: f.Name()}
	}
	if strings.TrimSpace(f.Path) == "" {
		return fail(UnexpectedError)
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return fail(RequestError)
	}
	var raw []Result
	if err := json.Unmarshal(b, &raw); err != nil {
		return fail(UnexpectedError)
	}
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	out := make(map[string]Result, len(raw))
	for _, r := range raw {
		if r.URL == "" || r.Title == "" {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		r.Engines = []string{f.Name()}
		out[r.URL] = r
	}
	if len(out) == 0 {
		return fail(EmptyResultSet)
	}
	return out, nil
}
