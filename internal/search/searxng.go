package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SearxNG queries a SearxNG instance's /search endpoint in JSON mode.
type SearxNG struct {
	BaseURL   string
	APIKey    string // optional
	UserAgent string // optional custom UA
}

func (s *SearxNG) Name() string { return "searx" }

func (s *SearxNG) QueryTypes() QueryType {
	return TypeText | TypeVideo | TypeImage | TypeFile | TypeAutoCompletion
}

func (s *SearxNG) Fetch(ctx context.Context, q Query, client *http.Client) (map[string]Result, *EngineError) {
	fail := func(kind ErrorKind) (map[string]Result, *EngineError) {
		return nil, &EngineError{Kind: kind, Engine: s.Name()}
	}
	if s.BaseURL == "" {
		return fail(UnexpectedError)
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fail(UnexpectedError)
	}
	if !strings.HasSuffix(u.Path, "/search") {
		u.Path = strings.TrimRight(u.Path, "/") + "/search"
	}
	vals := u.Query()
	vals.Set("q", q.Text)
	vals.Set("format", "json")
	vals.Set("categories", searxCategories(q.Types))
	vals.Set("pageno", fmt.Sprintf("%d", q.Page+1))
	vals.Set("safesearch", fmt.Sprintf("%d", q.SafeSearch))
	if q.Relevancy != Anytime {
		vals.Set("time_range", q.Relevancy.String())
	}
	if q.Language != "" {
		vals.Set("language", q.Language)
	} else {
		vals.Set("language", "auto")
	}
	if s.APIKey != "" {
		vals.Set("apikey", s.APIKey)
	}
	u.RawQuery = vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fail(UnexpectedError)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fail(RequestError)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(RequestError)
	}
	var sr searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return fail(UnexpectedError)
	}
	out := make(map[string]Result, len(sr.Results))
	for _, r := range sr.Results {
		link := strings.TrimSpace(r.URL)
		if link == "" {
			continue
		}
		out[link] = Result{
			Title:       strings.TrimSpace(r.Title),
			URL:         link,
			Description: strings.TrimSpace(r.Content),
			Engines:     []string{s.Name()},
		}
	}
	if len(out) == 0 {
		return fail(EmptyResultSet)
	}
	return out, nil
}

// searxCategories maps requested result categories onto SearxNG category
// names. Autocompletion has no category of its own there.
func searxCategories(t QueryType) string {
	cats := make([]string, 0, 4)
	if t.Has(TypeText) || t.Has(TypeAutoCompletion) {
		cats = append(cats, "general")
	}
	if t.Has(TypeImage) {
		cats = append(cats, "images")
	}
	if t.Has(TypeVideo) {
		cats = append(cats, "videos")
	}
	if t.Has(TypeFile) {
		cats = append(cats, "files")
	}
	if len(cats) == 0 {
		cats = append(cats, "general")
	}
	return strings.Join(cats, ",")
}

type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}
