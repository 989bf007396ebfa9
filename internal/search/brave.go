package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const braveSearchURL = "https://api.search.brave.com/res/v1/web/search"

// Brave queries the Brave Search API. Requires an API subscription token.
type Brave struct {
	// BaseURL overrides the API endpoint, for tests.
	BaseURL   string
	APIKey    string
	UserAgent string
}

func (b *Brave) Name() string { return "brave" }

func (b *Brave) QueryTypes() QueryType { return TypeText | TypeVideo | TypeImage }

func (b *Brave) Fetch(ctx context.Context, q Query, client *http.Client) (map[string]Result, *EngineError) {
	fail := func(kind ErrorKind) (map[string]Result, *EngineError) {
		return nil, &EngineError{Kind: kind, Engine: b.Name()}
	}
	base := b.BaseURL
	if base == "" {
		base = braveSearchURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return fail(UnexpectedError)
	}
	vals := u.Query()
	vals.Set("q", q.Text)
	vals.Set("offset", fmt.Sprintf("%d", q.Page))
	vals.Set("safesearch", braveSafe(q.SafeSearch))
	if q.Relevancy != Anytime {
		vals.Set("freshness", braveFreshness(q.Relevancy))
	}
	u.RawQuery = vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fail(UnexpectedError)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fail(RequestError)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(RequestError)
	}
	var br braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return fail(UnexpectedError)
	}
	out := make(map[string]Result, len(br.Web.Results))
	for _, r := range br.Web.Results {
		link := strings.TrimSpace(r.URL)
		if link == "" {
			continue
		}
		out[link] = Result{
			Title:       strings.TrimSpace(r.Title),
			URL:         link,
			Description: strings.TrimSpace(r.Description),
			Engines:     []string{b.Name()},
		}
	}
	if len(out) == 0 {
		return fail(EmptyResultSet)
	}
	return out, nil
}

func braveSafe(level int) string {
	switch {
	case level <= 0:
		return "off"
	case level == 1:
		return "moderate"
	default:
		return "strict"
	}
}

func braveFreshness(r TimeRelevancy) string {
	switch r {
	case LastDay:
		return "pd"
	case LastWeek:
		return "pw"
	case LastMonth:
		return "pm"
	default:
		return "py"
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}
