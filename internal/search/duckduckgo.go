package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const duckDuckGoLiteURL = "https://lite.duckduckgo.com/lite/"

// DuckDuckGo scrapes the JavaScript-free DuckDuckGo Lite endpoint.
type DuckDuckGo struct {
	// BaseURL overrides the lite endpoint, for tests.
	BaseURL   string
	UserAgent string
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) QueryTypes() QueryType { return TypeText }

func (d *DuckDuckGo) Fetch(ctx context.Context, q Query, client *http.Client) (map[string]Result, *EngineError) {
	fail := func(kind ErrorKind) (map[string]Result, *EngineError) {
		return nil, &EngineError{Kind: kind, Engine: d.Name()}
	}
	base := d.BaseURL
	if base == "" {
		base = duckDuckGoLiteURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return fail(UnexpectedError)
	}
	vals := u.Query()
	vals.Set("q", q.Text)
	if q.Page > 0 {
		// Lite paginates by absolute result offset.
		vals.Set("s", fmt.Sprintf("%d", q.Page*30))
	}
	if q.Relevancy != Anytime {
		vals.Set("df", duckDuckGoFreshness(q.Relevancy))
	}
	vals.Set("kp", duckDuckGoSafe(q.SafeSearch))
	u.RawQuery = vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fail(UnexpectedError)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fail(RequestError)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(RequestError)
	}
	root, err := html.Parse(resp.Body)
	if err != nil {
		return fail(UnexpectedError)
	}
	out := parseLiteResults(root, d.Name())
	if len(out) == 0 {
		return fail(EmptyResultSet)
	}
	return out, nil
}

func duckDuckGoFreshness(r TimeRelevancy) string {
	switch r {
	case LastDay:
		return "d"
	case LastWeek:
		return "w"
	case LastMonth:
		return "m"
	default:
		return "y"
	}
}

func duckDuckGoSafe(level int) string {
	switch {
	case level <= 0:
		return "-2"
	case level == 1:
		return "-1"
	default:
		return "1"
	}
}

// parseLiteResults walks the lite markup: result links carry the
// "result-link" class and the snippet follows in a "result-snippet" cell.
func parseLiteResults(root *html.Node, engine string) map[string]Result {
	out := make(map[string]Result)
	var lastURL string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if hasClass(n, "result-link") {
					link := strings.TrimSpace(attr(n, "href"))
					if link != "" {
						lastURL = link
						out[link] = Result{
							Title:   strings.TrimSpace(textContent(n)),
							URL:     link,
							Engines: []string{engine},
						}
					}
				}
			case "td":
				if hasClass(n, "result-snippet") && lastURL != "" {
					r := out[lastURL]
					r.Description = strings.TrimSpace(textContent(n))
					out[lastURL] = r
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
