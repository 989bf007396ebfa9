package search

import (
	"context"
	"net/http"
)

// Provider is the capability every upstream engine adapter implements.
//
// Fetch returns results keyed by URL, or an EngineError describing the
// failure; exactly one of the two is non-nil. Implementations hold no
// per-query state beyond the injected client and must be safe for
// concurrent use from unrelated queries.
type Provider interface {
	Name() string
	// QueryTypes returns the result categories this engine can serve.
	QueryTypes() QueryType
	Fetch(ctx context.Context, q Query, client *http.Client) (map[string]Result, *EngineError)
}

// Outcome records what one dispatched engine produced for one query:
// either a URL-keyed result map or an EngineError, never both.
type Outcome struct {
	Engine  string
	Results map[string]Result
	Err     *EngineError
}

// OK reports whether the engine succeeded.
func (o Outcome) OK() bool { return o.Err == nil }
