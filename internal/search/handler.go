package search

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultEngineTimeout bounds how long one engine may take before its slot
// is settled as a RequestError. Keeps one stalled upstream from holding the
// whole query barrier.
const DefaultEngineTimeout = 10 * time.Second

// EngineHandler resolves configured engine names once at construction and
// fans queries out to them concurrently.
type EngineHandler struct {
	engines []Provider
	client  *http.Client
	timeout time.Duration
}

// NewEngineHandler resolves names against the closed engine registry,
// case-insensitively. Resolution is all-or-nothing: the first name that
// does not resolve aborts construction with a NoSuchEngineFound error
// naming it, and no handler is produced.
func NewEngineHandler(names []string, client *http.Client, opts Options) (*EngineHandler, error) {
	engines := make([]Provider, 0, len(names))
	for _, name := range names {
		ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, &EngineError{Kind: NoSuchEngineFound, Engine: name}
		}
		engines = append(engines, ctor(opts))
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultEngineTimeout}
	}
	return &EngineHandler{engines: engines, client: client, timeout: DefaultEngineTimeout}, nil
}

// SetEngineTimeout overrides the per-engine deadline. Values <= 0 are ignored.
func (h *EngineHandler) SetEngineTimeout(d time.Duration) {
	if d > 0 {
		h.timeout = d
	}
}

// EngineNames returns the configured engine names in configuration order.
// Aggregation uses this order as its deterministic merge order.
func (h *EngineHandler) EngineNames() []string {
	names := make([]string, len(h.engines))
	for i, e := range h.engines {
		names[i] = e.Name()
	}
	return names
}

// Search runs q against every configured engine whose name is in
// engineNames, or against all of them when engineNames is nil. Each engine
// runs in its own goroutine; the call blocks until every dispatched engine
// has settled, then returns one Outcome per dispatched engine in no
// particular order.
//
// Names in engineNames that match no configured engine are silently
// ignored. An engine that outlives its deadline settles as a RequestError;
// one that panics settles as an UnexpectedError. Either way every
// dispatched engine is accounted for and no engine's failure disturbs its
// siblings.
func (h *EngineHandler) Search(ctx context.Context, engineNames []string, q Query) []Outcome {
	var requested map[string]struct{}
	if engineNames != nil {
		requested = make(map[string]struct{}, len(engineNames))
		for _, n := range engineNames {
			requested[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
		}
	}

	outcomes := make(chan Outcome, len(h.engines))
	var wg sync.WaitGroup
	for _, eng := range h.engines {
		if requested != nil {
			if _, ok := requested[strings.ToLower(eng.Name())]; !ok {
				continue
			}
		}
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			outcomes <- h.fetchOne(ctx, p, q)
		}(eng)
	}
	wg.Wait()
	close(outcomes)

	out := make([]Outcome, 0, len(h.engines))
	for o := range outcomes {
		out = append(out, o)
	}
	return out
}

// fetchOne settles a single engine's slot. The fetch itself runs in an
// inner goroutine so a stalled adapter that ignores its context cannot
// block the barrier past the deadline; the orphaned goroutine finishes
// into a buffered channel and is dropped.
func (h *EngineHandler) fetchOne(ctx context.Context, p Provider, q Query) Outcome {
	name := p.Name()
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	done := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("engine", name).Interface("panic", r).Msg("engine crashed")
				done <- Outcome{Engine: name, Err: &EngineError{Kind: UnexpectedError, Engine: name}}
			}
		}()
		results, eerr := p.Fetch(ctx, q, h.client)
		done <- Outcome{Engine: name, Results: results, Err: eerr}
	}()

	select {
	case o := <-done:
		return o
	case <-ctx.Done():
		log.Warn().Str("engine", name).Dur("timeout", h.timeout).Msg("engine deadline exceeded")
		return Outcome{Engine: name, Err: &EngineError{Kind: RequestError, Engine: name}}
	}
}
