package search

import "fmt"

// ErrorKind classifies what went wrong while talking to an upstream engine.
type ErrorKind int

const (
	// NoSuchEngineFound means a configured engine name did not resolve
	// against the registry. Raised only at handler construction.
	NoSuchEngineFound ErrorKind = iota
	// EmptyResultSet means the engine answered but produced nothing usable.
	EmptyResultSet
	// RequestError covers transport faults reaching the engine, including
	// timeouts and non-success HTTP statuses.
	RequestError
	// UnexpectedError covers internal adapter faults: response decoding,
	// malformed markup, request construction.
	UnexpectedError
)

// EngineError is the only error type engines are allowed to surface.
// Adapters must convert every internal fault into one of the kinds above;
// nothing escapes uncategorized.
type EngineError struct {
	Kind   ErrorKind
	Engine string
}

func (e *EngineError) Error() string {
	switch e.Kind {
	case NoSuchEngineFound:
		return fmt.Sprintf("no such engine with the name %q found", e.Engine)
	case EmptyResultSet:
		return fmt.Sprintf("engine %s returned an empty result set", e.Engine)
	case RequestError:
		return fmt.Sprintf("error occurred while requesting data from engine %s", e.Engine)
	default:
		return fmt.Sprintf("an unexpected error occurred while processing data from engine %s", e.Engine)
	}
}
