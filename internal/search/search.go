package search

import (
	"fmt"
	"strings"
)

// QueryType is the set of result categories a query asks for. A single query
// may request several categories at once (for example text and images), so
// values combine with Union and are inspected with Has rather than compared
// for equality.
type QueryType uint8

const (
	TypeText QueryType = 1 << iota
	TypeVideo
	TypeImage
	TypeFile
	TypeAutoCompletion
)

// Union returns the combined set of t and other.
func (t QueryType) Union(other QueryType) QueryType { return t | other }

// Has reports whether every category in other is present in t.
func (t QueryType) Has(other QueryType) bool { return t&other == other }

// Intersects reports whether t and other share at least one category.
func (t QueryType) Intersects(other QueryType) bool { return t&other != 0 }

func (t QueryType) String() string {
	names := make([]string, 0, 5)
	for _, v := range []struct {
		t    QueryType
		name string
	}{
		{TypeText, "text"},
		{TypeVideo, "video"},
		{TypeImage, "image"},
		{TypeFile, "file"},
		{TypeAutoCompletion, "autocompletion"},
	} {
		if t.Has(v.t) {
			names = append(names, v.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseQueryTypes parses a comma-separated category list such as
// "text,image" into a QueryType set. An empty input defaults to text.
func ParseQueryTypes(s string) (QueryType, error) {
	var out QueryType
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "text":
			out = out.Union(TypeText)
		case "video":
			out = out.Union(TypeVideo)
		case "image":
			out = out.Union(TypeImage)
		case "file":
			out = out.Union(TypeFile)
		case "autocompletion":
			out = out.Union(TypeAutoCompletion)
		default:
			return 0, fmt.Errorf("unknown query type %q", strings.TrimSpace(part))
		}
	}
	if out == 0 {
		out = TypeText
	}
	return out, nil
}

// TimeRelevancy restricts results to a recency window.
type TimeRelevancy int

const (
	Anytime TimeRelevancy = iota
	LastDay
	LastWeek
	LastMonth
	LastYear
)

func (r TimeRelevancy) String() string {
	switch r {
	case LastDay:
		return "day"
	case LastWeek:
		return "week"
	case LastMonth:
		return "month"
	case LastYear:
		return "year"
	default:
		return "anytime"
	}
}

// ParseTimeRelevancy parses a recency name such as "week" or "anytime".
func ParseTimeRelevancy(s string) (TimeRelevancy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "anytime":
		return Anytime, nil
	case "day":
		return LastDay, nil
	case "week":
		return LastWeek, nil
	case "month":
		return LastMonth, nil
	case "year":
		return LastYear, nil
	default:
		return Anytime, fmt.Errorf("unknown time relevancy %q", strings.TrimSpace(s))
	}
}

// Query carries everything an upstream engine needs to run one search.
// Treat values as immutable once built.
type Query struct {
	Text       string
	Types      QueryType
	Relevancy  TimeRelevancy
	Page       int // zero-based
	SafeSearch int // 0 = off, higher is stricter
	Language   string
}

// Result represents a single search hit from any upstream engine.
// Engines lists every engine that returned this URL; it grows during
// aggregation while the remaining fields stay as first seen.
type Result struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Engines     []string `json:"engines"`
}
