package aggregate

import (
	"sort"

	"github.com/hyperifyio/metasearch/internal/search"
)

// Aggregate merges the per-engine outcomes of one query into a single
// ranked result list.
//
// Failed outcomes contribute nothing; a query where every engine failed
// yields an empty list, which is a normal "no results" state rather than
// an error. Outcomes fold in engineOrder (the configured engine order, see
// EngineHandler.EngineNames) with each engine's URLs folded in lexical
// order, so the same completed outcome set always merges identically no
// matter how completion raced. On a URL collision the first-encountered
// title and description win and the colliding engine's name joins the
// entry's provenance.
//
// Entries whose title and description are both empty are dropped as parse
// noise. The survivors rank by provenance size, results confirmed by more
// engines first; ties keep first-merge order.
func Aggregate(outcomes []search.Outcome, engineOrder []string) []search.Result {
	ordered := sortOutcomes(outcomes, engineOrder)

	index := make(map[string]int)
	merged := make([]search.Result, 0, 64)
	for _, o := range ordered {
		if !o.OK() {
			continue
		}
		urls := make([]string, 0, len(o.Results))
		for u := range o.Results {
			urls = append(urls, u)
		}
		sort.Strings(urls)
		for _, u := range urls {
			r := o.Results[u]
			if i, ok := index[u]; ok {
				merged[i].Engines = unionEngines(merged[i].Engines, r.Engines)
				continue
			}
			index[u] = len(merged)
			merged = append(merged, r)
		}
	}

	ranked := merged[:0]
	for _, r := range merged {
		if r.Title == "" && r.Description == "" {
			continue
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Engines) > len(ranked[j].Engines)
	})
	return ranked
}

// sortOutcomes fixes the fold order: outcomes line up with engineOrder,
// anything unknown trails sorted by engine name.
func sortOutcomes(outcomes []search.Outcome, engineOrder []string) []search.Outcome {
	rank := make(map[string]int, len(engineOrder))
	for i, name := range engineOrder {
		rank[name] = i
	}
	pos := func(name string) int {
		if i, ok := rank[name]; ok {
			return i
		}
		return len(engineOrder)
	}
	ordered := make([]search.Outcome, len(outcomes))
	copy(ordered, outcomes)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := pos(ordered[i].Engine), pos(ordered[j].Engine)
		if pi != pj {
			return pi < pj
		}
		return ordered[i].Engine < ordered[j].Engine
	})
	return ordered
}

func unionEngines(have, add []string) []string {
	seen := make(map[string]struct{}, len(have))
	for _, e := range have {
		seen[e] = struct{}{}
	}
	for _, e := range add {
		if _, ok := seen[e]; !ok {
			have = append(have, e)
			seen[e] = struct{}{}
		}
	}
	return have
}
