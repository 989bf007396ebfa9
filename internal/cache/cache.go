package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hyperifyio/metasearch/internal/search"
)

// Cacher stores ranked result lists keyed by a canonical query digest.
//
// Lookup is a pure read: a missing or expired entry reports ok=false and
// mutates nothing. Store creates or atomically replaces the entry for key;
// no reader ever observes a partially written entry. Implementations must
// be safe for concurrent use across queries.
type Cacher interface {
	Lookup(ctx context.Context, key string) (results []search.Result, ok bool)
	Store(ctx context.Context, key string, results []search.Result, ttl time.Duration)
}

// KeyFrom derives the cache key for a query and an optional requested
// engine subset. Every field that changes what upstreams would be asked
// feeds the digest, length-delimited so adjacent fields cannot collide.
// The subset is canonicalized (lowercased, sorted, deduplicated) because it
// is a set; nil means "all engines" and is distinct from any explicit
// subset.
func KeyFrom(q search.Query, engines []string) string {
	h := sha256.New()
	field := func(s string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	field(q.Text)
	field(q.Types.String())
	field(q.Relevancy.String())
	field(q.Language)
	field(strconv.Itoa(q.Page))
	field(strconv.Itoa(q.SafeSearch))
	if engines == nil {
		field("*")
	} else {
		field(strings.Join(canonicalEngines(engines), ","))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func canonicalEngines(engines []string) []string {
	out := make([]string, 0, len(engines))
	seen := make(map[string]struct{}, len(engines))
	for _, e := range engines {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
