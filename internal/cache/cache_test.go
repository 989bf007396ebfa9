package cache

import (
	"testing"

	"github.com/hyperifyio/metasearch/internal/search"
)

func TestKeyFrom_SameQuerySameKey(t *testing.T) {
	q := search.Query{Text: "go", Types: search.TypeText, Relevancy: search.LastWeek, Page: 1, SafeSearch: 1}
	if KeyFrom(q, []string{"a", "b"}) != KeyFrom(q, []string{"a", "b"}) {
		t.Fatalf("identical inputs must share a key")
	}
}

func TestKeyFrom_SubsetIsCanonicalized(t *testing.T) {
	q := search.Query{Text: "go", Types: search.TypeText}
	if KeyFrom(q, []string{"B", " a"}) != KeyFrom(q, []string{"a", "b"}) {
		t.Fatalf("subset order and case must not change the key")
	}
	if KeyFrom(q, nil) == KeyFrom(q, []string{"a", "b"}) {
		t.Fatalf("nil subset (all engines) must differ from an explicit subset")
	}
}

func TestKeyFrom_EveryFieldFeedsTheKey(t *testing.T) {
	base := search.Query{Text: "go", Types: search.TypeText, Relevancy: search.Anytime, Page: 0, SafeSearch: 0}
	baseKey := KeyFrom(base, nil)

	variants := []search.Query{
		{Text: "rust", Types: base.Types, Relevancy: base.Relevancy, Page: base.Page, SafeSearch: base.SafeSearch},
		{Text: base.Text, Types: search.TypeImage, Relevancy: base.Relevancy, Page: base.Page, SafeSearch: base.SafeSearch},
		{Text: base.Text, Types: base.Types, Relevancy: search.LastDay, Page: base.Page, SafeSearch: base.SafeSearch},
		{Text: base.Text, Types: base.Types, Relevancy: base.Relevancy, Page: 3, SafeSearch: base.SafeSearch},
		{Text: base.Text, Types: base.Types, Relevancy: base.Relevancy, Page: base.Page, SafeSearch: 2},
	}
	for i, v := range variants {
		if KeyFrom(v, nil) == baseKey {
			t.Fatalf("variant %d must produce a different key", i)
		}
	}
}
