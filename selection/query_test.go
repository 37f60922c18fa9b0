package selection

import "testing"

func TestParseQueryPadsShortQueries(t *testing.T) {
	terms := ParseQuery("alpha,beta", 4)
	want := []string{"alpha", "beta", "?", "?"}
	for i, w := range want {
		if terms[i] != w {
			t.Errorf("terms[%d] = %q, want %q", i, terms[i], w)
		}
	}
}

func TestParseQueryEmptyIsAllWildcard(t *testing.T) {
	terms := ParseQuery("", 3)
	for i, term := range terms {
		if term != "?" {
			t.Errorf("terms[%d] = %q, want ?", i, term)
		}
	}
}

func TestParseQueryDropsExtraTerms(t *testing.T) {
	terms := ParseQuery("a,b,c,d", 2)
	if len(terms) != 2 || terms[0] != "a" || terms[1] != "b" {
		t.Fatalf("terms = %v, want [a b]", terms)
	}
}

func TestIsWildcard(t *testing.T) {
	if !isWildcard("?") || !isWildcard("a%b") {
		t.Fatal("expected ? and %-patterns to be wildcards")
	}
	if isWildcard("literal") {
		t.Fatal("literal term should not be a wildcard")
	}
}
