package selection

import (
	"testing"

	"github.com/multiattr/malh/relation"
)

func collect(t *testing.T, s *Scan) []string {
	t.Helper()
	var out []string
	for s.Next() {
		out = append(out, string(s.Tuple()))
	}
	if s.Err() != nil {
		t.Fatalf("scan error: %v", s.Err())
	}
	return out
}

func TestScanExactMatch(t *testing.T) {
	r, err := relation.Create("", 3, 1, 0, "", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Close()
	if _, err := r.Insert([]byte("alpha,beta,gamma")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := r.Insert([]byte("a,b,c")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	s, err := NewScan(r, "alpha,beta,gamma")
	if err != nil {
		t.Fatalf("NewScan: %v", err)
	}
	got := collect(t, s)
	if len(got) != 1 || got[0] != "alpha,beta,gamma" {
		t.Fatalf("got %v, want [alpha,beta,gamma]", got)
	}
}

func TestScanAllWildcardReturnsEverything(t *testing.T) {
	r, err := relation.Create("", 2, 1, 0, "", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Close()
	for i := 0; i < 40; i++ {
		if _, err := r.Insert([]byte("x,y")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	s, err := NewScan(r, "?,?")
	if err != nil {
		t.Fatalf("NewScan: %v", err)
	}
	got := collect(t, s)
	if len(got) != 40 {
		t.Fatalf("got %d tuples, want 40", len(got))
	}
}

func TestScanPercentMatchesSubstring(t *testing.T) {
	r, err := relation.Create("", 2, 1, 0, "", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Close()
	r.Insert([]byte("alpha,1"))
	r.Insert([]byte("beta,2"))

	s, err := NewScan(r, "%a%,?")
	if err != nil {
		t.Fatalf("NewScan: %v", err)
	}
	got := collect(t, s)
	if len(got) != 2 {
		t.Fatalf("got %v, want both tuples (both contain 'a')", got)
	}
}

func TestScanAfterSplitStillFindsTuple(t *testing.T) {
	r, err := relation.Create("", 1, 1, 0, "", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Close()
	// nattrs=1 -> C = 1024/(10*1) = 102, so the last insert triggers a split.
	for i := 0; i < 102; i++ {
		if _, err := r.Insert([]byte("v")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	s, err := NewScan(r, "v")
	if err != nil {
		t.Fatalf("NewScan: %v", err)
	}
	got := collect(t, s)
	if len(got) != 102 {
		t.Fatalf("got %d tuples after split, want 102", len(got))
	}
}
