package relation

import (
	"errors"
	"testing"

	"github.com/multiattr/malh/page"
)

func mustCreate(t *testing.T, nattrs, npages, depth int, cv string) *Relation {
	t.Helper()
	r, err := Create("", nattrs, npages, depth, cv, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return r
}

func TestCreateRejectsTooManyAttrs(t *testing.T) {
	_, err := Create("", MaxAttrs+1, 1, 0, "", true)
	if !errors.Is(err, ErrTooManyAttrs) {
		t.Fatalf("expected ErrTooManyAttrs, got %v", err)
	}
}

func TestDepthZeroAddressesBucketZero(t *testing.T) {
	r := mustCreate(t, 3, 1, 0, "")
	for i := 0; i < 5; i++ {
		b, err := r.Insert([]byte("a,b,c"))
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if b != 0 {
			t.Fatalf("bucket = %d, want 0 (depth 0)", b)
		}
	}
}

func TestInsertAndReadBack(t *testing.T) {
	r := mustCreate(t, 3, 1, 0, "")
	if _, err := r.Insert([]byte("alpha,beta,gamma")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	pg, err := r.files.Data.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if pg.NTuples() != 1 {
		t.Fatalf("NTuples() = %d, want 1", pg.NTuples())
	}
	if string(pg.Tuples()[0]) != "alpha,beta,gamma" {
		t.Fatalf("tuple mismatch: %q", pg.Tuples()[0])
	}
}

func TestSplitTriggersAtThreshold(t *testing.T) {
	// nattrs=3 -> C = 1024/(10*3) = 34.
	r := mustCreate(t, 3, 1, 0, "")
	for i := 0; i < 34; i++ {
		if _, err := r.Insert([]byte("x,y,z")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	if r.Depth() != 1 || r.SplitPointer() != 0 || r.NPages() != 2 {
		t.Fatalf("after 34 inserts: depth=%d sp=%d npages=%d, want depth=1 sp=0 npages=2",
			r.Depth(), r.SplitPointer(), r.NPages())
	}

	for i := 0; i < 34; i++ {
		if _, err := r.Insert([]byte("x,y,z")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	if r.Depth() != 1 || r.SplitPointer() != 1 || r.NPages() != 3 {
		t.Fatalf("after 68 inserts: depth=%d sp=%d npages=%d, want depth=1 sp=1 npages=3",
			r.Depth(), r.SplitPointer(), r.NPages())
	}
}

func TestSplitScenarioFromWorkedExample(t *testing.T) {
	r := mustCreate(t, 3, 4, 2, "0:0,1:0,2:0,0:1,1:1,2:1")
	if r.Depth() != 2 || r.SplitPointer() != 0 || r.NPages() != 4 {
		t.Fatalf("initial state: depth=%d sp=%d npages=%d, want depth=2 sp=0 npages=4",
			r.Depth(), r.SplitPointer(), r.NPages())
	}

	if _, err := r.Insert([]byte("alpha,beta,gamma")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if r.NTuples() != 1 {
		t.Fatalf("NTuples() = %d, want 1", r.NTuples())
	}

	for i := 0; i < 33; i++ {
		if _, err := r.Insert([]byte("alpha,beta,gamma")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	if r.SplitPointer() != 1 || r.Depth() != 2 || r.NPages() != 5 {
		t.Fatalf("after 34 inserts: sp=%d depth=%d npages=%d, want sp=1 depth=2 npages=5",
			r.SplitPointer(), r.Depth(), r.NPages())
	}

	for i := 0; i < 34; i++ {
		if _, err := r.Insert([]byte("alpha,beta,gamma")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	if r.SplitPointer() != 2 || r.Depth() != 2 || r.NPages() != 6 {
		t.Fatalf("after 68 inserts: sp=%d depth=%d npages=%d, want sp=2 depth=2 npages=6",
			r.SplitPointer(), r.Depth(), r.NPages())
	}
}

func TestSplitRedistributesAllTuples(t *testing.T) {
	r := mustCreate(t, 1, 1, 0, "")
	// nattrs=1 -> C = 1024/(10*1) = 102, so the last insert triggers a split.
	total := 102
	for i := 0; i < total; i++ {
		if _, err := r.Insert([]byte("v")); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	report, err := r.BucketReport()
	if err != nil {
		t.Fatalf("BucketReport: %v", err)
	}
	got := 0
	for _, b := range report {
		for _, p := range b.Chain {
			got += p.NTuples
		}
	}
	if got != total {
		t.Fatalf("total tuples across buckets = %d, want %d", got, total)
	}
}

func TestOversizedTupleFails(t *testing.T) {
	r := mustCreate(t, 1, 1, 0, "")
	big := make([]byte, page.Size*2)
	for i := range big {
		big[i] = 'a'
	}
	_, err := r.Insert(big)
	if err == nil {
		t.Fatal("expected an error for an oversized tuple")
	}
}

func TestCloseAndReopenPersistsMeta(t *testing.T) {
	dir := t.TempDir() + "/rel"
	r, err := Create(dir, 2, 1, 0, "0:0,1:0", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := r.Insert([]byte("a,b")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r2, err := Open(dir, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r2.Close()
	if r2.NAttrs() != 2 || r2.NTuples() != 1 {
		t.Fatalf("reopened relation: nattrs=%d ntups=%d, want 2,1", r2.NAttrs(), r2.NTuples())
	}
	if r2.ChoiceVector()[0].Att != 0 || r2.ChoiceVector()[1].Att != 1 {
		t.Fatalf("choice vector not round-tripped: %v", r2.ChoiceVector()[:2])
	}
}

func TestCreateRejectsExistingRelation(t *testing.T) {
	dir := t.TempDir() + "/rel"
	r, err := Create(dir, 1, 1, 0, "", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	r.Close()

	_, err = Create(dir, 1, 1, 0, "", false)
	if !errors.Is(err, ErrRelationExists) {
		t.Fatalf("expected ErrRelationExists, got %v", err)
	}
}

func TestOpenMissingRelation(t *testing.T) {
	_, err := Open(t.TempDir()+"/nope", false)
	if !errors.Is(err, ErrRelationMissing) {
		t.Fatalf("expected ErrRelationMissing, got %v", err)
	}
}
