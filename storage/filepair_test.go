package storage

import (
	"testing"

	"github.com/multiattr/malh/page"
)

func TestOpenMemoryAddGetPutPage(t *testing.T) {
	fp, err := Open("", true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := fp.Data.AddPage()
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if id != 0 {
		t.Fatalf("first AddPage id = %d, want 0", id)
	}
	id2, err := fp.Data.AddPage()
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if id2 != 1 {
		t.Fatalf("second AddPage id = %d, want 1", id2)
	}

	p, err := fp.Data.GetPage(id)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if !p.Add([]byte("alpha,beta,gamma")) {
		t.Fatal("expected room on a fresh page")
	}
	if err := fp.Data.PutPage(p); err != nil {
		t.Fatalf("PutPage: %v", err)
	}

	reread, err := fp.Data.GetPage(id)
	if err != nil {
		t.Fatalf("GetPage after PutPage: %v", err)
	}
	if reread.NTuples() != 1 {
		t.Fatalf("NTuples() = %d, want 1", reread.NTuples())
	}
	if string(reread.Tuples()[0]) != "alpha,beta,gamma" {
		t.Fatalf("tuple mismatch: %q", reread.Tuples()[0])
	}
}

func TestNPages(t *testing.T) {
	fp, err := Open("", true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n, err := fp.Data.NPages()
	if err != nil {
		t.Fatalf("NPages: %v", err)
	}
	if n != 0 {
		t.Fatalf("NPages() = %d, want 0", n)
	}
	fp.Data.AddPage()
	fp.Data.AddPage()
	n, _ = fp.Data.NPages()
	if n != 2 {
		t.Fatalf("NPages() = %d, want 2", n)
	}
}

func TestCacheInvalidatedOnPut(t *testing.T) {
	fp, _ := Open("", true)
	id, _ := fp.Data.AddPage()
	p, _ := fp.Data.GetPage(id)
	p.Add([]byte("x"))
	fp.Data.PutPage(p)

	p2, _ := fp.Data.GetPage(id)
	p2.Add([]byte("y"))
	fp.Data.PutPage(p2)

	p3, err := fp.Data.GetPage(id)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if p3.NTuples() != 2 {
		t.Fatalf("NTuples() = %d, want 2 (stale cache entry served)", p3.NTuples())
	}
}

func TestOvflowFileIsIndependent(t *testing.T) {
	fp, _ := Open("", true)
	dataID, _ := fp.Data.AddPage()
	ovID, _ := fp.Ovflow.AddPage()
	if dataID != 0 || ovID != 0 {
		t.Fatalf("expected independent numbering, got data=%d ovflow=%d", dataID, ovID)
	}
	p, _ := fp.Ovflow.GetPage(ovID)
	if p.Ovflow() != page.NoPage {
		t.Fatalf("fresh overflow page should have NoPage pointer, got %d", p.Ovflow())
	}
}
