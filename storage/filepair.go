// File pair operations (C4): addPage, getPage and putPage over a single
// backend, composed into the (data, overflow) pair a Relation owns.
package storage

import (
	"fmt"

	"github.com/multiattr/malh/page"
	"github.com/multiattr/malh/storage/cache"
	sdcache "github.com/segmentio/datastructures/v2/cache"
)

// defaultCacheSize bounds how many pages each of the data and overflow
// files keeps hot, mirroring the original PAGE_CACHE_SIZE constant.
const defaultCacheSize = 1000

// PageFile is one file (data or overflow): a dense, append-only array of
// fixed-size pages with a small read cache in front of it.
type PageFile struct {
	backend backend
	cache   *cache.PageCache
}

func newPageFile(b backend) *PageFile {
	return &PageFile{backend: b, cache: cache.New(defaultCacheSize)}
}

// NPages returns the number of pages currently stored in the file.
func (f *PageFile) NPages() (int, error) {
	return f.backend.numPages()
}

// CacheStats reports read-cache hit/miss/eviction counters for this file.
func (f *PageFile) CacheStats() sdcache.Stats {
	return f.cache.Stats()
}

// AddPage appends a fresh empty page and returns its new PageID.
func (f *PageFile) AddPage() (page.ID, error) {
	n, err := f.backend.numPages()
	if err != nil {
		return 0, err
	}
	id := page.ID(n)
	if err := f.backend.growToPages(n + 1); err != nil {
		return 0, err
	}
	if err := f.PutPage(page.New(id)); err != nil {
		return 0, err
	}
	return id, nil
}

// GetPage loads the page with the given ID.
func (f *PageFile) GetPage(id page.ID) (*page.Page, error) {
	if content, hit := f.cache.Get(id); hit {
		// Tuples() and the header accessors all read via a fresh copy so a
		// cached buffer can be handed out safely; callers that mutate a page
		// must PutPage it back, which refreshes the cache entry.
		cp := make([]byte, page.Size)
		copy(cp, content)
		return page.FromBytes(id, cp), nil
	}
	content := make([]byte, page.Size)
	if _, err := f.backend.ReadAt(content, int64(id)*page.Size); err != nil {
		return nil, fmt.Errorf("reading page %d: %w", id, err)
	}
	f.cache.Add(id, content)
	cp := make([]byte, page.Size)
	copy(cp, content)
	return page.FromBytes(id, cp), nil
}

// PutPage writes a page back to the file and invalidates any stale cache
// entry for it.
func (f *PageFile) PutPage(p *page.Page) error {
	if _, err := f.backend.WriteAt(p.Bytes(), int64(p.Number())*page.Size); err != nil {
		return fmt.Errorf("writing page %d: %w", p.Number(), err)
	}
	f.cache.Remove(p.Number())
	return nil
}

// FilePair owns a relation's primary data file and overflow file.
type FilePair struct {
	Data   *PageFile
	Ovflow *PageFile
}

// Open opens (or creates) the data and overflow files for a relation. When
// useMemory is true, both files are in-memory buffers that vanish when the
// process exits, used by tests and the CLI's --memory flag.
func Open(name string, useMemory bool) (*FilePair, error) {
	if useMemory {
		return &FilePair{
			Data:   newPageFile(newMemoryBackend()),
			Ovflow: newPageFile(newMemoryBackend()),
		}, nil
	}
	dataBackend, err := openFileBackend(name + ".data")
	if err != nil {
		return nil, err
	}
	ovflowBackend, err := openFileBackend(name + ".ovflow")
	if err != nil {
		return nil, err
	}
	return &FilePair{
		Data:   newPageFile(dataBackend),
		Ovflow: newPageFile(ovflowBackend),
	}, nil
}

// Close releases any on-disk file handles. It is a no-op for in-memory
// relations.
func (fp *FilePair) Close() error {
	if fb, ok := fp.Data.backend.(*fileBackend); ok {
		if err := fb.close(); err != nil {
			return err
		}
	}
	if fb, ok := fp.Ovflow.backend.(*fileBackend); ok {
		return fb.close()
	}
	return nil
}
