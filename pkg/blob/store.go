// Package blob holds fetched binary previews (farm images, documents,
// attachment thumbnails) in memory behind explicitly released handles.
// Handles model the browser object-URL lifetime contract: whoever creates a
// preview must release it when the owning row or form slot goes away.
package blob

import (
	"fmt"
	"sync"
)

// Store owns all live preview handles for one page.
type Store struct {
	mu      sync.Mutex
	nextSeq int
	blobs   map[string]*entry
}

type entry struct {
	contentType string
	data        []byte
}

// Handle references one stored preview until released.
type Handle struct {
	store *Store
	url   string

	once sync.Once
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{blobs: make(map[string]*entry)}
}

// Put stores data and returns a live handle for it.
func (s *Store) Put(name, contentType string, data []byte) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	url := fmt.Sprintf("blob:%s-%d", name, s.nextSeq)
	s.blobs[url] = &entry{
		contentType: contentType,
		data:        append([]byte(nil), data...),
	}
	return &Handle{store: s, url: url}
}

// Get returns the stored bytes and content type for a live handle URL.
func (s *Store) Get(url string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.blobs[url]
	if !ok {
		return nil, "", false
	}
	return e.data, e.contentType, true
}

// Len reports how many previews are currently live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// ReleaseAll revokes every live handle. Called on page teardown.
func (s *Store) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs = make(map[string]*entry)
}

// URL returns the opaque identifier for this preview.
func (h *Handle) URL() string {
	if h == nil {
		return ""
	}
	return h.url
}

// Release revokes the preview. Safe to call more than once.
func (h *Handle) Release() {
	if h == nil || h.store == nil {
		return
	}
	h.once.Do(func() {
		h.store.mu.Lock()
		defer h.store.mu.Unlock()
		delete(h.store.blobs, h.url)
	})
}
