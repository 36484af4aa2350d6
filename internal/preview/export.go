package preview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ExportFilename is the name offered for downloaded previews
const ExportFilename = "index.html"

// Blob is an in-memory file awaiting download
type Blob struct {
	Name    string
	Type    string
	Data    []byte
	created time.Time
}

// NewHTMLBlob wraps a synthesized document for download as index.html
func NewHTMLBlob(document string) Blob {
	return Blob{
		Name: ExportFilename,
		Type: "text/html",
		Data: []byte(document),
	}
}

// BlobStore hands out transient object URLs for blobs. A URL is revoked the
// first time it is taken, or when it outlives the store's TTL.
type BlobStore struct {
	mu    sync.Mutex
	blobs map[string]Blob
	ttl   time.Duration
	now   func() time.Time
}

// NewBlobStore creates a store whose unclaimed blobs expire after ttl
func NewBlobStore(ttl time.Duration) *BlobStore {
	return &BlobStore{
		blobs: make(map[string]Blob),
		ttl:   ttl,
		now:   time.Now,
	}
}

// CreateObjectURL stores b and returns its id
func (s *BlobStore) CreateObjectURL(b Blob) string {
	id := uuid.NewString()
	b.created = s.now()

	s.mu.Lock()
	s.blobs[id] = b
	s.mu.Unlock()

	log.Debugf("[EXPORT] Created object URL %s (%d bytes)", id, len(b.Data))
	return id
}

// Take returns the blob for id and revokes it
func (s *BlobStore) Take(id string) (Blob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[id]
	if !ok {
		return Blob{}, false
	}
	delete(s.blobs, id)

	if s.expired(b) {
		return Blob{}, false
	}
	return b, true
}

// RevokeObjectURL drops id without downloading it
func (s *BlobStore) RevokeObjectURL(id string) {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
}

// Len returns the number of live object URLs
func (s *BlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Sweep revokes every expired blob and returns how many were dropped
func (s *BlobStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, b := range s.blobs {
		if s.expired(b) {
			delete(s.blobs, id)
			n++
		}
	}
	return n
}

// Run sweeps expired blobs every interval until ctx is done
func (s *BlobStore) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Infof("[EXPORT] Revoked %d expired object URLs", n)
			}
		}
	}
}

func (s *BlobStore) expired(b Blob) bool {
	return s.ttl > 0 && s.now().Sub(b.created) > s.ttl
}
