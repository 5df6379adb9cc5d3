// Package store persists the site's configuration documents as JSON objects
// in a dedicated bucket. Each document is a whole-file replace; there is no
// partial update.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/singleflight"

	"servant_backend/internal/adapters/storage"
)

// Document names. These are the object keys inside the site-config bucket.
const (
	DocBusiness        = "business.json"
	DocMenu            = "menu.json"
	DocPricing         = "pricing.json"
	DocGallery         = "gallery.json"
	DocSpecialtyImages = "specialty-images.json"
)

// DocumentStore reads and writes named JSON configuration documents.
type DocumentStore interface {
	// Load decodes the named document into out. It returns found=false
	// (and leaves out untouched) when the document has never been written.
	Load(ctx context.Context, name string, out any) (bool, error)

	// Save replaces the named document.
	Save(ctx context.Context, name string, v any) error
}

// ObjectStore is a DocumentStore backed by object storage. Concurrent reads
// of the same document are coalesced into a single storage round-trip.
type ObjectStore struct {
	storage storage.StorageService
	bucket  string
	group   singleflight.Group
}

// NewObjectStore creates a DocumentStore on top of the given bucket.
func NewObjectStore(svc storage.StorageService, bucket string) *ObjectStore {
	return &ObjectStore{storage: svc, bucket: bucket}
}

func (s *ObjectStore) Load(ctx context.Context, name string, out any) (bool, error) {
	raw, err, _ := s.group.Do(name, func() (any, error) {
		obj, err := s.storage.ReadObject(ctx, s.bucket, name)
		if err != nil {
			if s.storage.IsNotFound(err) {
				return []byte(nil), nil
			}
			return nil, err
		}
		defer obj.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(obj); err != nil {
			return nil, fmt.Errorf("read document %s: %w", name, err)
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return false, err
	}

	data := raw.([]byte)
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode document %s: %w", name, err)
	}
	return true, nil
}

func (s *ObjectStore) Save(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", name, err)
	}
	if err := s.storage.WriteObject(ctx, s.bucket, name, "application/json", bytes.NewReader(data), int64(len(data))); err != nil {
		return err
	}
	// Drop any in-flight coalesced read so the next Load sees this write.
	s.group.Forget(name)
	return nil
}

var _ DocumentStore = (*ObjectStore)(nil)
