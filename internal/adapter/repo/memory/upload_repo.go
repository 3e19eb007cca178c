// Package memory provides an in-process UploadRepository. Uploads are
// request-scoped working state, not durable data, so a process-local map is
// the default store when no Redis is configured.
package memory

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// UploadRepo stores uploads in a mutex-guarded map keyed by ULID.
type UploadRepo struct {
	mu      sync.RWMutex
	uploads map[string]domain.Upload
	entropy *ulid.MonotonicEntropy
}

// NewUploadRepo constructs an empty in-memory repository.
func NewUploadRepo() *UploadRepo {
	return &UploadRepo{
		uploads: make(map[string]domain.Upload),
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0), //nolint:gosec // weak random is fine for ids
	}
}

// Create stores the upload under a fresh ULID and returns the id.
func (r *UploadRepo) Create(_ domain.Context, u domain.Upload) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), r.entropy)
	if err != nil {
		return "", fmt.Errorf("op=memory.Create: %w: %v", domain.ErrInternal, err)
	}
	u.ID = id.String()
	r.uploads[u.ID] = u
	return u.ID, nil
}

// Get returns the upload for id or ErrNotFound.
func (r *UploadRepo) Get(_ domain.Context, id string) (domain.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.uploads[id]
	if !ok {
		return domain.Upload{}, fmt.Errorf("op=memory.Get: %w: upload %s", domain.ErrNotFound, id)
	}
	return u, nil
}
