// Package redisrepo provides a Redis-backed UploadRepository. Uploads are kept
// under a TTL so extracted resume text expires on its own; this is working
// state shared across replicas, not durable persistence.
package redisrepo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

const keyPrefix = "upload:"

// UploadRepo stores uploads as JSON values in Redis.
type UploadRepo struct {
	client  *redis.Client
	ttl     time.Duration
	entropy *ulid.MonotonicEntropy
}

// NewUploadRepo constructs a repository over an existing Redis client. ttl <= 0
// keeps uploads until Redis evicts them.
func NewUploadRepo(client *redis.Client, ttl time.Duration) *UploadRepo {
	return &UploadRepo{
		client:  client,
		ttl:     ttl,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0), //nolint:gosec // weak random is fine for ids
	}
}

type record struct {
	Text      string    `json:"text"`
	Filename  string    `json:"filename"`
	MIME      string    `json:"mime"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Create stores the upload under a fresh ULID and returns the id.
func (r *UploadRepo) Create(ctx domain.Context, u domain.Upload) (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), r.entropy)
	if err != nil {
		return "", fmt.Errorf("op=redisrepo.Create: %w: %v", domain.ErrInternal, err)
	}
	b, err := json.Marshal(record{Text: u.Text, Filename: u.Filename, MIME: u.MIME, Size: u.Size, CreatedAt: u.CreatedAt})
	if err != nil {
		return "", fmt.Errorf("op=redisrepo.Create: %w: %v", domain.ErrInternal, err)
	}
	if err := r.client.Set(ctx, keyPrefix+id.String(), b, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("op=redisrepo.Create: %w", err)
	}
	return id.String(), nil
}

// Get returns the upload for id, or ErrNotFound when the key is absent or
// already expired.
func (r *UploadRepo) Get(ctx domain.Context, id string) (domain.Upload, error) {
	b, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Upload{}, fmt.Errorf("op=redisrepo.Get: %w: upload %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Upload{}, fmt.Errorf("op=redisrepo.Get: %w", err)
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.Upload{}, fmt.Errorf("op=redisrepo.Get: %w: %v", domain.ErrInternal, err)
	}
	return domain.Upload{ID: id, Text: rec.Text, Filename: rec.Filename, MIME: rec.MIME, Size: rec.Size, CreatedAt: rec.CreatedAt}, nil
}

// Ping reports Redis connectivity; used by the readiness endpoint.
func (r *UploadRepo) Ping(ctx domain.Context) error {
	return r.client.Ping(ctx).Err()
}
