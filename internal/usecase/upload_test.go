package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

type stubUploadRepo struct {
	created []domain.Upload
	idSeq   int
	err     error
}

func (r *stubUploadRepo) Create(_ domain.Context, u domain.Upload) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.idSeq++
	u.ID = fmt.Sprintf("u-%d", r.idSeq)
	r.created = append(r.created, u)
	return u.ID, nil
}

func (r *stubUploadRepo) Get(_ domain.Context, id string) (domain.Upload, error) {
	for _, u := range r.created {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.Upload{}, domain.ErrNotFound
}

func TestIngest_NormalizesAndStores(t *testing.T) {
	t.Parallel()
	repo := &stubUploadRepo{}
	svc := usecase.NewUploadService(repo)
	u, err := svc.Ingest(context.Background(), "  Jane\r\nDoe  ", "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "Jane\nDoe", u.Text)
	assert.Equal(t, "application/pdf", u.MIME)
	assert.Equal(t, int64(len(u.Text)), u.Size)
}

func TestIngest_EmptyTextAccepted(t *testing.T) {
	t.Parallel()
	repo := &stubUploadRepo{}
	svc := usecase.NewUploadService(repo)
	u, err := svc.Ingest(context.Background(), "", "broken.pdf")
	require.NoError(t, err)
	assert.Empty(t, u.Text)
	assert.Zero(t, u.Size)
}

func TestIngest_RepoError(t *testing.T) {
	t.Parallel()
	svc := usecase.NewUploadService(&stubUploadRepo{err: errors.New("down")})
	_, err := svc.Ingest(context.Background(), "text", "cv.txt")
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	t.Parallel()
	repo := &stubUploadRepo{}
	svc := usecase.NewUploadService(repo)
	u, err := svc.Ingest(context.Background(), "hello", "cv.txt")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
