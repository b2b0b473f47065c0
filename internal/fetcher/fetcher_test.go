package fetcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tealrobotco/drivefetch/internal/index"
	"github.com/tealrobotco/drivefetch/internal/logging"
)

// streamIndex serves a fixed byte stream (optionally failing partway
// through) for any handle.
type streamIndex struct {
	content []byte
	size    int64
	openErr error
	readErr error
	failAt  int
}

func (s *streamIndex) Open(ctx context.Context, h index.Handle) (io.ReadCloser, int64, error) {
	if s.openErr != nil {
		return nil, 0, s.openErr
	}
	var r io.Reader = bytes.NewReader(s.content)
	if s.readErr != nil {
		r = io.MultiReader(bytes.NewReader(s.content[:s.failAt]), errReader{s.readErr})
	}
	return io.NopCloser(r), s.size, nil
}

func (s *streamIndex) Search(ctx context.Context, q index.Query) ([]index.Handle, error) {
	return nil, errors.New("not implemented")
}

func (s *streamIndex) List(ctx context.Context, containerID string) ([]index.Handle, error) {
	return nil, errors.New("not implemented")
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }

func testLogger() logging.Logger {
	return logging.NewText(io.Discard, false)
}

func handle() index.Handle {
	return index.Handle{ID: "f1", Name: "artifact.zip"}
}

func TestFetch_WritesFullContent(t *testing.T) {
	content := []byte("0123456789abcdef")
	ix := &streamIndex{content: content, size: int64(len(content))}
	dest := filepath.Join(t.TempDir(), "artifact.zip")

	var fractions []float64
	f := New(ix, testLogger(), Options{
		ChunkSize: 4,
		Progress:  func(fr float64) { fractions = append(fractions, fr) },
	})

	require.NoError(t, f.Fetch(context.Background(), handle(), dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// Non-decreasing, ending at exactly 1.0.
	require.NotEmpty(t, fractions)
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
	assert.Equal(t, 1.0, fractions[len(fractions)-1])

	// No leftover temp files.
	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetch_UnknownSizeStillEndsAtOne(t *testing.T) {
	content := []byte("stream-of-unknown-length")
	ix := &streamIndex{content: content, size: -1}
	dest := filepath.Join(t.TempDir(), "artifact.zip")

	var fractions []float64
	f := New(ix, testLogger(), Options{
		ChunkSize: 8,
		Progress:  func(fr float64) { fractions = append(fractions, fr) },
	})

	require.NoError(t, f.Fetch(context.Background(), handle(), dest))

	require.NotEmpty(t, fractions)
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
}

func TestFetch_StreamErrorLeavesNoFile(t *testing.T) {
	content := []byte("0123456789")
	ix := &streamIndex{content: content, size: int64(len(content)), readErr: errors.New("connection reset"), failAt: 6}
	dir := t.TempDir()
	dest := filepath.Join(dir, "artifact.zip")

	f := New(ix, testLogger(), Options{ChunkSize: 3})
	err := f.Fetch(context.Background(), handle(), dest)

	var de *DownloadError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "artifact.zip", de.Name)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "destination must not exist after a failed download")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetch_FailedAttemptKeepsExistingDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "artifact.zip")
	require.NoError(t, os.WriteFile(dest, []byte("previous build"), 0o644))

	ix := &streamIndex{content: []byte("newer"), size: 5, readErr: errors.New("timeout"), failAt: 2}
	f := New(ix, testLogger(), Options{ChunkSize: 2})

	require.Error(t, f.Fetch(context.Background(), handle(), dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "previous build", string(got))
}

func TestFetch_OpenErrorWrapsDownloadError(t *testing.T) {
	cause := errors.New("403 forbidden")
	ix := &streamIndex{openErr: cause}
	f := New(ix, testLogger(), Options{})

	err := f.Fetch(context.Background(), handle(), filepath.Join(t.TempDir(), "artifact.zip"))

	var de *DownloadError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, cause)
}

func TestFetch_SuccessfulDownloadReplacesExistingFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "artifact.zip")
	require.NoError(t, os.WriteFile(dest, []byte("previous build"), 0o644))

	ix := &streamIndex{content: []byte("newer build"), size: 11}
	f := New(ix, testLogger(), Options{})

	require.NoError(t, f.Fetch(context.Background(), handle(), dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "newer build", string(got))
}
