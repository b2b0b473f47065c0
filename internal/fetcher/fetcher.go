// Package fetcher downloads a resolved file to a local path.
//
// Content is pulled in fixed-size chunks with a progress fraction emitted
// after each one, accumulated in memory, and persisted in a single
// write-then-rename step. A download that fails mid-stream therefore never
// leaves a partial file at the destination, and a pre-existing destination
// is never truncated by a failed attempt.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/tealrobotco/drivefetch/internal/index"
	"github.com/tealrobotco/drivefetch/internal/logging"
	"github.com/tealrobotco/drivefetch/internal/progress"
)

// DefaultChunkSize is the read size per chunk (1 MiB).
const DefaultChunkSize = 1 << 20

// DownloadError reports a failed transfer for a file that was already
// located. Terminal: the retry loop does not apply here.
type DownloadError struct {
	Name string
	Err  error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %q: %v", e.Name, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Options configures a Fetcher.
type Options struct {
	// ChunkSize is the per-read chunk size; DefaultChunkSize when <= 0.
	ChunkSize int
	// Progress receives the completed fraction after each chunk.
	// progress.Discard when nil.
	Progress progress.Func
}

type Fetcher struct {
	index    index.Index
	log      logging.Logger
	chunk    int
	progress progress.Func
}

func New(ix index.Index, log logging.Logger, opts Options) *Fetcher {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Progress == nil {
		opts.Progress = progress.Discard
	}
	return &Fetcher{index: ix, log: log, chunk: opts.ChunkSize, progress: opts.Progress}
}

// Fetch streams the handle's content and writes it to destPath. Any error
// before the final write aborts with a *DownloadError and leaves destPath
// untouched.
func (f *Fetcher) Fetch(ctx context.Context, h index.Handle, destPath string) error {
	f.log.Info(ctx, "downloading file", "name", h.Name, "id", h.ID, "dest", destPath)

	rc, size, err := f.index.Open(ctx, h)
	if err != nil {
		return &DownloadError{Name: h.Name, Err: err}
	}
	defer rc.Close()

	buf, err := f.stream(rc, size)
	if err != nil {
		return &DownloadError{Name: h.Name, Err: err}
	}

	if err := persist(buf.Bytes(), destPath); err != nil {
		return &DownloadError{Name: h.Name, Err: err}
	}

	f.log.Info(ctx, "download complete", "name", h.Name, "dest", destPath, "bytes", buf.Len())
	return nil
}

// stream pulls chunks until EOF, emitting a monotonically non-decreasing
// fraction after each chunk and exactly one final 1.0.
func (f *Fetcher) stream(r io.Reader, size int64) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	chunk := make([]byte, f.chunk)
	emitted := -1.0

	emit := func(fraction float64) {
		if fraction > emitted {
			emitted = fraction
			f.progress(fraction)
		}
	}

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			emit(fraction(int64(buf.Len()), size))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	emit(1.0)
	return &buf, nil
}

// fraction maps accumulated bytes to [0,1). An unknown total reports 0
// until completion; the caller emits the final 1.0.
func fraction(read, size int64) float64 {
	if size <= 0 {
		return 0
	}
	f := float64(read) / float64(size)
	if f >= 1 {
		// Hold just under 1.0 so completion is what reports 100%.
		return 0.999999
	}
	return f
}

// persist writes data next to destPath and renames it into place, so a
// crash mid-write cannot leave a truncated destination.
func persist(data []byte, destPath string) error {
	tmp := fmt.Sprintf("%s.%s.part", destPath, uuid.NewString())

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, destPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename to %s: %w", destPath, err)
	}
	return nil
}
