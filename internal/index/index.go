// Package index defines the remote file-index capability: searching a
// storage container for a named file and opening its content stream.
//
// Implementations live in the subpackages drive (Google Drive) and s3
// (Amazon S3 or compatible stores such as MinIO). The resolver and fetcher
// only depend on the Index interface, which keeps them testable against
// hand-written fakes.
package index

import (
	"context"
	"io"
	"time"
)

// Handle is an opaque resolved reference to a remote file, sufficient to
// open a download stream. Handles are immutable value types: produced once
// by a search, consumed once by a download, never cached across runs.
type Handle struct {
	// ID uniquely identifies the file within the index.
	ID string
	// Name is the display name of the file.
	Name string
	// Size is the file size in bytes; 0 means unknown.
	Size int64
	// Created is the remote creation timestamp; the zero value means unknown.
	Created time.Time
}

// Query describes a single search attempt: an exact filename match scoped
// to one container. Removed/trashed objects are always excluded.
type Query struct {
	Name        string
	ContainerID string
}

// Index is the consumed capability over a remote object store.
type Index interface {
	// Search returns the files in the container whose name exactly matches
	// the query. A transport or server failure is returned as an error; the
	// caller decides whether to retry. Result ordering is whatever the
	// remote returns.
	Search(ctx context.Context, q Query) ([]Handle, error)

	// Open returns the content stream for a resolved handle together with
	// the total size in bytes (-1 when unknown).
	Open(ctx context.Context, h Handle) (io.ReadCloser, int64, error)

	// List returns every non-trashed file in the container. Used for
	// diagnostics only; it never participates in resolution.
	List(ctx context.Context, containerID string) ([]Handle, error)
}
