// Package drive implements the file index over the Google Drive v3 API.
//
// Authentication uses a base64-encoded service-account JSON blob with the
// read-only Drive scope, which matches how CI pipelines typically inject
// credentials. Queries include items from shared drives so folders owned
// by a workspace are visible to the service account.
package drive

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/tealrobotco/drivefetch/internal/index"
)

// handleFields limits list responses to what a Handle carries.
const handleFields = googleapi.Field("files(id, name, createdTime, size)")

type Index struct {
	svc *drive.Service
}

// New builds a Drive-backed index from base64-encoded service-account
// credentials. Extra client options are appended after the credential
// options, so tests can override the endpoint.
func New(ctx context.Context, credentialsBase64 string, opts ...option.ClientOption) (*Index, error) {
	raw, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}

	clientOpts := append([]option.ClientOption{
		option.WithCredentialsJSON(raw),
		option.WithScopes(drive.DriveReadonlyScope),
	}, opts...)

	svc, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("build drive service: %w", err)
	}

	return &Index{svc: svc}, nil
}

// NewWithService wraps an already-constructed Drive service.
func NewWithService(svc *drive.Service) *Index {
	return &Index{svc: svc}
}

func (ix *Index) Search(ctx context.Context, q index.Query) ([]index.Handle, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false",
		escapeQueryTerm(q.Name), escapeQueryTerm(q.ContainerID))
	return ix.list(ctx, query)
}

func (ix *Index) List(ctx context.Context, containerID string) ([]index.Handle, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", escapeQueryTerm(containerID))
	return ix.list(ctx, query)
}

func (ix *Index) list(ctx context.Context, query string) ([]index.Handle, error) {
	res, err := ix.svc.Files.List().
		Q(query).
		Fields(handleFields).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive list: %w", err)
	}

	handles := make([]index.Handle, 0, len(res.Files))
	for _, f := range res.Files {
		handles = append(handles, toHandle(f))
	}
	return handles, nil
}

func (ix *Index) Open(ctx context.Context, h index.Handle) (io.ReadCloser, int64, error) {
	resp, err := ix.svc.Files.Get(h.ID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, 0, fmt.Errorf("drive get media %s: %w", h.ID, err)
	}

	size := resp.ContentLength
	if size < 0 && h.Size > 0 {
		size = h.Size
	}
	return resp.Body, size, nil
}

func toHandle(f *drive.File) index.Handle {
	h := index.Handle{
		ID:   f.Id,
		Name: f.Name,
		Size: f.Size,
	}
	// createdTime is RFC 3339; leave Created zero when absent or malformed.
	if f.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			h.Created = t
		}
	}
	return h
}

// escapeQueryTerm escapes backslashes and single quotes for embedding in a
// Drive query string. Filenames with quotes would otherwise break out of
// the name='...' term.
func escapeQueryTerm(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
