// Package s3 implements the file index over Amazon S3 or any compatible
// object store (e.g. MinIO).
//
// The container id is "bucket" or "bucket/prefix"; a search matches keys
// directly under the prefix whose base name equals the query name. Listing
// (rather than a point lookup) is deliberate: LIST visibility is exactly
// the eventual-consistency window the retry loop exists for.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tealrobotco/drivefetch/internal/index"
)

// Options configures the S3 client.
type Options struct {
	Region    string
	AccessKey string
	SecretKey string
	// BaseEndpoint overrides the AWS endpoint, e.g. "http://127.0.0.1:9000/"
	// for MinIO. Path-style addressing is enabled when set.
	BaseEndpoint string
}

type Index struct {
	client *awss3.Client
}

func New(ctx context.Context, o Options) (*Index, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(o.Region),
	}
	if o.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(opts *awss3.Options) {
		if o.BaseEndpoint != "" {
			opts.BaseEndpoint = aws.String(o.BaseEndpoint)
			opts.UsePathStyle = true
		}
	})

	return &Index{client: client}, nil
}

// NewWithClient wraps an already-constructed S3 client.
func NewWithClient(client *awss3.Client) *Index {
	return &Index{client: client}
}

func (ix *Index) Search(ctx context.Context, q index.Query) ([]index.Handle, error) {
	bucket, prefix := splitContainer(q.ContainerID)
	key := path.Join(prefix, q.Name)

	out, err := ix.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 list %s: %w", q.ContainerID, err)
	}

	var handles []index.Handle
	for _, obj := range out.Contents {
		// The prefix query also matches keys that merely start with the
		// name ("artifact.zip.sha256"); keep exact matches only.
		if aws.ToString(obj.Key) != key {
			continue
		}
		handles = append(handles, index.Handle{
			ID:      bucket + "/" + aws.ToString(obj.Key),
			Name:    q.Name,
			Size:    aws.ToInt64(obj.Size),
			Created: aws.ToTime(obj.LastModified),
		})
	}
	return handles, nil
}

func (ix *Index) List(ctx context.Context, containerID string) ([]index.Handle, error) {
	bucket, prefix := splitContainer(containerID)

	in := &awss3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		in.Prefix = aws.String(prefix + "/")
	}

	var handles []index.Handle
	for {
		out, err := ix.client.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("s3 list %s: %w", containerID, err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			handles = append(handles, index.Handle{
				ID:      bucket + "/" + key,
				Name:    path.Base(key),
				Size:    aws.ToInt64(obj.Size),
				Created: aws.ToTime(obj.LastModified),
			})
		}
		if !aws.ToBool(out.IsTruncated) {
			return handles, nil
		}
		in.ContinuationToken = out.NextContinuationToken
	}
}

func (ix *Index) Open(ctx context.Context, h index.Handle) (io.ReadCloser, int64, error) {
	bucket, key := splitContainer(h.ID)

	out, err := ix.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("s3 get %s: %w", h.ID, err)
	}

	size := aws.ToInt64(out.ContentLength)
	if size == 0 && h.Size > 0 {
		size = h.Size
	}
	return out.Body, size, nil
}

// splitContainer splits "bucket/some/prefix" into bucket and prefix parts.
func splitContainer(id string) (bucket, prefix string) {
	id = strings.Trim(id, "/")
	bucket, prefix, _ = strings.Cut(id, "/")
	return bucket, prefix
}
