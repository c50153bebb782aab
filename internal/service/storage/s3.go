package storage

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/infra/metrics"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

const (
	backendS3 = "s3"

	metaName    = "file-name"
	metaCreated = "created-at"
	metaExpires = "expires-at"
)

// s3API is the part of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 stores blobs as objects under prefix. The expiry travels in the object
// metadata; Sweep deletes objects older than the retention.
type S3 struct {
	client s3API
	bucket string
	prefix string
	opts   options
	logger *logger.Logger
}

func NewS3(client s3API, bucket, prefix string, log *logger.Logger, opts ...Option) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		prefix: prefix,
		opts:   buildOptions(opts),
		logger: logger.OrNop(log),
	}
}

func (s *S3) key(id string) string { return s.prefix + id }

func (s *S3) Put(ctx context.Context, data []byte, name string) (*Object, error) {
	id := util.NewID()
	now := s.opts.now().UTC()
	expires := now.Add(s.opts.retention)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(id)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata: map[string]string{
			// metadata must be ASCII
			metaName:    url.QueryEscape(name),
			metaCreated: now.Format(time.RFC3339),
			metaExpires: expires.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to upload blob to s3")
	}

	metrics.IncStorage(backendS3, "put")
	s.logger.Info("saved file to s3", "id", id, "bucket", s.bucket, "size", len(data))

	return &Object{ID: id, Name: name, Data: data, CreatedAt: now, ExpiresAt: expires}, nil
}

func (s *S3) Get(ctx context.Context, id string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isS3NotFound(err) {
			metrics.IncStorage(backendS3, "miss")
			return nil, notFound(id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to fetch blob from s3")
	}
	defer out.Body.Close()

	obj := &Object{ID: id}
	if name, err := url.QueryUnescape(out.Metadata[metaName]); err == nil {
		obj.Name = name
	}
	obj.CreatedAt, _ = time.Parse(time.RFC3339, out.Metadata[metaCreated])
	obj.ExpiresAt, err = time.Parse(time.RFC3339, out.Metadata[metaExpires])
	if err != nil && out.LastModified != nil {
		obj.ExpiresAt = out.LastModified.Add(s.opts.retention)
	}

	if !s.opts.now().Before(obj.ExpiresAt) {
		metrics.IncStorage(backendS3, "expire")
		_ = s.Delete(ctx, id)
		return nil, notFound(id)
	}

	obj.Data, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to read blob body")
	}

	metrics.IncStorage(backendS3, "get")
	return obj, nil
}

func (s *S3) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil && !isS3NotFound(err) {
		return errors.Wrap(err, errors.ErrCodeStorage, "failed to delete blob from s3")
	}
	return nil
}

// Sweep deletes objects under the prefix whose last write is older than
// the retention.
func (s *S3) Sweep(ctx context.Context) (int, error) {
	cutoff := s.opts.now().Add(-s.opts.retention)
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	removed := 0
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return removed, errors.Wrap(err, errors.ErrCodeStorage, "failed to list s3 blobs")
		}
		for _, o := range page.Contents {
			if o.LastModified == nil || o.LastModified.After(cutoff) {
				continue
			}
			if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    o.Key,
			}); err != nil {
				s.logger.Warn("failed to delete expired blob", "key", aws.ToString(o.Key), "error", err)
				continue
			}
			metrics.IncStorage(backendS3, "expire")
			removed++
		}
	}
	return removed, nil
}

func isS3NotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if stderrors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
