package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured signals that no object store endpoint/credentials are set.
// Callers use it to decide whether filesystem fallback applies; any other
// error from the store is a real failure and must propagate.
var ErrNotConfigured = errors.New("object store is not configured")

// ObjectRef identifies a stored object.
type ObjectRef struct {
	URL string
	Key string
}

// ObjectStoreOptions configures the S3-compatible client.
type ObjectStoreOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

// ObjectStore wraps an S3-compatible client. A zero-value handle (missing
// endpoint or credentials) is valid but reports ErrNotConfigured on use.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	endpoint  string
	useSSL    bool
	publicURL string
}

// NewObjectStore builds the store handle. Missing endpoint, credentials or
// bucket yields an unconfigured handle rather than an error.
func NewObjectStore(opts ObjectStoreOptions) (*ObjectStore, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" || opts.Bucket == "" {
		return &ObjectStore{}, nil
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	return &ObjectStore{
		client:    client,
		bucket:    opts.Bucket,
		endpoint:  opts.Endpoint,
		useSSL:    opts.UseSSL,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

// Configured reports whether a real client is attached.
func (s *ObjectStore) Configured() bool {
	return s != nil && s.client != nil
}

// Put uploads a buffer under the given key.
func (s *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (ObjectRef, error) {
	if !s.Configured() {
		return ObjectRef{}, ErrNotConfigured
	}
	key = strings.TrimLeft(key, "/")
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return ObjectRef{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return ObjectRef{URL: s.objectURL(key), Key: key}, nil
}

// Get downloads the object stored under key.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	key = strings.TrimLeft(key, "/")
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer obj.Close() //nolint:errcheck
	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// Remove deletes the object stored under key.
func (s *ObjectStore) Remove(ctx context.Context, key string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	key = strings.TrimLeft(key, "/")
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (s *ObjectStore) objectURL(key string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key)
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
