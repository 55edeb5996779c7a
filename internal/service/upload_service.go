package service

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
	"github.com/edunexus-dev/cu-admissions-api/pkg/storage"
)

// ObjectStore is the remote storage surface the upload service needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (storage.ObjectRef, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// FileStore is the local fallback surface.
type FileStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

// StoredFile describes where a file ended up.
type StoredFile struct {
	Key    string
	URL    string
	Remote bool
}

// UploadService stores document bytes remotely when the object store is
// configured and falls back to local disk when it is not. Remote failures
// other than missing configuration are surfaced, not hidden.
type UploadService struct {
	objects ObjectStore
	files   FileStore
	logger  *zap.Logger
}

// NewUploadService constructs the service.
func NewUploadService(objects ObjectStore, files FileStore, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{objects: objects, files: files, logger: logger}
}

// Store writes data under key, preferring the object store.
func (s *UploadService) Store(ctx context.Context, key string, data []byte, contentType string) (StoredFile, error) {
	if s.objects != nil {
		ref, err := s.objects.Put(ctx, key, data, contentType)
		if err == nil {
			return StoredFile{Key: ref.Key, URL: ref.URL, Remote: true}, nil
		}
		if !errors.Is(err, storage.ErrNotConfigured) {
			return StoredFile{}, appErrors.ErrFileUpload.Wrap(err)
		}
		s.logger.Debug("object store not configured, using local storage", zap.String("key", key))
	}
	if s.files == nil {
		return StoredFile{}, appErrors.ErrFileUpload.Wrap(errors.New("no storage backend available"))
	}
	saved, err := s.files.Save(key, data)
	if err != nil {
		return StoredFile{}, appErrors.ErrFileUpload.Wrap(err)
	}
	return StoredFile{Key: saved, URL: "/uploads/" + saved, Remote: false}, nil
}

// Fetch reads a stored file back, trying the object store first.
func (s *UploadService) Fetch(ctx context.Context, key string) ([]byte, error) {
	if s.objects != nil {
		data, err := s.objects.Get(ctx, key)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, storage.ErrNotConfigured) {
			return nil, err
		}
	}
	if s.files == nil {
		return nil, appErrors.ErrNotFound
	}
	file, err := s.files.Open(key)
	if err != nil {
		return nil, appErrors.ErrNotFound.Wrap(err)
	}
	defer file.Close() //nolint:errcheck
	return io.ReadAll(file)
}
