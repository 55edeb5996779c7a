package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edunexus-dev/cu-admissions-api/pkg/storage"
)

type fakeObjectStore struct {
	err     error
	objects map[string][]byte
}

func (f *fakeObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (storage.ObjectRef, error) {
	if f.err != nil {
		return storage.ObjectRef{}, f.err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = data
	return storage.ObjectRef{Key: key, URL: "https://cdn.example.edu/" + key}, nil
}

func (f *fakeObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object missing")
	}
	return data, nil
}

func newLocalStore(t *testing.T) *storage.LocalStorage {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return local
}

func TestUploadServicePrefersObjectStore(t *testing.T) {
	objects := &fakeObjectStore{}
	svc := NewUploadService(objects, newLocalStore(t), nil)

	stored, err := svc.Store(context.Background(), "2025/CCF/adm-reg-docs/Photo/P0170001.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	require.True(t, stored.Remote)
	require.Equal(t, "https://cdn.example.edu/2025/CCF/adm-reg-docs/Photo/P0170001.jpg", stored.URL)
	require.Contains(t, objects.objects, "2025/CCF/adm-reg-docs/Photo/P0170001.jpg")
}

func TestUploadServiceFallsBackWhenUnconfigured(t *testing.T) {
	objects := &fakeObjectStore{err: storage.ErrNotConfigured}
	local := newLocalStore(t)
	svc := NewUploadService(objects, local, nil)

	stored, err := svc.Store(context.Background(), "2025/CCF/adm-reg-docs/Photo/P0170001.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	require.False(t, stored.Remote)

	data, err := os.ReadFile(local.Path(filepath.FromSlash("2025/CCF/adm-reg-docs/Photo/P0170001.jpg")))
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), data)
}

func TestUploadServiceSurfacesRemoteFailures(t *testing.T) {
	objects := &fakeObjectStore{err: errors.New("access denied")}
	svc := NewUploadService(objects, newLocalStore(t), nil)

	_, err := svc.Store(context.Background(), "key.jpg", []byte("jpeg"), "image/jpeg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "access denied")
}

func TestUploadServiceFetchFallsBack(t *testing.T) {
	objects := &fakeObjectStore{err: storage.ErrNotConfigured}
	local := newLocalStore(t)
	svc := NewUploadService(objects, local, nil)

	_, err := svc.Store(context.Background(), "a/b.jpg", []byte("payload"), "image/jpeg")
	require.NoError(t, err)

	data, err := svc.Fetch(context.Background(), "a/b.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)
}
