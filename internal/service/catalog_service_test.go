package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
)

type fakeCatalogStore struct {
	docs      map[string]*models.Document
	nameCalls int
}

func (f *fakeCatalogStore) FindByName(_ context.Context, name string) (*models.Document, error) {
	f.nameCalls++
	doc, ok := f.docs[name]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return doc, nil
}

func (f *fakeCatalogStore) FindByID(_ context.Context, id int64) (*models.Document, error) {
	for _, doc := range f.docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (f *fakeCatalogStore) ListAll(_ context.Context) ([]models.Document, error) {
	out := make([]models.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func TestCatalogService_FindByNameWithoutRedis(t *testing.T) {
	store := &fakeCatalogStore{docs: map[string]*models.Document{
		"Photo": {ID: 1, Name: "Photo", Code: "P"},
	}}
	svc := NewCatalogService(store, nil, 0, nil)

	doc, err := svc.FindByName(context.Background(), "Photo")
	require.NoError(t, err)
	require.Equal(t, "P", doc.Code)

	// Without a cache every lookup hits the store.
	_, err = svc.FindByName(context.Background(), "Photo")
	require.NoError(t, err)
	require.Equal(t, 2, store.nameCalls)
}

func TestCatalogService_FindByNameUnknown(t *testing.T) {
	store := &fakeCatalogStore{docs: map[string]*models.Document{}}
	svc := NewCatalogService(store, nil, 0, nil)

	_, err := svc.FindByName(context.Background(), "Passport")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogService_FindByID(t *testing.T) {
	store := &fakeCatalogStore{docs: map[string]*models.Document{
		"Signature": {ID: 2, Name: "Signature", Code: "S"},
	}}
	svc := NewCatalogService(store, nil, 0, nil)

	doc, err := svc.FindByID(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Signature", doc.Name)
}
