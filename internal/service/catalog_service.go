package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

type catalogStore interface {
	FindByName(ctx context.Context, name string) (*models.Document, error)
	FindByID(ctx context.Context, id int64) (*models.Document, error)
	ListAll(ctx context.Context) ([]models.Document, error)
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool)
}

// CatalogService serves the document catalogue with a Redis read-through
// cache. The catalogue is tiny and changes rarely, so cached entries are
// served until the TTL expires. A nil Redis client degrades to direct
// database reads.
type CatalogService struct {
	store   catalogStore
	redis   *redis.Client
	ttl     time.Duration
	metrics cacheMetrics
	logger  *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(store catalogStore, redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{store: store, redis: redisClient, ttl: ttl, logger: logger}
}

// WithMetrics attaches cache counters.
func (s *CatalogService) WithMetrics(m cacheMetrics) *CatalogService {
	s.metrics = m
	return s
}

// FindByName resolves a catalogue entry, consulting the cache first.
func (s *CatalogService) FindByName(ctx context.Context, name string) (*models.Document, error) {
	cacheKey := "catalog:name:" + name
	if doc := s.fromCache(ctx, cacheKey); doc != nil {
		return doc, nil
	}
	doc, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cacheKey, doc)
	return doc, nil
}

// FindByID resolves a catalogue entry by primary key.
func (s *CatalogService) FindByID(ctx context.Context, id int64) (*models.Document, error) {
	return s.store.FindByID(ctx, id)
}

// ListAll returns the full catalogue.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Document, error) {
	return s.store.ListAll(ctx)
}

func (s *CatalogService) fromCache(ctx context.Context, key string) *models.Document {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false)
		}
		return nil
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("corrupt catalogue cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(true)
	}
	return &doc
}

func (s *CatalogService) toCache(ctx context.Context, key string, doc *models.Document) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("catalogue cache write failed", zap.String("key", key), zap.Error(err))
	}
}
