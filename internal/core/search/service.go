package search

import (
	"context"

	"shopsearch/internal/core/catalog"
	"shopsearch/internal/core/rank"
	"shopsearch/internal/logger"
)

const (
	// candidateLimit caps the indexed text search.
	candidateLimit = 500
	// memoryScanCap bounds the fallback scan of the in-memory store.
	memoryScanCap = 1000
)

// Service resolves a bounded candidate set for a query and hands it to the
// ranking engine. The store fallback is invisible to ranking: both paths
// yield the same candidate shape.
type Service struct {
	log    *logger.Logger
	store  *catalog.RedisStore
	memory *catalog.MemoryStore
	engine *rank.Engine
}

func NewService(store *catalog.RedisStore, memory *catalog.MemoryStore, engine *rank.Engine) *Service {
	return &Service{
		log:    logger.New("SearchService"),
		store:  store,
		memory: memory,
		engine: engine,
	}
}

func (s *Service) Search(ctx context.Context, query string, limit int) []rank.Result {
	candidates, err := s.store.TextSearch(ctx, query, candidateLimit)
	if err != nil {
		s.log.LogWarnf("text search failed, falling back to memory store: %v", err)
		candidates = nil
	}
	if len(candidates) == 0 {
		candidates = s.memory.Snapshot(memoryScanCap)
	}
	return s.engine.Rank(candidates, query, rank.Options{Limit: limit})
}
