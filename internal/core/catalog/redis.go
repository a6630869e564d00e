package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"shopsearch/internal/logger"
	rds "shopsearch/internal/platform/redis"

	"github.com/google/uuid"
)

const (
	productKeyPrefix = "product:"
	indexKeyPrefix   = "idx:"
)

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// RedisStore persists products as JSON blobs plus a per-token id index so
// TextSearch can resolve candidates without scanning the whole keyspace.
type RedisStore struct {
	redis *rds.Service
	log   *logger.Logger
}

func NewRedisStore(redis *rds.Service) *RedisStore {
	return &RedisStore{redis: redis, log: logger.New("CatalogStore")}
}

// Insert writes products and their index entries. A failed write skips that
// product and continues; the returned count only covers successful writes.
func (s *RedisStore) Insert(ctx context.Context, products []Product) (int, error) {
	inserted := 0
	for i := range products {
		p := products[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := s.redis.CacheSet(ctx, productKeyPrefix+p.ID, p, 0); err != nil {
			s.log.LogWarnf("insert skip %q: %v", p.Title, err)
			continue
		}
		if err := s.index(ctx, p); err != nil {
			s.log.LogWarnf("index %q: %v", p.Title, err)
		}
		inserted++
	}
	return inserted, nil
}

func (s *RedisStore) index(ctx context.Context, p Product) error {
	for _, tok := range Tokenize(p.Title + " " + p.Description + " " + p.Category) {
		if err := s.redis.Client().SAdd(ctx, indexKeyPrefix+tok, p.ID).Err(); err != nil {
			return err
		}
	}
	return nil
}

// TextSearch resolves candidates for a query via the token index, ranked by
// matched-token count, capped to limit. An empty result is not an error;
// callers fall back to the in-memory store either way.
func (s *RedisStore) TextSearch(ctx context.Context, query string, limit int) ([]Product, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	hits := map[string]int{}
	for _, tok := range tokens {
		ids, err := s.redis.Client().SMembers(ctx, indexKeyPrefix+tok).Result()
		if err != nil {
			return nil, fmt.Errorf("index lookup %q: %w", tok, err)
		}
		for _, id := range ids {
			hits[id]++
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(hits))
	for id := range hits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if hits[ids[i]] != hits[ids[j]] {
			return hits[ids[i]] > hits[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		var p Product
		if err := s.redis.CacheGet(ctx, productKeyPrefix+id, &p); err != nil {
			s.log.LogWarnf("load %s: %v", id, err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Tokenize lowercases and splits text into alphanumeric tokens of length >= 2.
func Tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	seen := map[string]struct{}{}
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 2 {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
