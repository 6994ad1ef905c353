package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"skillmatch/internal/domain/matching"

	"go.uber.org/zap"
)

const defaultCacheTTL = 7 * 24 * time.Hour

type Store interface {
	MGetJSON(ctx context.Context, keys []string, decode func(i int, raw []byte) error) ([]bool, error)
	MSetJSON(ctx context.Context, entries map[string]any, ttl time.Duration) error
}

// Cached memoizes vectors by model and text hash. Only cache misses reach
// the wrapped provider, still as one batch.
type Cached struct {
	next   matching.EmbeddingProvider
	store  Store
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(next matching.EmbeddingProvider, store Store, model string, ttl time.Duration, logger *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{next: next, store: store, model: model, ttl: ttl, logger: logger}
}

func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embedding:%s:%s", model, hex.EncodeToString(sum[:]))
}

func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = CacheKey(c.model, t)
	}

	out := make([][]float32, len(texts))
	hits, err := c.store.MGetJSON(ctx, keys, func(i int, raw []byte) error {
		var v []float32
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if len(v) == 0 {
			return fmt.Errorf("empty vector")
		}
		out[i] = v
		return nil
	})
	if err != nil {
		c.logger.Debug("embedding cache read failed", zap.Error(err))
		hits = make([]bool, len(texts))
	}

	var missTexts []string
	var missIdx []int
	for i, hit := range hits {
		if hit {
			continue
		}
		out[i] = nil
		missTexts = append(missTexts, texts[i])
		missIdx = append(missIdx, i)
	}
	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := c.next.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("provider returned %d vectors for %d texts", len(vecs), len(missTexts))
	}

	fresh := make(map[string]any, len(missIdx))
	for k, i := range missIdx {
		out[i] = vecs[k]
		fresh[keys[i]] = vecs[k]
	}
	if err := c.store.MSetJSON(ctx, fresh, c.ttl); err != nil {
		c.logger.Debug("embedding cache write failed", zap.Int("entries", len(fresh)), zap.Error(err))
	}

	c.logger.Debug("embedding cache",
		zap.Int("hits", len(texts)-len(missTexts)),
		zap.Int("misses", len(missTexts)),
	)
	return out, nil
}
