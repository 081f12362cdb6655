// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vimaan

import (
	"context"
	"encoding/binary"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/nlu"
)

// PredictionCache caches predictions per model version and utterance.
// Cached predictions are shared and must be treated as read-only. A nil
// *PredictionCache predicts without caching.
type PredictionCache struct {
	cache   *ttlcache.Cache[string, *nlu.Prediction]
	sfGroup *singleflight.Group
	logger  *zap.Logger
	cancel  context.CancelFunc

	// Metrics
	hits   atomic.Uint64
	misses atomic.Uint64
	sfHits atomic.Uint64
}

// NewPredictionCache creates a prediction cache. It returns nil when ttl is
// not positive.
func NewPredictionCache(ttl time.Duration, logger *zap.Logger) *PredictionCache {
	if ttl <= 0 {
		return nil
	}
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *nlu.Prediction](ttl),
	)
	go cache.Start()

	ctx, cancel := context.WithCancel(context.Background())
	pc := &PredictionCache{
		cache:   cache,
		sfGroup: &singleflight.Group{},
		logger:  logger,
		cancel:  cancel,
	}

	go pc.logStats(ctx)

	return pc
}

// Predict returns the cached prediction for text or runs p and caches the
// result. The boolean reports a cache hit.
func (pc *PredictionCache) Predict(ctx context.Context, p *nlu.Predictor, text string, postprocess bool) (*nlu.Prediction, bool, error) {
	if pc == nil {
		pred, err := p.Predict(ctx, text, nlu.WithPostprocess(postprocess))
		return pred, false, err
	}

	key := pc.cacheKey(p, text, postprocess)

	if item := pc.cache.Get(key); item != nil {
		pc.hits.Add(1)
		RecordCacheHit("prediction")
		return item.Value(), true, nil
	}

	// Deduplicate concurrent identical utterances. The shared call must not
	// inherit one caller's cancellation, so it runs detached and each caller
	// waits on its own ctx.
	ch := pc.sfGroup.DoChan(key, func() (any, error) {
		pc.misses.Add(1)
		RecordCacheMiss("prediction")

		pred, err := p.Predict(context.WithoutCancel(ctx), text, nlu.WithPostprocess(postprocess))
		if err != nil {
			return nil, err
		}
		pc.cache.Set(key, pred, ttlcache.DefaultTTL)
		return pred, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, false, res.Err
	}

	if res.Shared {
		pc.sfHits.Add(1)
		pc.logger.Debug("Singleflight hit for prediction", zap.String("text", text))
	}

	return res.Val.(*nlu.Prediction), false, nil
}

// cacheKey hashes the serving bundle identity, the postprocess flag and the
// utterance.
func (pc *PredictionCache) cacheKey(p *nlu.Predictor, text string, postprocess bool) string {
	h := xxhash.New()

	b := p.Bundle()
	_, _ = h.WriteString(b.Name())
	_, _ = h.WriteString("@")
	_, _ = h.WriteString(strconv.FormatInt(b.LoadedAt.UnixNano(), 36))
	_, _ = h.WriteString("|")
	if postprocess {
		_, _ = h.WriteString("p")
	} else {
		_, _ = h.WriteString("r")
	}
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(text)

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], h.Sum64())
	return string(buf[:])
}

// Purge drops every cached prediction.
func (pc *PredictionCache) Purge() {
	if pc == nil {
		return
	}
	pc.cache.DeleteAll()
}

// Close stops the cache
func (pc *PredictionCache) Close() {
	if pc == nil {
		return
	}
	pc.cancel()
	pc.cache.Stop()
}

// logStats logs cache statistics periodically
func (pc *PredictionCache) logStats(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics := pc.cache.Metrics()
			if metrics.Hits > 0 || metrics.Misses > 0 {
				total := metrics.Hits + metrics.Misses
				hitRate := float64(metrics.Hits) / float64(total) * 100
				pc.logger.Info("Prediction cache stats",
					zap.Uint64("hits", metrics.Hits),
					zap.Uint64("misses", metrics.Misses),
					zap.Float64("hit_rate_pct", hitRate),
					zap.Uint64("singleflight_hits", pc.sfHits.Load()),
					zap.Int("items", pc.cache.Len()))
			}
		}
	}
}

// PredictionCacheStats holds prediction cache statistics
type PredictionCacheStats struct {
	Hits             uint64 `json:"hits"`
	Misses           uint64 `json:"misses"`
	SingleflightHits uint64 `json:"singleflight_hits"`
	Items            int    `json:"items"`
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() PredictionCacheStats {
	if pc == nil {
		return PredictionCacheStats{}
	}
	return PredictionCacheStats{
		Hits:             pc.hits.Load(),
		Misses:           pc.misses.Load(),
		SingleflightHits: pc.sfHits.Load(),
		Items:            pc.cache.Len(),
	}
}
