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
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic/encoder"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrQueueFull is returned when the wait queue is at capacity.
	ErrQueueFull = errors.New("request queue is full")

	// ErrRequestTimeout is returned when a request waited longer than the
	// configured timeout for a slot.
	ErrRequestTimeout = errors.New("request timed out waiting in queue")
)

// RequestQueueConfig configures a RequestQueue.
type RequestQueueConfig struct {
	// MaxConcurrentRequests is the number of requests processed at once.
	// Defaults to GOMAXPROCS.
	MaxConcurrentRequests int

	// MaxQueueSize is the number of requests allowed to wait for a slot.
	// Defaults to DefaultMaxQueueSize.
	MaxQueueSize int

	// RequestTimeout bounds the time spent waiting. Defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// QueueStats is a snapshot of queue occupancy.
type QueueStats struct {
	CurrentQueued int64  `json:"current_queued"`
	CurrentActive int64  `json:"current_active"`
	TotalRejected uint64 `json:"total_rejected"`
	TotalTimedOut uint64 `json:"total_timed_out"`
}

// RequestQueue limits concurrent inference and bounds the number of
// requests waiting behind it.
type RequestQueue struct {
	sem      *semaphore.Weighted
	maxQueue int64
	timeout  time.Duration
	logger   *zap.Logger

	queued   atomic.Int64
	active   atomic.Int64
	rejected atomic.Uint64
	timedOut atomic.Uint64
}

// NewRequestQueue creates a request queue.
func NewRequestQueue(config RequestQueueConfig, logger *zap.Logger) *RequestQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxConcurrentRequests <= 0 {
		config.MaxConcurrentRequests = runtime.GOMAXPROCS(0)
	}
	if config.MaxQueueSize <= 0 {
		config.MaxQueueSize = DefaultMaxQueueSize
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}

	logger.Info("Request queue configured",
		zap.Int("max_concurrent", config.MaxConcurrentRequests),
		zap.Int("max_queue", config.MaxQueueSize),
		zap.Duration("timeout", config.RequestTimeout))

	return &RequestQueue{
		sem:      semaphore.NewWeighted(int64(config.MaxConcurrentRequests)),
		maxQueue: int64(config.MaxQueueSize),
		timeout:  config.RequestTimeout,
		logger:   logger,
	}
}

// Acquire blocks until a processing slot is free. The returned release
// function must be called exactly once when processing is done.
func (q *RequestQueue) Acquire(ctx context.Context) (func(), error) {
	if q.sem.TryAcquire(1) {
		q.active.Add(1)
		return q.releaser(), nil
	}

	if q.queued.Add(1) > q.maxQueue {
		q.queued.Add(-1)
		q.rejected.Add(1)
		q.logger.Debug("Rejecting request, queue full", zap.Int64("max_queue", q.maxQueue))
		return nil, ErrQueueFull
	}
	defer q.queued.Add(-1)

	start := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	if err := q.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		q.timedOut.Add(1)
		return nil, ErrRequestTimeout
	}
	RecordQueueWaitTime(time.Since(start).Seconds())

	q.active.Add(1)
	return q.releaser(), nil
}

func (q *RequestQueue) releaser() func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			q.active.Add(-1)
			q.sem.Release(1)
		})
	}
}

// Stats returns the current queue statistics.
func (q *RequestQueue) Stats() QueueStats {
	return QueueStats{
		CurrentQueued: q.queued.Load(),
		CurrentActive: q.active.Load(),
		TotalRejected: q.rejected.Load(),
		TotalTimedOut: q.timedOut.Load(),
	}
}

// WriteQueueFullResponse writes a 503 asking the client to retry later.
func WriteQueueFullResponse(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = encoder.NewStreamEncoder(w).Encode(ErrorResponse{Error: ErrQueueFull.Error()})
}

// WriteTimeoutResponse writes a 504 for a request that timed out in the queue.
func WriteTimeoutResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusGatewayTimeout)
	_ = encoder.NewStreamEncoder(w).Encode(ErrorResponse{Error: ErrRequestTimeout.Error()})
}
