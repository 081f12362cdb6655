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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRequestQueue_Acquire(t *testing.T) {
	q := NewRequestQueue(RequestQueueConfig{
		MaxConcurrentRequests: 1,
		MaxQueueSize:          1,
		RequestTimeout:        5 * time.Second,
	}, zaptest.NewLogger(t))

	release, err := q.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.Stats().CurrentActive)

	// Second request waits for the slot.
	acquired := make(chan func(), 1)
	go func() {
		r, err := q.Acquire(context.Background())
		if err == nil {
			acquired <- r
		}
	}()
	require.Eventually(t, func() bool { return q.Stats().CurrentQueued == 1 }, time.Second, time.Millisecond)

	// Third request finds the queue full.
	_, err = q.Acquire(context.Background())
	require.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, uint64(1), q.Stats().TotalRejected)

	release()
	release() // idempotent

	select {
	case r := <-acquired:
		assert.Equal(t, int64(0), q.Stats().CurrentQueued)
		assert.Equal(t, int64(1), q.Stats().CurrentActive)
		r()
	case <-time.After(time.Second):
		t.Fatal("waiting request was not admitted")
	}
	assert.Equal(t, int64(0), q.Stats().CurrentActive)
}

func TestRequestQueue_Timeout(t *testing.T) {
	q := NewRequestQueue(RequestQueueConfig{
		MaxConcurrentRequests: 1,
		MaxQueueSize:          10,
		RequestTimeout:        20 * time.Millisecond,
	}, zaptest.NewLogger(t))

	release, err := q.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	_, err = q.Acquire(context.Background())
	require.ErrorIs(t, err, ErrRequestTimeout)
	assert.Equal(t, uint64(1), q.Stats().TotalTimedOut)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = q.Acquire(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(1), q.Stats().TotalTimedOut)
}

func TestRequestQueue_Defaults(t *testing.T) {
	q := NewRequestQueue(RequestQueueConfig{}, nil)
	assert.Equal(t, int64(DefaultMaxQueueSize), q.maxQueue)
	assert.Equal(t, DefaultRequestTimeout, q.timeout)
}

func TestWriteQueueResponses(t *testing.T) {
	w := httptest.NewRecorder()
	WriteQueueFullResponse(w, 5*time.Second)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), ErrQueueFull.Error())

	w = httptest.NewRecorder()
	WriteTimeoutResponse(w)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), ErrRequestTimeout.Error())
}
