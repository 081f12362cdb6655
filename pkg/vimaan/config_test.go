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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/backends"
)

func TestConfigLoaderOptions(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("defaults", func(t *testing.T) {
		opts, err := Config{ModelsDir: "/models"}.LoaderOptions(logger)
		require.NoError(t, err)
		assert.Equal(t, "/models", opts.ModelsDir)
		assert.Empty(t, opts.Path)
		assert.Equal(t, backends.BackendType(""), opts.Backend)
		assert.Empty(t, opts.SessionOptions)
		assert.Same(t, logger, opts.Logger)
	})

	t.Run("all fields", func(t *testing.T) {
		opts, err := Config{
			ModelsDir:  "/models",
			ModelPath:  "/models/vimaan_nlu_model_best/v2",
			MaxLength:  32,
			Backend:    "ORT",
			Gpu:        "off",
			NumThreads: 2,
		}.LoaderOptions(logger)
		require.NoError(t, err)
		assert.Equal(t, "/models/vimaan_nlu_model_best/v2", opts.Path)
		assert.Equal(t, 32, opts.MaxLength)
		assert.Equal(t, backends.BackendONNX, opts.Backend)
		assert.Len(t, opts.SessionOptions, 2)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Config{Backend: "tpu"}.LoaderOptions(logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown backend type")
	})
}

func TestConfigDurations(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		ttl     time.Duration
		timeout time.Duration
		wantErr string
	}{
		{name: "defaults", ttl: DefaultCacheTTL, timeout: DefaultRequestTimeout},
		{name: "explicit", config: Config{CacheTtl: "10s", RequestTimeout: "1m"}, ttl: 10 * time.Second, timeout: time.Minute},
		{name: "zero disables", config: Config{CacheTtl: "0", RequestTimeout: "0"}},
		{name: "invalid ttl", config: Config{CacheTtl: "soon"}, wantErr: `invalid cache_ttl "soon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ttl, err := tt.config.cacheTTL()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ttl, ttl)

			timeout, err := tt.config.requestTimeout()
			require.NoError(t, err)
			assert.Equal(t, tt.timeout, timeout)
		})
	}
}
