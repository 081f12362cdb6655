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
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/backends"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
)

// Defaults applied by RunAsServer for unset Config fields.
const (
	DefaultApiUrl         = "http://localhost:11435"
	DefaultCacheTTL       = 2 * time.Minute
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxQueueSize   = 100
)

// Config configures a Vimaan server.
type Config struct {
	// ApiUrl is the address the HTTP API listens on.
	ApiUrl string `json:"api_url,omitempty"`

	// ModelsDir holds vimaan_nlu_model_best/v<N>/ directories.
	ModelsDir string `json:"models_dir,omitempty"`

	// ModelPath pins an explicit model version directory.
	ModelPath string `json:"model_path,omitempty"`

	// MaxLength is the tokenizer window.
	MaxLength int `json:"max_length,omitempty"`

	// Backend is the preferred inference backend ("onnx"). Empty picks the
	// highest priority available backend.
	Backend string `json:"backend,omitempty"`

	// Gpu is one of "auto", "cuda" or "off".
	Gpu string `json:"gpu,omitempty"`

	// NumThreads bounds intra-op threads per session. Zero lets the backend decide.
	NumThreads int `json:"num_threads,omitempty"`

	// CacheTtl is a duration string ("2m"). "0" disables the prediction cache.
	CacheTtl string `json:"cache_ttl,omitempty"`

	MaxConcurrentRequests int `json:"max_concurrent_requests,omitempty"`
	MaxQueueSize          int `json:"max_queue_size,omitempty"`

	// RequestTimeout is how long a request may wait in the queue ("30s").
	RequestTimeout string `json:"request_timeout,omitempty"`

	// HistoryDb is the SQLite file predictions are recorded to. Empty disables history.
	HistoryDb string `json:"history_db,omitempty"`

	// ReloadSchedule is a cron spec for checking for a newer model version.
	ReloadSchedule string `json:"reload_schedule,omitempty"`

	// DispatchTable is a YAML file overriding the builtin intent table.
	DispatchTable string `json:"dispatch_table,omitempty"`
}

// LoaderOptions translates the config into model loader options.
func (c Config) LoaderOptions(logger *zap.Logger) (loader.Options, error) {
	opts := loader.Options{
		ModelsDir: c.ModelsDir,
		Path:      c.ModelPath,
		MaxLength: c.MaxLength,
		Logger:    logger,
	}
	if c.Backend != "" {
		bt, err := backends.ParseBackendType(c.Backend)
		if err != nil {
			return loader.Options{}, err
		}
		opts.Backend = bt
	}
	if c.NumThreads > 0 {
		opts.SessionOptions = append(opts.SessionOptions, backends.WithSessionThreads(c.NumThreads))
	}
	if c.Gpu != "" {
		opts.SessionOptions = append(opts.SessionOptions, backends.WithSessionGPUMode(backends.ParseGPUMode(c.Gpu)))
	}
	return opts, nil
}

// cacheTTL returns the prediction cache TTL; zero disables caching.
func (c Config) cacheTTL() (time.Duration, error) {
	return parseDuration("cache_ttl", c.CacheTtl, DefaultCacheTTL)
}

func (c Config) requestTimeout() (time.Duration, error) {
	return parseDuration("request_timeout", c.RequestTimeout, DefaultRequestTimeout)
}

func parseDuration(key, s string, def time.Duration) (time.Duration, error) {
	switch s {
	case "":
		return def, nil
	case "0":
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}
