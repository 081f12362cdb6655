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

// Package vimaan is the HTTP service around the aviation NLU pipeline.
package vimaan

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/backends"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/dispatch"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/history"
)

// VimaanNode holds the serving state shared by the HTTP handlers.
type VimaanNode struct {
	logger *zap.Logger

	modelsDir string
	reloader  *Reloader
	dispatch  *dispatch.Table

	// history is nil when history_db is not configured
	history *history.Store

	// Request queue for backpressure control
	requestQueue *RequestQueue

	// nil when caching is disabled
	predictionCache *PredictionCache
}

// Handler returns the root handler: health endpoints plus the /api routes.
func (vn *VimaanNode) Handler() http.Handler {
	rootMux := http.NewServeMux()

	// Health endpoints (outside /api prefix for k8s compatibility)
	rootMux.HandleFunc("GET /healthz", vn.handleHealthz)
	rootMux.HandleFunc("GET /readyz", vn.handleReadyz)

	rootMux.Handle("/api/", NewVimaanAPI(vn.logger, vn))

	return corsMiddleware(rootMux)
}

// corsMiddleware adds permissive CORS headers for the Vimaan API
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept, Origin")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// DefaultShutdownTimeout is the default time to wait for graceful shutdown
const DefaultShutdownTimeout = 30 * time.Second

// RunAsServer loads the model and serves the NLU API until ctx is done.
// If readyC is non-nil, it will be closed when the server is ready to accept requests.
func RunAsServer(ctx context.Context, zl *zap.Logger, config Config, readyC chan struct{}) {
	zl = zl.Named("vimaan")
	zl.Info("Starting vimaan node", zap.Any("config", config))

	if config.ApiUrl == "" {
		config.ApiUrl = DefaultApiUrl
	}
	u, err := url.Parse(config.ApiUrl)
	if err != nil {
		zl.Fatal("Invalid API URL", zap.String("url", config.ApiUrl), zap.Error(err))
	}

	gpuInfo := backends.DetectGPU()
	zl.Info("GPU detection complete",
		zap.Bool("available", gpuInfo.Available),
		zap.String("type", gpuInfo.Type),
		zap.String("device", gpuInfo.DeviceName))

	loaderOpts, err := config.LoaderOptions(zl.Named("loader"))
	if err != nil {
		zl.Fatal("Invalid model configuration", zap.Error(err))
	}
	cacheTTL, err := config.cacheTTL()
	if err != nil {
		zl.Fatal("Invalid cache configuration", zap.Error(err))
	}
	requestTimeout, err := config.requestTimeout()
	if err != nil {
		zl.Fatal("Invalid queue configuration", zap.Error(err))
	}

	table, err := dispatch.Load(config.DispatchTable)
	if err != nil {
		zl.Fatal("Failed to load dispatch table", zap.String("path", config.DispatchTable), zap.Error(err))
	}
	if table.Path != "" {
		zl.Info("Loaded dispatch table", zap.String("path", table.Path), zap.Int("intents", len(table.Intents)))
	}

	predictionCache := NewPredictionCache(cacheTTL, zl.Named("prediction-cache"))
	defer predictionCache.Close()

	reloader := NewReloader(loaderOpts, zl.Named("reloader"))
	reloader.OnSwap(predictionCache.Purge)
	if _, err := reloader.Reload(ctx); err != nil {
		zl.Fatal("Failed to load NLU model",
			zap.String("models_dir", config.ModelsDir),
			zap.String("model_path", config.ModelPath),
			zap.Error(err))
	}
	defer func() { _ = reloader.Close() }()

	if config.ReloadSchedule != "" {
		if err := reloader.Schedule(config.ReloadSchedule); err != nil {
			zl.Fatal("Invalid reload schedule", zap.Error(err))
		}
	}

	var store *history.Store
	if config.HistoryDb != "" {
		store, err = history.Open(config.HistoryDb)
		if err != nil {
			zl.Fatal("Failed to open history database", zap.String("path", config.HistoryDb), zap.Error(err))
		}
		defer func() { _ = store.Close() }()
		zl.Info("Recording prediction history", zap.String("path", config.HistoryDb))
	}

	node := &VimaanNode{
		logger:    zl,
		modelsDir: config.ModelsDir,
		reloader:  reloader,
		dispatch:  table,
		history:   store,
		requestQueue: NewRequestQueue(RequestQueueConfig{
			MaxConcurrentRequests: config.MaxConcurrentRequests,
			MaxQueueSize:          config.MaxQueueSize,
			RequestTimeout:        requestTimeout,
		}, zl.Named("queue")),
		predictionCache: predictionCache,
	}

	srv := &http.Server{
		Addr:        u.Host,
		Handler:     node.Handler(),
		ReadTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		zl.Info("Vimaan's api server starting", zap.String("address", config.ApiUrl))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Signal readiness after server starts
	if readyC != nil {
		close(readyC)
	}

	// Wait for context cancellation or server error
	select {
	case err := <-serverErr:
		if err != nil {
			zl.Fatal("HTTP server error", zap.Error(err))
		}
	case <-ctx.Done():
		zl.Info("Shutdown signal received, starting graceful shutdown...")
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer shutdownCancel()

	// Stop accepting new connections
	srv.SetKeepAlivesEnabled(false)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("Graceful shutdown failed, forcing close",
			zap.Error(err),
			zap.Duration("timeout", DefaultShutdownTimeout))
		_ = srv.Close()
	} else {
		zl.Info("Graceful shutdown completed successfully")
	}

	zl.Info("HTTP server stopped")
}
