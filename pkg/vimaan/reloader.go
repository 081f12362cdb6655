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
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/nlu"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/registry"
)

// ErrNotLoaded is returned while no model version is serving.
var ErrNotLoaded = errors.New("no model loaded")

// serving is one loaded predictor plus the lock that keeps its bundle open
// while requests use it.
type serving struct {
	predictor *nlu.Predictor
	mu        sync.RWMutex
	closed    bool
}

// ReloadResult describes a reload.
type ReloadResult struct {
	Previous string `json:"previous,omitempty"`
	Current  string `json:"current"`
	Changed  bool   `json:"changed"`
}

// Reloader owns the serving model and swaps it for newer versions without
// interrupting requests.
type Reloader struct {
	opts   loader.Options
	logger *zap.Logger

	current atomic.Pointer[serving]
	// reloadMu serializes loads.
	reloadMu sync.Mutex

	onSwap []func()
	cron   *cron.Cron
}

// NewReloader creates a Reloader. Nothing is loaded until Reload is called.
func NewReloader(opts loader.Options, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &Reloader{opts: opts, logger: logger}
}

// OnSwap registers fn to run after a new version starts serving.
func (r *Reloader) OnSwap(fn func()) {
	r.onSwap = append(r.onSwap, fn)
}

// Ready reports whether a model is serving.
func (r *Reloader) Ready() bool {
	return r.current.Load() != nil
}

// Bundle returns the serving bundle, or nil.
func (r *Reloader) Bundle() *loader.Bundle {
	if s := r.current.Load(); s != nil {
		return s.predictor.Bundle()
	}
	return nil
}

// Acquire returns the serving predictor. The bundle stays open until the
// returned release function is called.
func (r *Reloader) Acquire() (*nlu.Predictor, func(), error) {
	for {
		s := r.current.Load()
		if s == nil {
			return nil, nil, ErrNotLoaded
		}
		s.mu.RLock()
		if !s.closed {
			return s.predictor, s.mu.RUnlock, nil
		}
		// Swapped out and closed between Load and RLock.
		s.mu.RUnlock()
	}
}

// Reload loads the newest complete version (or the pinned path) and swaps
// it in.
func (r *Reloader) Reload(ctx context.Context) (ReloadResult, error) {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	opts, _, err := r.resolve()
	if err != nil {
		RecordModelReload("failed")
		return ReloadResult{}, err
	}
	return r.reload(ctx, opts)
}

// ReloadIfNewer reloads when the models directory holds a complete version
// newer than the serving one. A pinned model path is never replaced.
func (r *Reloader) ReloadIfNewer(ctx context.Context) (ReloadResult, error) {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	var res ReloadResult
	current := r.Bundle()
	if current != nil {
		res.Previous = current.Name()
		res.Current = current.Name()
		if r.opts.Path != "" {
			RecordModelReload("unchanged")
			return res, nil
		}
	}

	opts, latest, err := r.resolve()
	if err != nil {
		return res, err
	}
	if current != nil && latest <= current.Version {
		RecordModelReload("unchanged")
		return res, nil
	}
	return r.reload(ctx, opts)
}

// resolve pins the newest complete version so a directory that is still
// downloading is never picked. The returned number is 0 when nothing was
// pinned.
func (r *Reloader) resolve() (loader.Options, int, error) {
	opts := r.opts
	if opts.Path != "" {
		return opts, 0, nil
	}
	latest, ok, err := registry.Latest(loader.VersionsRoot(opts.ModelsDir))
	if err != nil {
		return opts, 0, err
	}
	if !ok {
		return opts, 0, nil
	}
	opts.Path = latest.Path
	return opts, latest.Number, nil
}

func (r *Reloader) reload(ctx context.Context, opts loader.Options) (ReloadResult, error) {
	var res ReloadResult
	if prev := r.Bundle(); prev != nil {
		res.Previous = prev.Name()
	}

	start := time.Now()
	bundle, err := loader.Load(ctx, opts)
	if err != nil {
		RecordModelReload("failed")
		return res, fmt.Errorf("loading model: %w", err)
	}
	RecordModelLoadDuration(bundle.Name(), time.Since(start).Seconds())
	SetLoadedModelVersion(bundle.Version)

	next := &serving{predictor: nlu.NewPredictor(bundle, r.logger)}
	old := r.current.Swap(next)
	for _, fn := range r.onSwap {
		fn()
	}

	res.Current = bundle.Name()
	res.Changed = true
	RecordModelReload("loaded")
	r.logger.Info("Model serving",
		zap.String("version", res.Current),
		zap.String("previous", res.Previous),
		zap.Duration("load_time", time.Since(start)))

	if old != nil {
		go r.retire(old)
	}
	return res, nil
}

// retire closes a swapped-out model once in-flight requests release it.
func (r *Reloader) retire(s *serving) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	b := s.predictor.Bundle()
	if err := b.Close(); err != nil {
		r.logger.Warn("Closing retired model", zap.String("version", b.Name()), zap.Error(err))
	}
}

// Schedule checks for newer versions on the cron spec (5 fields or a
// descriptor such as "@every 10m").
func (r *Reloader) Schedule(spec string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser))
	if _, err := c.AddFunc(spec, r.scheduledCheck); err != nil {
		return fmt.Errorf("invalid reload_schedule %q: %w", spec, err)
	}
	r.cron = c
	c.Start()
	r.logger.Info("Model reload check scheduled", zap.String("schedule", spec))
	return nil
}

func (r *Reloader) scheduledCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	res, err := r.ReloadIfNewer(ctx)
	if err != nil {
		r.logger.Warn("Scheduled model reload failed", zap.Error(err))
		return
	}
	if res.Changed {
		r.logger.Info("Scheduled reload picked up a new model", zap.String("version", res.Current))
	}
}

// Close stops the schedule and closes the serving model.
func (r *Reloader) Close() error {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()
	s := r.current.Swap(nil)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.predictor.Bundle().Close()
}
