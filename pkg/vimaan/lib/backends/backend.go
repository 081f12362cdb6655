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

// Package backends provides the inference sessions the joint intent+slot
// model runs on.
//
// Available backends:
//   - ONNX Runtime: requires -tags="onnx,ORT" and libonnxruntime at run time
//
// Build example:
//
//	go build -tags="onnx,ORT" ./pkg/vimaan/cmd
//
// Backends self-register in init(); selection follows a configurable
// priority order.
package backends

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BackendType identifies the inference backend
type BackendType string

const (
	// BackendONNX is the ONNX Runtime backend - fast CPU/GPU inference
	BackendONNX BackendType = "onnx"
)

// ErrNoBackend is returned when no registered backend is available, e.g. a
// binary built without the onnx,ORT tags.
var ErrNoBackend = errors.New("no inference backend available")

// Backend represents an inference backend that can open sessions.
type Backend interface {
	// Type returns the backend type identifier
	Type() BackendType

	// Name returns a human-readable name (e.g., "ONNX Runtime (CUDA)")
	Name() string

	// Available returns true if this backend can be used in the current environment.
	Available() bool

	// Priority returns the default priority (lower = higher priority).
	Priority() int

	// SessionFactory returns a factory for creating sessions.
	SessionFactory() SessionFactory
}

var (
	registry   = make(map[BackendType]Backend)
	registryMu sync.RWMutex

	defaultPriority = []BackendType{BackendONNX}
	configPriority  []BackendType
	priorityMu      sync.RWMutex
)

// RegisterBackend registers a backend. Called by backend implementations in init().
// Later registrations for the same type overwrite earlier ones.
func RegisterBackend(b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[b.Type()] = b
}

// unregisterBackend is used by tests.
func unregisterBackend(t BackendType) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, t)
}

// GetBackend returns the backend for the given type, if registered.
func GetBackend(t BackendType) (Backend, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[t]
	return b, ok
}

// ListAvailable returns all available backends, configured priority first.
func ListAvailable() []Backend {
	priority := GetPriority()

	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Backend, 0, len(registry))
	seen := make(map[BackendType]bool)
	for _, t := range priority {
		if b, ok := registry[t]; ok && b.Available() {
			result = append(result, b)
			seen[t] = true
		}
	}

	var rest []Backend
	for t, b := range registry {
		if !seen[t] && b.Available() {
			rest = append(rest, b)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].Priority() < rest[j].Priority()
	})
	return append(result, rest...)
}

// SetPriority sets the backend selection priority order.
func SetPriority(order []BackendType) {
	priorityMu.Lock()
	defer priorityMu.Unlock()
	configPriority = append([]BackendType(nil), order...)
}

// GetPriority returns the configured priority, or the default.
func GetPriority() []BackendType {
	priorityMu.RLock()
	defer priorityMu.RUnlock()
	if len(configPriority) > 0 {
		return append([]BackendType(nil), configPriority...)
	}
	return append([]BackendType(nil), defaultPriority...)
}

// GetBackendWithFallback returns the preferred backend if it is available,
// else the first available one.
func GetBackendWithFallback(preferred BackendType) (Backend, error) {
	if preferred != "" {
		if b, ok := GetBackend(preferred); ok && b.Available() {
			return b, nil
		}
	}
	if available := ListAvailable(); len(available) > 0 {
		return available[0], nil
	}
	if preferred == "" {
		return nil, ErrNoBackend
	}
	return nil, fmt.Errorf("%w (preferred: %s)", ErrNoBackend, preferred)
}

// ParseBackendType parses a string into BackendType. Empty selects the
// default.
func ParseBackendType(s string) (BackendType, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "onnx", "ort":
		return BackendONNX, nil
	default:
		return "", fmt.Errorf("unknown backend type: %q (valid: onnx)", s)
	}
}
