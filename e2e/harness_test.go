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

//go:build onnx && ORT

package e2e

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/registry"
)

// testModelsDir is the shared models directory for all e2e tests
var testModelsDir string

// modelDownloadMutex ensures only one model version is pulled at a time
var modelDownloadMutex sync.Mutex

// TestMain sets up the e2e test environment (models directory only - downloads are lazy)
func TestMain(m *testing.M) {
	testModelsDir = os.Getenv("VIMAAN_MODELS_DIR")
	cleanup := func() {}
	if testModelsDir == "" {
		var err error
		testModelsDir, err = os.MkdirTemp("", "vimaan-e2e-models-*")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create temp models dir: %v\n", err)
			os.Exit(1)
		}
		if os.Getenv("KEEP_TEST_MODELS") != "true" {
			dir := testModelsDir
			cleanup = func() { _ = os.RemoveAll(dir) }
		}
	}

	fmt.Printf("E2E Test Setup: Using models directory: %s\n", testModelsDir)

	code := m.Run()
	cleanup()
	os.Exit(code)
}

// ensureModel makes sure a complete model version exists under the shared
// models directory, pulling VIMAAN_E2E_REPO from HuggingFace when none does.
// The test is skipped when neither is available.
func ensureModel(t *testing.T) registry.Version {
	t.Helper()

	modelDownloadMutex.Lock()
	defer modelDownloadMutex.Unlock()

	root := loader.VersionsRoot(testModelsDir)
	if v, ok, err := registry.Latest(root); err == nil && ok {
		t.Logf("Model version %s already exists at %s", v.Name, v.Path)
		return v
	}

	repo := os.Getenv("VIMAAN_E2E_REPO")
	if repo == "" {
		t.Skip("No local model version and VIMAAN_E2E_REPO is not set")
	}
	repoID, err := registry.ParseRef(repo)
	if err != nil {
		t.Fatalf("Invalid VIMAAN_E2E_REPO %q: %v", repo, err)
	}

	t.Logf("Downloading model from HuggingFace: %s", repoID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Track download progress per file (only log at milestones)
	lastMilestone := make(map[string]int)
	progress := func(downloaded, total int64, filename string) {
		if total > 0 {
			percent := float64(downloaded) / float64(total) * 100
			milestone := int(percent / 25)
			if milestone > lastMilestone[filename] || (downloaded == total && lastMilestone[filename] < 4) {
				lastMilestone[filename] = milestone
				t.Logf("  %s: %.0f%%", filename, percent)
			}
		}
	}

	v, err := registry.Pull(ctx, registry.NewHubSource(repoID, os.Getenv("HF_TOKEN")), root, progress)
	if err != nil {
		t.Fatalf("Failed to pull model %s: %v", repoID, err)
	}

	t.Logf("Successfully downloaded model version %s", v.Name)
	return v
}

// findAvailablePort finds an available TCP port
func findAvailablePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("Failed to find available port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}
