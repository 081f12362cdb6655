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

package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader/loadertest"
)

// dirSource serves files from a local directory tree.
type dirSource struct {
	root  string
	files []string
	fail  string
}

func (s *dirSource) Files(context.Context) ([]string, error) { return s.files, nil }

func (s *dirSource) Download(_ context.Context, name string) (string, error) {
	if name == s.fail {
		return "", errors.New("connection reset")
	}
	return filepath.Join(s.root, name), nil
}

func newDirSource(t *testing.T) *dirSource {
	t.Helper()
	root := t.TempDir()
	loadertest.WriteArtifacts(t, filepath.Join(root, "onnx"))
	// Non-ONNX artifacts live at the repo root on the Hub.
	for _, name := range []string{"vocab.txt", labels.IntentMapFile, labels.SlotMapFile} {
		require.NoError(t, os.Rename(filepath.Join(root, "onnx", name), filepath.Join(root, name)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# model"), 0o644))

	return &dirSource{root: root, files: []string{
		"README.md",
		"onnx/model.onnx",
		"onnx/intent_classifier.onnx",
		"intent_map.json",
		"slot_map.json",
		"vocab.txt",
	}}
}

func TestPull(t *testing.T) {
	modelsDir := t.TempDir()
	root := loader.VersionsRoot(modelsDir)
	loadertest.WriteVersion(t, modelsDir, 1)

	var reported []string
	v, err := Pull(context.Background(), newDirSource(t), root, func(downloaded, total int64, name string) {
		if total > 0 && downloaded == total {
			reported = append(reported, name)
		}
	})
	require.NoError(t, err)

	assert.Equal(t, 2, v.Number)
	assert.Equal(t, filepath.Join(root, "v2"), v.Path)
	assert.True(t, v.Complete)
	assert.Len(t, reported, 5)
	assert.NoFileExists(t, filepath.Join(v.Path, "README.md"))
	assert.FileExists(t, filepath.Join(v.Path, "model.onnx"))

	versions, err := ListVersions(root)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "v1", versions[0].Name)
	assert.Positive(t, versions[1].Size)
}

func TestPullRemovesPartialVersion(t *testing.T) {
	root := loader.VersionsRoot(t.TempDir())
	src := newDirSource(t)
	src.fail = "slot_map.json"

	_, err := Pull(context.Background(), src, root, nil)
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(root, "v1"))
	assert.NoDirExists(t, StagingDir(root, 1))
}

// gatedSource blocks the download of one file until release is closed.
type gatedSource struct {
	*dirSource
	gate    string
	reached chan struct{}
	release chan struct{}
}

func (s *gatedSource) Download(ctx context.Context, name string) (string, error) {
	if name == s.gate {
		close(s.reached)
		<-s.release
	}
	return s.dirSource.Download(ctx, name)
}

func TestPullHidesVersionUntilComplete(t *testing.T) {
	root := loader.VersionsRoot(t.TempDir())
	src := &gatedSource{
		dirSource: newDirSource(t),
		gate:      "vocab.txt",
		reached:   make(chan struct{}),
		release:   make(chan struct{}),
	}

	type result struct {
		v   Version
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := Pull(context.Background(), src, root, nil)
		done <- result{v, err}
	}()

	select {
	case <-src.reached:
	case r := <-done:
		t.Fatalf("pull finished before the gated file: %v", r.err)
	case <-time.After(10 * time.Second):
		t.Fatal("pull never reached the gated file")
	}

	// Everything but vocab.txt is on disk, none of it visible as a version.
	assert.DirExists(t, StagingDir(root, 1))
	assert.FileExists(t, filepath.Join(StagingDir(root, 1), "model.onnx"))
	assert.NoDirExists(t, filepath.Join(root, "v1"))
	_, ok, err := Latest(root)
	require.NoError(t, err)
	assert.False(t, ok)
	versions, err := ListVersions(root)
	require.NoError(t, err)
	assert.Empty(t, versions)

	close(src.release)
	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, filepath.Join(root, "v1"), r.v.Path)
	assert.True(t, r.v.Complete)
	assert.NoDirExists(t, StagingDir(root, 1))

	latest, ok, err := Latest(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, latest.Number)
}

func TestPullReplacesStaleStaging(t *testing.T) {
	root := loader.VersionsRoot(t.TempDir())
	stale := StagingDir(root, 1)
	require.NoError(t, os.MkdirAll(stale, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "leftover.bin"), []byte("x"), 0o644))

	v, err := Pull(context.Background(), newDirSource(t), root, nil)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(v.Path, "leftover.bin"))
	assert.NoDirExists(t, stale)
}

func TestPullRejectsIncompleteRepository(t *testing.T) {
	root := loader.VersionsRoot(t.TempDir())
	src := newDirSource(t)
	src.files = []string{"onnx/model.onnx", "vocab.txt"}

	_, err := Pull(context.Background(), src, root, nil)
	require.ErrorIs(t, err, loader.ErrNotFound)
	assert.Contains(t, err.Error(), "intent_classifier.onnx")
	assert.NoDirExists(t, root)
}

func TestLatestSkipsIncompleteVersions(t *testing.T) {
	modelsDir := t.TempDir()
	root := loader.VersionsRoot(modelsDir)
	loadertest.WriteVersion(t, modelsDir, 1)
	broken := loadertest.WriteVersion(t, modelsDir, 2)
	require.NoError(t, os.Remove(filepath.Join(broken, "vocab.txt")))

	v, ok, err := Latest(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v.Number)

	versions, err := ListVersions(root)
	require.NoError(t, err)
	assert.False(t, versions[1].Complete)
	assert.Equal(t, []string{"tokenizer.json|vocab.txt"}, versions[1].Missing)

	_, ok, err = Latest(filepath.Join(modelsDir, "nothing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectArtifactsPrefersShallowPath(t *testing.T) {
	got := selectArtifacts([]string{"onnx/fp16/model.onnx", "model.onnx", "onnx/model.onnx", "notes.txt"})
	assert.Equal(t, map[string]string{"model.onnx": "model.onnx"}, got)
}

func TestParseRef(t *testing.T) {
	id, err := ParseRef("hf:vimaan/nlu-joint-bert")
	require.NoError(t, err)
	assert.Equal(t, "vimaan/nlu-joint-bert", id)

	_, err = ParseRef("just-a-name")
	require.Error(t, err)
}
