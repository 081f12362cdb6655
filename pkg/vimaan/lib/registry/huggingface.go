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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gomlx/go-huggingface/hub"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/joint"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/modelversion"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/tokenizer"
)

// ArtifactFiles are the files copied into a version directory. Repo paths
// are flattened ("onnx/model.onnx" -> "model.onnx").
var ArtifactFiles = []string{
	joint.EncoderFile,
	joint.IntentHeadFile,
	labels.IntentMapFile,
	labels.SlotMapFile,
	tokenizer.TokenizerFile,
	tokenizer.VocabFile,
	"tokenizer_config.json",
	"special_tokens_map.json",
	"config.json",
}

// ProgressHandler is called to report download progress
type ProgressHandler func(downloaded, total int64, filename string)

// Source is a remote model repository.
type Source interface {
	// Files lists every file path in the repository.
	Files(ctx context.Context) ([]string, error)
	// Download fetches a file and returns a local path to read it from.
	Download(ctx context.Context, name string) (string, error)
}

// HubSource reads a Hugging Face Hub repository through the local hub cache.
type HubSource struct {
	repo *hub.Repo
}

// NewHubSource returns a source for repoID; token may be empty for public
// repositories.
func NewHubSource(repoID, token string) *HubSource {
	repo := hub.New(repoID)
	if token != "" {
		repo = repo.WithAuth(token)
	}
	return &HubSource{repo: repo}
}

func (s *HubSource) Files(ctx context.Context) ([]string, error) {
	var files []string
	for fileName, err := range s.repo.IterFileNames() {
		if err != nil {
			return nil, fmt.Errorf("listing files: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files = append(files, fileName)
	}
	return files, nil
}

func (s *HubSource) Download(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.repo.DownloadFile(name)
}

// ParseRef accepts "hf:owner/repo" or "owner/repo".
func ParseRef(ref string) (string, error) {
	repoID := strings.TrimPrefix(ref, "hf:")
	parts := strings.Split(repoID, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid model reference %q, expected owner/repo", ref)
	}
	return repoID, nil
}

// Pull copies the model artifacts of src into the next free v<N> directory
// under root. Files land in a hidden staging directory that is renamed to
// v<N> only once every file is written, so readers never see a partial
// version. Nothing is left behind if any file fails.
func Pull(ctx context.Context, src Source, root string, progress ProgressHandler) (Version, error) {
	files, err := src.Files(ctx)
	if err != nil {
		return Version{}, err
	}
	selected := selectArtifacts(files)
	if missing := missingFrom(selected); len(missing) > 0 {
		return Version{}, fmt.Errorf("%w: repository is missing %s", loader.ErrNotFound, strings.Join(missing, ", "))
	}

	dir, n, err := modelversion.NextDir(root)
	if err != nil {
		return Version{}, err
	}
	staging := StagingDir(root, n)
	if err := os.RemoveAll(staging); err != nil {
		return Version{}, fmt.Errorf("clearing staging directory: %w", err)
	}
	if err := os.MkdirAll(staging, 0755); err != nil {
		return Version{}, fmt.Errorf("creating directory: %w", err)
	}

	if err := download(ctx, src, selected, staging, progress); err != nil {
		_ = os.RemoveAll(staging)
		return Version{}, err
	}
	if err := os.Rename(staging, dir); err != nil {
		_ = os.RemoveAll(staging)
		return Version{}, fmt.Errorf("publishing %s: %w", modelversion.DirName(n), err)
	}

	v := Version{Number: n, Name: modelversion.DirName(n), Path: dir, Missing: loader.MissingArtifacts(dir)}
	v.Complete = len(v.Missing) == 0
	v.Size, v.ModifiedAt = dirStats(dir)
	return v, nil
}

// StagingDir is where Pull writes version n before publishing it. The
// leading dot keeps it out of version listings.
func StagingDir(root string, n int) string {
	return filepath.Join(root, "."+modelversion.DirName(n)+".partial")
}

func download(ctx context.Context, src Source, files map[string]string, dir string, progress ProgressHandler) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, destName := range names {
		localPath, err := src.Download(ctx, files[destName])
		if err != nil {
			return fmt.Errorf("downloading %s: %w", files[destName], err)
		}

		destPath := filepath.Join(dir, destName)
		if progress != nil {
			progress(0, 0, destName)
		}
		if err := copyFile(localPath, destPath); err != nil {
			return fmt.Errorf("copying %s: %w", destName, err)
		}
		if progress != nil {
			if info, err := os.Stat(destPath); err == nil {
				progress(info.Size(), info.Size(), destName)
			}
		}
	}
	return nil
}

// selectArtifacts maps flattened artifact names to repo paths, preferring
// the shallowest path when a name appears more than once.
func selectArtifacts(files []string) map[string]string {
	selected := make(map[string]string)
	for _, f := range files {
		base := filepath.Base(f)
		if !slices.Contains(ArtifactFiles, base) {
			continue
		}
		if prev, ok := selected[base]; ok && strings.Count(prev, "/") <= strings.Count(f, "/") {
			continue
		}
		selected[base] = f
	}
	return selected
}

func missingFrom(selected map[string]string) []string {
	var missing []string
	for _, name := range loader.RequiredFiles {
		if _, ok := selected[name]; !ok {
			missing = append(missing, name)
		}
	}
	_, hasJSON := selected[tokenizer.TokenizerFile]
	_, hasVocab := selected[tokenizer.VocabFile]
	if !hasJSON && !hasVocab {
		missing = append(missing, tokenizer.TokenizerFile+"|"+tokenizer.VocabFile)
	}
	return missing
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copying: %w", err)
	}

	return dstFile.Close()
}
