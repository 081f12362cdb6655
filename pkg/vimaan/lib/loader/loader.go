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

// Package loader materializes a versioned NLU model directory into a Bundle:
// the joint model, its tokenizer and both label maps, loaded as one unit.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/backends"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/joint"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/modelversion"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/tokenizer"
)

// ModelName is the directory under the models dir that holds the v<N>
// version directories.
const ModelName = "vimaan_nlu_model_best"

// ErrNotFound is returned when no model version exists or a version is
// missing required artifacts.
var ErrNotFound = modelversion.ErrNotFound

// RequiredFiles must all be present in a version directory, along with a
// tokenizer (tokenizer.json or vocab.txt).
var RequiredFiles = []string{
	joint.EncoderFile,
	joint.IntentHeadFile,
	labels.IntentMapFile,
	labels.SlotMapFile,
}

// Encoder turns normalized text into a fixed-length token window.
type Encoder interface {
	Encode(text string) (*tokenizer.Encoding, error)
	MaxLength() int
}

// ModelFactory opens the joint model stored in dir.
type ModelFactory func(dir string) (joint.Model, error)

// Options configures Load.
type Options struct {
	// ModelsDir contains ModelName/v<N>/.
	ModelsDir string
	// Path pins an explicit version directory, bypassing resolution.
	Path string
	// MaxLength is the token window; defaults to tokenizer.DefaultMaxLength.
	MaxLength int

	Backend        backends.BackendType
	SessionOptions []backends.SessionOption

	// ModelFactory overrides how the joint model is opened. Defaults to
	// ONNX sessions from the selected backend.
	ModelFactory ModelFactory

	Logger *zap.Logger
}

// Bundle is one loaded model version. It is immutable and safe to share
// across goroutines.
type Bundle struct {
	Version   int
	Path      string
	Model     joint.Model
	Tokenizer Encoder
	Labels    *labels.Maps
	LoadedAt  time.Time
}

// Name is "v<N>", or "base" for an unversioned directory.
func (b *Bundle) Name() string {
	if b.Version == 0 {
		return "base"
	}
	return modelversion.DirName(b.Version)
}

// Close releases the model's sessions.
func (b *Bundle) Close() error {
	if b == nil || b.Model == nil {
		return nil
	}
	return b.Model.Close()
}

// VersionsRoot is the directory whose v<N> children are model versions.
func VersionsRoot(modelsDir string) string {
	return filepath.Join(modelsDir, ModelName)
}

// Resolve returns the directory and version number Load would use.
func Resolve(opts Options) (string, int, error) {
	if opts.Path != "" {
		info, err := os.Stat(opts.Path)
		if err != nil || !info.IsDir() {
			return "", 0, fmt.Errorf("%w: %s is not a directory", ErrNotFound, opts.Path)
		}
		return opts.Path, versionOf(opts.Path), nil
	}

	root := VersionsRoot(opts.ModelsDir)
	dir, n, err := modelversion.LatestDir(root)
	if errors.Is(err, ErrNotFound) && len(MissingArtifacts(root)) == 0 {
		// unversioned base directory
		return root, 0, nil
	}
	if err != nil {
		return "", 0, err
	}
	return dir, n, nil
}

func versionOf(dir string) int {
	base := filepath.Base(filepath.Clean(dir))
	if !strings.HasPrefix(base, "v") {
		return 0
	}
	n, err := strconv.Atoi(base[1:])
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// MissingArtifacts lists the required artifacts absent from dir.
func MissingArtifacts(dir string) []string {
	var missing []string
	for _, name := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if !tokenizer.HasTokenizer(dir) {
		missing = append(missing, tokenizer.TokenizerFile+"|"+tokenizer.VocabFile)
	}
	return missing
}

// Load resolves and loads a model version. Either every artifact loads and
// the label maps match the model's head widths, or an error is returned and
// nothing stays open.
func Load(ctx context.Context, opts Options) (*Bundle, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	dir, version, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	if missing := MissingArtifacts(dir); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s is missing %s", ErrNotFound, dir, strings.Join(missing, ", "))
	}

	maps, err := labels.Load(dir)
	if err != nil {
		return nil, err
	}

	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = tokenizer.DefaultMaxLength
	}
	tok, err := tokenizer.Load(dir, maxLength)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w", err)
	}

	factory := opts.ModelFactory
	if factory == nil {
		factory = onnxFactory(opts)
	}
	model, err := factory(dir)
	if err != nil {
		return nil, fmt.Errorf("opening model in %s: %w", dir, err)
	}

	if err := checkDims(ctx, model, tok, maps); err != nil {
		_ = model.Close()
		return nil, err
	}

	b := &Bundle{
		Version:   version,
		Path:      dir,
		Model:     model,
		Tokenizer: tok,
		Labels:    maps,
		LoadedAt:  time.Now(),
	}
	logger.Info("Loaded NLU model",
		zap.String("version", b.Name()),
		zap.String("path", dir),
		zap.Int("intents", maps.NumIntents()),
		zap.Int("slot_tags", maps.NumSlots()),
		zap.Duration("took", time.Since(start)))
	return b, nil
}

func onnxFactory(opts Options) ModelFactory {
	return func(dir string) (joint.Model, error) {
		backend, err := backends.GetBackendWithFallback(opts.Backend)
		if err != nil {
			return nil, err
		}
		return joint.Open(dir, backend.SessionFactory(), opts.SessionOptions...)
	}
}

// checkDims validates the label maps against the declared head widths and
// against a warm-up forward pass over an empty utterance.
func checkDims(ctx context.Context, model joint.Model, tok Encoder, maps *labels.Maps) error {
	if n := model.NumIntents(); n > 0 && n != maps.NumIntents() {
		return maps.Validate(n, maps.NumSlots())
	}
	if n := model.NumSlots(); n > 0 && n != maps.NumSlots() {
		return maps.Validate(maps.NumIntents(), n)
	}

	enc, err := tok.Encode("")
	if err != nil {
		return fmt.Errorf("encoding warm-up input: %w", err)
	}
	out, err := model.Forward(ctx, joint.Inputs{InputIDs: enc.IDs, AttentionMask: enc.AttentionMask})
	if err != nil {
		return fmt.Errorf("warm-up forward pass: %w", err)
	}
	return maps.Validate(len(out.IntentLogits), out.NumSlots())
}
