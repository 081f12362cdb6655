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

// Package loadertest writes a small but complete model directory and a
// scripted joint model that tags it, for tests of everything above the
// loader.
package loadertest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/joint"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/joint/jointtest"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/modelversion"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/tokenizer"
)

// Vocab is the WordPiece vocabulary of the fixture model.
var Vocab = []string{
	"[PAD]", "[UNK]", "[CLS]", "[SEP]", "[MASK]",
	"climb", "descend", "to", "flight", "level", "250", "350",
	"tune", "com", "1", "2", "123", "118", ".", "45", "75", "frequency",
	"please", "raise", "lower", "the", "landing", "gear", "now",
	"set", "heading", "090", "270", "altitude", "12000", "50", "feet",
	"engage", "autopilot", "what", "is", "weather", "##s",
}

// Intents of the fixture model, id = index.
var Intents = []string{
	labels.NoIntent,
	"set_flight_level",
	"set_com_frequency",
	"toggle_landing_gear",
	"set_autopilot_heading",
	"set_autopilot_altitude",
	"toggle_autopilot_1",
}

// SlotTags of the fixture model, id = index.
var SlotTags = []string{
	labels.OutsideTag,
	"B-flight_level", "I-flight_level",
	"B-frequency", "I-frequency",
	"B-com_port",
	"B-degrees",
	"B-altitude", "I-altitude",
	"B-state",
}

// WriteArtifacts writes a complete model version into dir.
func WriteArtifacts(t testing.TB, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, tokenizer.VocabFile),
		[]byte(strings.Join(Vocab, "\n")+"\n"), 0o644))
	writeMap(t, filepath.Join(dir, labels.IntentMapFile), Intents)
	writeMap(t, filepath.Join(dir, labels.SlotMapFile), SlotTags)
	for _, name := range []string{joint.EncoderFile, joint.IntentHeadFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("onnx"), 0o644))
	}
}

// WriteVersion writes version n under modelsDir and returns its path.
func WriteVersion(t testing.TB, modelsDir string, n int) string {
	t.Helper()
	dir := filepath.Join(loader.VersionsRoot(modelsDir), modelversion.DirName(n))
	WriteArtifacts(t, dir)
	return dir
}

func writeMap(t testing.TB, path string, names []string) {
	t.Helper()
	m := make(map[string]int, len(names))
	for i, name := range names {
		m[name] = i
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// NewModel returns a model that tags fixture utterances by keyword.
func NewModel() *jointtest.Model {
	return &jointtest.Model{
		Intents:   len(Intents),
		Slots:     len(SlotTags),
		IntentFor: func(ids []int64) int { return index(Intents, intentFor(words(ids))) },
		SlotFor: func(ids []int64, i int) int {
			return index(SlotTags, slotFor(words(ids), i))
		},
	}
}

// Factory returns a ModelFactory that serves model for every directory.
func Factory(model joint.Model) loader.ModelFactory {
	return func(string) (joint.Model, error) { return model, nil }
}

// Options returns loader options for modelsDir backed by NewModel.
func Options(modelsDir string) loader.Options {
	return loader.Options{
		ModelsDir:    modelsDir,
		ModelFactory: func(string) (joint.Model, error) { return NewModel(), nil },
	}
}

func words(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if id >= 0 && int(id) < len(Vocab) {
			out[i] = Vocab[id]
		}
	}
	return out
}

func index(names []string, name string) int {
	if i := slices.Index(names, name); i >= 0 {
		return i
	}
	return 0
}

func intentFor(w []string) string {
	has := func(s string) bool { return slices.Contains(w, s) }
	switch {
	case has("level"):
		return "set_flight_level"
	case has("com") || has("frequency"):
		return "set_com_frequency"
	case has("gear"):
		return "toggle_landing_gear"
	case has("heading"):
		return "set_autopilot_heading"
	case has("altitude") || has("feet"):
		return "set_autopilot_altitude"
	case has("autopilot"):
		return "toggle_autopilot_1"
	default:
		return labels.NoIntent
	}
}

func slotFor(w []string, i int) string {
	prev := ""
	if i > 0 {
		prev = w[i-1]
	}
	switch tok := w[i]; {
	case prev == "level" && isNumber(tok):
		return "B-flight_level"
	case prev == "com" && (tok == "1" || tok == "2"):
		return "B-com_port"
	case tok == "123" || tok == "118":
		return "B-frequency"
	case tok == "." && (prev == "123" || prev == "118"):
		return "I-frequency"
	case prev == "." && isNumber(tok):
		return "I-frequency"
	case prev == "heading" && isNumber(tok):
		return "B-degrees"
	case tok == "12000" || tok == "50":
		return "B-altitude"
	}
	return labels.OutsideTag
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
