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

// Package labels holds the intent and BIO slot-tag vocabularies of a model
// version.
package labels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bytedance/sonic"
)

const (
	// IntentMapFile maps intent name to id.
	IntentMapFile = "intent_map.json"
	// SlotMapFile maps BIO slot tag to id.
	SlotMapFile = "slot_map.json"

	// OutsideTag is the tag reported for ids missing from the slot map.
	OutsideTag = "O"
	// NoIntent is the out-of-scope intent label.
	NoIntent = "None"
)

var (
	// ErrInvalidMap is returned for label maps whose ids are not a dense
	// 0..n-1 range.
	ErrInvalidMap = errors.New("invalid label map")
	// ErrLabelMismatch is returned when a label map does not match the
	// output width of the head it labels.
	ErrLabelMismatch = errors.New("label map does not match model")
)

// Maps is an immutable, bidirectional view of both vocabularies.
type Maps struct {
	intents   []string
	intentIDs map[string]int
	slots     []string
	slotIDs   map[string]int
}

// Load reads intent_map.json and slot_map.json from dir.
func Load(dir string) (*Maps, error) {
	intentMap, err := readMap(filepath.Join(dir, IntentMapFile))
	if err != nil {
		return nil, err
	}
	slotMap, err := readMap(filepath.Join(dir, SlotMapFile))
	if err != nil {
		return nil, err
	}
	return New(intentMap, slotMap)
}

func readMap(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	var m map[string]int
	if err := sonic.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// New builds Maps from name->id mappings.
func New(intentMap, slotMap map[string]int) (*Maps, error) {
	intents, err := invert(intentMap)
	if err != nil {
		return nil, fmt.Errorf("intent map: %w", err)
	}
	slots, err := invert(slotMap)
	if err != nil {
		return nil, fmt.Errorf("slot map: %w", err)
	}
	return &Maps{
		intents:   intents,
		intentIDs: copyMap(intentMap),
		slots:     slots,
		slotIDs:   copyMap(slotMap),
	}, nil
}

func invert(m map[string]int) ([]string, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidMap)
	}
	out := make([]string, len(m))
	for name, id := range m {
		if id < 0 || id >= len(m) {
			return nil, fmt.Errorf("%w: id %d for %q outside 0..%d", ErrInvalidMap, id, name, len(m)-1)
		}
		if out[id] != "" {
			return nil, fmt.Errorf("%w: id %d used by %q and %q", ErrInvalidMap, id, out[id], name)
		}
		out[id] = name
	}
	return out, nil
}

func copyMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Validate checks the vocabularies against the output widths of the intent
// and slot heads.
func (m *Maps) Validate(numIntents, numSlots int) error {
	if numIntents != len(m.intents) {
		return fmt.Errorf("%w: intent head has %d outputs, intent map has %d labels",
			ErrLabelMismatch, numIntents, len(m.intents))
	}
	if numSlots != len(m.slots) {
		return fmt.Errorf("%w: slot head has %d outputs, slot map has %d tags",
			ErrLabelMismatch, numSlots, len(m.slots))
	}
	return nil
}

func (m *Maps) NumIntents() int { return len(m.intents) }
func (m *Maps) NumSlots() int   { return len(m.slots) }

// Intent returns the intent name for id.
func (m *Maps) Intent(id int) (string, bool) {
	if id < 0 || id >= len(m.intents) {
		return "", false
	}
	return m.intents[id], true
}

// IntentID returns the id of an intent name.
func (m *Maps) IntentID(name string) (int, bool) {
	id, ok := m.intentIDs[name]
	return id, ok
}

// SlotTag returns the BIO tag for id, or OutsideTag for an unknown id.
func (m *Maps) SlotTag(id int) string {
	if id < 0 || id >= len(m.slots) {
		return OutsideTag
	}
	return m.slots[id]
}

// SlotID returns the id of a BIO tag.
func (m *Maps) SlotID(tag string) (int, bool) {
	id, ok := m.slotIDs[tag]
	return id, ok
}

// Intents returns intent names ordered by id.
func (m *Maps) Intents() []string {
	return append([]string(nil), m.intents...)
}

// SlotNames returns the distinct slot names (tags without BIO prefix), sorted.
func (m *Maps) SlotNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tag := range m.slots {
		name := SlotName(tag)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
