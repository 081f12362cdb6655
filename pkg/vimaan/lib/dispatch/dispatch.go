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

// Package dispatch maps a prediction onto the simulator action it stands
// for: a command to fire or a dataref to write. It only resolves actions;
// executing them belongs to the simulator plugin.
package dispatch

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/modelversion"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/nlu"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/normalize"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Kind is what an Action does.
type Kind string

const (
	KindCommand Kind = "command"
	KindDataref Kind = "dataref"
	KindNone    Kind = "none"
)

// NotFoundMessage is reported for intents with no handler.
const NotFoundMessage = "Command not found"

// stateSlot selects between an entry's commands.
const stateSlot = "state"

// Action is a resolved simulator action.
type Action struct {
	Intent  string  `json:"intent"`
	Kind    Kind    `json:"kind"`
	Target  string  `json:"target,omitempty"`
	Value   float64 `json:"value,omitempty"`
	Message string  `json:"message"`
}

// Entry describes how one intent maps to the simulator. An entry either
// writes Slot (times Scale) to a dataref, or fires the command keyed by the
// state slot.
type Entry struct {
	Slot  string  `yaml:"slot,omitempty"`
	Scale float64 `yaml:"scale,omitempty"`

	Dataref string `yaml:"dataref,omitempty"`
	// Datarefs picks the dataref by the value of the Selector slot.
	Datarefs        map[string]string `yaml:"datarefs,omitempty"`
	Selector        string            `yaml:"selector,omitempty"`
	DefaultSelector string            `yaml:"default_selector,omitempty"`

	Commands       map[string]string `yaml:"commands,omitempty"`
	DefaultCommand string            `yaml:"default_command,omitempty"`

	Message string `yaml:"message,omitempty"`
}

func (e Entry) isToggle() bool {
	return len(e.Commands) > 0 || e.DefaultCommand != ""
}

// Table maps intents to entries.
type Table struct {
	Intents map[string]Entry `yaml:"intents"`

	// Path is the file the table was read from, empty for the builtin table.
	Path string `yaml:"-"`
}

// Builtin returns the X-Plane table.
func Builtin() *Table {
	t, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("builtin dispatch table: %v", err))
	}
	return t
}

// Parse decodes and validates a YAML table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing dispatch table: %w", err)
	}
	for intent, e := range t.Intents {
		if e.isToggle() {
			continue
		}
		if e.Slot == "" {
			return nil, fmt.Errorf("dispatch table: intent %q has neither commands nor a slot", intent)
		}
		if e.Dataref == "" && len(e.Datarefs) == 0 {
			return nil, fmt.Errorf("dispatch table: intent %q has no dataref", intent)
		}
		if len(e.Datarefs) > 0 && e.Selector == "" {
			return nil, fmt.Errorf("dispatch table: intent %q has datarefs but no selector", intent)
		}
	}
	return &t, nil
}

// Load reads a table file, or returns the builtin table for an empty path.
// Versioned siblings win over path itself: with dispatch_v1.yaml and
// dispatch_v2.yaml next to it, Load("dispatch.yaml") reads dispatch_v2.yaml.
func Load(path string) (*Table, error) {
	if path == "" {
		return Builtin(), nil
	}
	resolved, err := modelversion.FindLatestPath(path)
	if err != nil {
		return nil, fmt.Errorf("reading dispatch table: %w", err)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading dispatch table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}
	t.Path = resolved
	return t, nil
}

// WriteNext writes t as the next version of base (dispatch.yaml ->
// dispatch_v<N+1>.yaml) and returns the path written. The file appears
// atomically, so a concurrent Load never reads a partial table.
func WriteNext(base string, t *Table) (string, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding dispatch table: %w", err)
	}
	if _, err := Parse(data); err != nil {
		return "", err
	}

	path, err := modelversion.NextPath(base)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".dispatch-*.tmp")
	if err != nil {
		return "", fmt.Errorf("writing dispatch table: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing dispatch table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing dispatch table: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing dispatch table: %w", err)
	}
	return path, nil
}

// Handled lists the intents the table handles, sorted.
func (t *Table) Handled() []string {
	out := make([]string, 0, len(t.Intents))
	for name := range t.Intents {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ResolvePrediction resolves p's intent and slots.
func (t *Table) ResolvePrediction(p *nlu.Prediction) Action {
	return t.Resolve(p.Intent, p.Slots)
}

// Resolve maps an intent and its slots to an action. Unknown intents, the
// out-of-scope label and unusable slot values resolve to KindNone.
func (t *Table) Resolve(intent string, slots map[string]string) Action {
	e, ok := t.Intents[intent]
	if !ok || intent == labels.NoIntent {
		return Action{Intent: intent, Kind: KindNone, Message: NotFoundMessage}
	}
	if e.isToggle() {
		return e.toggle(intent, slots[stateSlot])
	}
	return e.write(intent, slots)
}

func (e Entry) toggle(intent, state string) Action {
	if cmd, ok := e.Commands[state]; ok && state != "" {
		return Action{Intent: intent, Kind: KindCommand, Target: cmd, Message: e.render("", state, "")}
	}
	if e.DefaultCommand != "" {
		return Action{Intent: intent, Kind: KindCommand, Target: e.DefaultCommand, Message: e.render("", "toggle", "")}
	}
	if state == "" {
		return Action{Intent: intent, Kind: KindNone, Message: "Missing state"}
	}
	return Action{Intent: intent, Kind: KindNone, Message: fmt.Sprintf("No command for state %q", state)}
}

func (e Entry) write(intent string, slots map[string]string) Action {
	raw := strings.TrimSpace(slots[e.Slot])
	if raw == "" {
		return Action{Intent: intent, Kind: KindNone, Message: "Missing " + e.Slot}
	}
	value, err := strconv.ParseFloat(normalize.SlotValue(raw), 64)
	if err != nil {
		return Action{Intent: intent, Kind: KindNone, Message: fmt.Sprintf("Invalid %s value", e.Slot)}
	}
	if e.Scale != 0 {
		value *= e.Scale
	}

	target := e.Dataref
	selector := ""
	if len(e.Datarefs) > 0 {
		selector = slots[e.Selector]
		if selector == "" {
			selector = e.DefaultSelector
		}
		ref, ok := e.Datarefs[selector]
		if !ok {
			return Action{Intent: intent, Kind: KindNone, Message: fmt.Sprintf("Unknown %s %q", e.Selector, selector)}
		}
		target = ref
	}

	return Action{
		Intent:  intent,
		Kind:    KindDataref,
		Target:  target,
		Value:   value,
		Message: e.render(raw, "", selector),
	}
}

func (e Entry) render(value, state, selector string) string {
	return strings.NewReplacer("{value}", value, "{state}", state, "{selector}", selector).Replace(e.Message)
}
