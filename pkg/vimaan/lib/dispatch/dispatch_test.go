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

package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/nlu"
)

func TestResolveBuiltin(t *testing.T) {
	table := Builtin()

	tests := []struct {
		name   string
		intent string
		slots  map[string]string
		want   Action
	}{
		{
			name:   "heading",
			intent: "set_autopilot_heading",
			slots:  map[string]string{"degrees": "090"},
			want: Action{Kind: KindDataref, Target: "sim/cockpit/autopilot/heading_mag", Value: 90,
				Message: "Setting heading to 090 degrees"},
		},
		{
			name:   "flight level scales to feet",
			intent: "set_flight_level",
			slots:  map[string]string{"flight_level": "250"},
			want: Action{Kind: KindDataref, Target: "sim/cockpit/autopilot/altitude", Value: 25000,
				Message: "Setting flight level 250"},
		},
		{
			name:   "com 2 frequency",
			intent: "set_com_frequency",
			slots:  map[string]string{"com_port": "2", "frequency": "121.5"},
			want: Action{Kind: KindDataref, Target: "sim/cockpit/radios/com2_freq_hz", Value: 121.5e6,
				Message: "COM 2 set to 121.5"},
		},
		{
			name:   "com port defaults to 1",
			intent: "set_com_frequency",
			slots:  map[string]string{"frequency": "118.75"},
			want: Action{Kind: KindDataref, Target: "sim/cockpit/radios/com1_freq_hz", Value: 118.75e6,
				Message: "COM 1 set to 118.75"},
		},
		{
			name:   "gear up",
			intent: "toggle_landing_gear",
			slots:  map[string]string{"state": "up"},
			want:   Action{Kind: KindCommand, Target: "sim/flight_controls/landing_gear_up", Message: "Gear up"},
		},
		{
			name:   "gear without state toggles",
			intent: "toggle_landing_gear",
			want:   Action{Kind: KindCommand, Target: "sim/flight_controls/landing_gear_toggle", Message: "Gear toggle"},
		},
		{
			name:   "autopilot off",
			intent: "toggle_autopilot_2",
			slots:  map[string]string{"state": "off"},
			want:   Action{Kind: KindCommand, Target: "sim/autopilot/servos2_toggle", Message: "Autopilot 2 off"},
		},
		{
			name:   "engine start",
			intent: "toggle_engine_1",
			slots:  map[string]string{"state": "on"},
			want:   Action{Kind: KindCommand, Target: "sim/starters/engage_starter_1", Message: "Engine 1 on"},
		},
		{
			name:   "flaps without state",
			intent: "toggle_flaps",
			want:   Action{Kind: KindNone, Message: "Missing state"},
		},
		{
			name:   "flaps with unknown state",
			intent: "toggle_flaps",
			slots:  map[string]string{"state": "on"},
			want:   Action{Kind: KindNone, Message: `No command for state "on"`},
		},
		{
			name:   "missing slot",
			intent: "set_autopilot_altitude",
			want:   Action{Kind: KindNone, Message: "Missing altitude"},
		},
		{
			name:   "invalid slot",
			intent: "set_autopilot_altitude",
			slots:  map[string]string{"altitude": "high"},
			want:   Action{Kind: KindNone, Message: "Invalid altitude value"},
		},
		{
			name:   "unknown com port",
			intent: "set_com_frequency",
			slots:  map[string]string{"com_port": "3", "frequency": "118.75"},
			want:   Action{Kind: KindNone, Message: `Unknown com_port "3"`},
		},
		{
			name:   "out of scope",
			intent: "None",
			want:   Action{Kind: KindNone, Message: NotFoundMessage},
		},
		{
			name:   "unknown intent",
			intent: "make_coffee",
			want:   Action{Kind: KindNone, Message: NotFoundMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Intent = tt.intent
			got := table.Resolve(tt.intent, tt.slots)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.Target, got.Target)
			assert.InDelta(t, tt.want.Value, got.Value, 1e-3)
			assert.Equal(t, tt.want.Message, got.Message)
			assert.Equal(t, tt.want.Intent, got.Intent)
		})
	}
}

func TestResolvePrediction(t *testing.T) {
	got := Builtin().ResolvePrediction(&nlu.Prediction{
		Intent: "set_autopilot_altitude",
		Slots:  map[string]string{"altitude": "twelve thousand"},
	})
	assert.Equal(t, KindDataref, got.Kind)
	assert.InDelta(t, 12000, got.Value, 1e-9)
}

func TestLoadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
intents:
  set_autopilot_heading:
    slot: degrees
    dataref: sim/cockpit/autopilot/heading_mag_pilot
    message: "HDG {value}"
`), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"set_autopilot_heading"}, table.Handled())

	got := table.Resolve("set_autopilot_heading", map[string]string{"degrees": "270"})
	assert.Equal(t, "sim/cockpit/autopilot/heading_mag_pilot", got.Target)
	assert.Equal(t, "HDG 270", got.Message)

	assert.Equal(t, path, table.Path)

	builtin, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, builtin.Handled(), "toggle_parking_brake")
	assert.Empty(t, builtin.Path)
}

func TestLoadPrefersLatestVersion(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "dispatch.yaml")
	write := func(name, dataref string) {
		doc := "intents:\n  set_autopilot_heading:\n    slot: degrees\n    dataref: " + dataref + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644))
	}

	tests := []struct {
		name    string
		file    string
		dataref string
		want    string
	}{
		{"unversioned only", "dispatch.yaml", "base/ref", "dispatch.yaml"},
		{"first version wins over base", "dispatch_v1.yaml", "v1/ref", "dispatch_v1.yaml"},
		{"highest version wins", "dispatch_v3.yaml", "v3/ref", "dispatch_v3.yaml"},
		{"lower version added later", "dispatch_v2.yaml", "v2/ref", "dispatch_v3.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			write(tt.file, tt.dataref)
			table, err := Load(base)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), table.Path)
		})
	}

	table, err := Load(base)
	require.NoError(t, err)
	got := table.Resolve("set_autopilot_heading", map[string]string{"degrees": "90"})
	assert.Equal(t, "v3/ref", got.Target)
}

func TestLoadMissingTable(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "dispatch.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatch.yaml")
}

func TestWriteNext(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "tables", "dispatch.yaml")
	builtin := Builtin()

	first, err := WriteNext(base, builtin)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tables", "dispatch_v1.yaml"), first)

	second, err := WriteNext(base, builtin)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tables", "dispatch_v2.yaml"), second)

	loaded, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, second, loaded.Path)
	assert.Equal(t, builtin.Handled(), loaded.Handled())
	assert.Equal(t, builtin.Intents, loaded.Intents)

	// No temp files are left next to the published versions.
	entries, err := os.ReadDir(filepath.Join(dir, "tables"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteNextRejectsInvalidTable(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dispatch.yaml")
	bad := &Table{Intents: map[string]Entry{"x": {Dataref: "a"}}}

	_, err := WriteNext(base, bad)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(base), "dispatch_v1.yaml"))
}

func TestParseRejectsIncompleteEntries(t *testing.T) {
	for name, doc := range map[string]string{
		"no slot":      "intents:\n  x:\n    dataref: a\n",
		"no dataref":   "intents:\n  x:\n    slot: degrees\n",
		"no selector":  "intents:\n  x:\n    slot: f\n    datarefs: {\"1\": a}\n",
		"invalid yaml": "intents: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}
