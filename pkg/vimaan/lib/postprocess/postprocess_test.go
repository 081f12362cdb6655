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

package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostprocess(t *testing.T) {
	tests := []struct {
		name   string
		slots  map[string]string
		text   string
		intent string
		want   map[string]string
	}{
		{
			name:   "altitude out of range repaired",
			slots:  map[string]string{"altitude": "50"},
			text:   "climb to 12000 feet",
			intent: "set_autopilot_altitude",
			want:   map[string]string{"altitude": "12000"},
		},
		{
			name:   "altitude kept without candidate",
			slots:  map[string]string{"altitude": "50"},
			text:   "climb to 50 feet",
			intent: "set_autopilot_altitude",
			want:   map[string]string{"altitude": "50"},
		},
		{
			name:   "flight level scans from the end",
			slots:  map[string]string{"flight_level": "200"},
			text:   "leave 200 and climb to flight level 350",
			intent: "set_flight_level",
			want:   map[string]string{"flight_level": "350"},
		},
		{
			name:   "flight level compound result",
			slots:  map[string]string{"flight_level": "250"},
			text:   "climb to flight level 250",
			intent: "set_flight_level",
			want:   map[string]string{"flight_level": "250"},
		},
		{
			name:   "degrees first in range",
			slots:  map[string]string{"degrees": "18"},
			text:   "turn to 180 degrees",
			intent: "set_autopilot_heading",
			want:   map[string]string{"degrees": "180"},
		},
		{
			name:   "com frequency from decimal literal",
			slots:  map[string]string{"com_port": "1", "frequency": "123"},
			text:   "tune com 1 123.45",
			intent: "set_com_frequency",
			want:   map[string]string{"com_port": "1", "frequency": "123.45"},
		},
		{
			name:   "frequency from spoken digits",
			slots:  map[string]string{"frequency": "121"},
			text:   "set com frequency one two one point five please",
			intent: "set_com_frequency",
			want:   map[string]string{"frequency": "121.5"},
		},
		{
			name:   "frequency outside band kept",
			slots:  map[string]string{"frequency": "99.5"},
			text:   "tune com 99.5",
			intent: "set_com_frequency",
			want:   map[string]string{"frequency": "99.5"},
		},
		{
			name:   "com port must be single digit",
			slots:  map[string]string{"com_port": "x"},
			text:   "com 12 then 2",
			intent: "set_com_frequency",
			want:   map[string]string{"com_port": "2"},
		},
		{
			name:   "spaced digits collapsed",
			slots:  map[string]string{"altitude": "12 000"},
			text:   "climb to 12 000",
			intent: "set_autopilot_altitude",
			want:   map[string]string{"altitude": "12000"},
		},
		{
			name:   "unknown slot untouched",
			slots:  map[string]string{"runway": "two seven left"},
			text:   "cleared runway 27 left",
			intent: "None",
			want:   map[string]string{"runway": "two seven left"},
		},
		{
			name:   "empty value untouched",
			slots:  map[string]string{"altitude": ""},
			text:   "climb to 12000",
			intent: "set_autopilot_altitude",
			want:   map[string]string{"altitude": ""},
		},
		{
			name:   "implicit state",
			slots:  map[string]string{},
			text:   "please raise the landing gear now",
			intent: "toggle_landing_gear",
			want:   map[string]string{"state": "up"},
		},
		{
			name:   "tagged state wins",
			slots:  map[string]string{"state": "down"},
			text:   "raise the gear",
			intent: "toggle_landing_gear",
			want:   map[string]string{"state": "down"},
		},
		{
			name:   "longest verb first",
			slots:  map[string]string{},
			text:   "disengage autopilot 1",
			intent: "toggle_autopilot_1",
			want:   map[string]string{"state": "off"},
		},
		{
			name:   "turn on phrase",
			slots:  map[string]string{},
			text:   "turn on the parking brake",
			intent: "toggle_parking_brake",
			want:   map[string]string{"state": "on"},
		},
		{
			name:   "no verb leaves state unset",
			slots:  map[string]string{},
			text:   "landing gear",
			intent: "toggle_landing_gear",
			want:   map[string]string{},
		},
		{
			name:   "non toggle intent",
			slots:  map[string]string{},
			text:   "raise altitude to 5000",
			intent: "set_autopilot_altitude",
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Postprocess(tt.slots, tt.text, tt.intent))
		})
	}
}

func TestPostprocess_DoesNotMutateInput(t *testing.T) {
	in := map[string]string{"altitude": "50"}
	_ = Postprocess(in, "raise to 12000", "toggle_landing_gear")
	assert.Equal(t, map[string]string{"altitude": "50"}, in)
}

func TestNumericLiterals(t *testing.T) {
	assert.Equal(t, []string{"1", "123.45", "7"}, NumericLiterals("com 1 123.45 then 7"))
	assert.Empty(t, NumericLiterals("gear up"))
}

func TestDigitSequenceFrequency(t *testing.T) {
	freq, ok := DigitSequenceFrequency("com one one eight point seven five")
	assert.True(t, ok)
	assert.Equal(t, "118.75", freq)

	_, ok = DigitSequenceFrequency("heading one one eight point seven five")
	assert.False(t, ok, "requires com or frequency in the text")

	_, ok = DigitSequenceFrequency("com one two")
	assert.False(t, ok, "runs shorter than three words are ignored")

	freq, ok = DigitSequenceFrequency("frequency nine nine nine then one two zero")
	assert.True(t, ok)
	assert.Equal(t, "120", freq)
}
