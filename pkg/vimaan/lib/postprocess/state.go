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
	"sort"
	"strings"
)

// ToggleIntents take an implicit state from the command verb.
var ToggleIntents = map[string]bool{
	"toggle_landing_gear":      true,
	"toggle_flaps":             true,
	"toggle_autopilot_1":       true,
	"toggle_autopilot_2":       true,
	"toggle_autopilot_3":       true,
	"toggle_flight_director_1": true,
	"toggle_flight_director_2": true,
	"toggle_engine_1":          true,
	"toggle_engine_2":          true,
	"toggle_engine_3":          true,
	"toggle_engine_4":          true,
	"toggle_parking_brake":     true,
}

type verbState struct {
	verb  string
	state string
}

// actionVerbs is ordered longest first, so "disengage" wins over "engage"
// and "deactivate" over "activate".
var actionVerbs = func() []verbState {
	verbs := []verbState{
		{"raise", "up"},
		{"lower", "down"},
		{"retract", "up"},
		{"extend", "down"},
		{"stow", "up"},
		{"engage", "on"},
		{"disengage", "off"},
		{"turn on", "on"},
		{"turn off", "off"},
		{"start", "on"},
		{"stop", "off"},
		{"shut", "off"},
		{"activate", "on"},
		{"deactivate", "off"},
	}
	sort.SliceStable(verbs, func(i, j int) bool {
		return len(verbs[i].verb) > len(verbs[j].verb)
	})
	return verbs
}()

// ImplicitState sets slots["state"] from the first action verb found in text
// when intent is a toggle intent and no state was tagged. slots is modified
// in place and returned.
func ImplicitState(slots map[string]string, text, intent string) map[string]string {
	if !ToggleIntents[intent] {
		return slots
	}
	if slots["state"] != "" {
		return slots
	}

	lower := strings.ToLower(text)
	for _, v := range actionVerbs {
		if strings.Contains(lower, v.verb) {
			if slots == nil {
				slots = make(map[string]string, 1)
			}
			slots["state"] = v.state
			return slots
		}
	}
	return slots
}
