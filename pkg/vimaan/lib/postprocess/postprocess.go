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

// Package postprocess repairs reconstructed slot values against the numbers
// that actually appear in the utterance, and infers an implicit on/off or
// up/down state for toggle intents.
package postprocess

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Frequency bounds of the VHF COM band, in MHz.
const (
	FrequencyMin = 118
	FrequencyMax = 137
)

// rangeRule accepts the first numeric literal whose integer value lies in
// [min, max].
type rangeRule struct {
	min, max   int
	reverse    bool // scan from the last literal backwards
	singleChar bool // literal must be one character
}

var rangeRules = map[string]rangeRule{
	"altitude":     {min: 1000, max: 50000},
	"degrees":      {min: 0, max: 360},
	"flight_level": {min: 10, max: 430, reverse: true},
	"com_port":     {min: 1, max: 4, singleChar: true},
}

var numericLiteral = regexp2.MustCompile(`\d+\.?\d*`, regexp2.None)

// NumericLiterals returns every digit literal of text (integers and decimals)
// in order of appearance.
func NumericLiterals(text string) []string {
	var out []string
	m, err := numericLiteral.FindStringMatch(text)
	for err == nil && m != nil {
		out = append(out, m.String())
		m, err = numericLiteral.FindNextMatch(m)
	}
	return out
}

// Postprocess returns a corrected copy of slots. text should be the
// normalized utterance. For each slot:
//
//   - a value that is all digits once spaces are removed is collapsed
//   - frequency is re-read from spoken digits near "com"/"frequency", or else
//     from the first decimal literal in the COM band
//   - altitude, degrees, flight_level and com_port take the first literal
//     satisfying their range (flight_level scans from the end)
//
// Values with no in-range candidate are kept as reconstructed. Finally
// ImplicitState fills a missing state for toggle intents.
func Postprocess(slots map[string]string, text, intent string) map[string]string {
	out := make(map[string]string, len(slots)+1)
	for k, v := range slots {
		out[k] = v
	}

	numbers := NumericLiterals(text)

	names := make([]string, 0, len(slots))
	for name := range slots {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := strings.TrimSpace(slots[name])
		if value == "" {
			continue
		}

		if strings.Contains(value, " ") {
			if collapsed := strings.ReplaceAll(value, " ", ""); isDigits(collapsed) {
				out[name] = collapsed
				continue
			}
		}

		if name == "frequency" {
			if freq, ok := DigitSequenceFrequency(text); ok {
				out[name] = freq
				continue
			}
			if freq, ok := decimalFrequency(numbers); ok {
				out[name] = freq
			}
			continue
		}

		if rule, ok := rangeRules[name]; ok {
			if num, ok := rule.first(numbers); ok {
				out[name] = num
			}
		}
	}

	return ImplicitState(out, text, intent)
}

func (r rangeRule) first(numbers []string) (string, bool) {
	for i := range numbers {
		num := numbers[i]
		if r.reverse {
			num = numbers[len(numbers)-1-i]
		}
		if r.singleChar && len(num) != 1 {
			continue
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		if v := int(f); v >= r.min && v <= r.max {
			return num, true
		}
	}
	return "", false
}

// spokenDigits covers the words read as a frequency: digits and separators.
var spokenDigits = map[string]string{
	"zero": "0", "oh": "0",
	"one": "1", "two": "2", "three": "3",
	"four": "4", "five": "5", "six": "6",
	"seven": "7", "eight": "8", "niner": "9", "nine": "9",
	"point": ".", "decimal": ".",
}

// DigitSequenceFrequency looks for three or more consecutive spoken digit
// words in a text that mentions "com" or "frequency", and returns the first
// run whose value lies in the COM band.
func DigitSequenceFrequency(text string) (string, bool) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "com") && !strings.Contains(lower, "frequency") {
		return "", false
	}

	var run []string
	check := func() (string, bool) {
		defer func() { run = run[:0] }()
		if len(run) < 3 {
			return "", false
		}
		candidate := strings.Join(run, "")
		return candidate, inBand(candidate)
	}

	for _, word := range strings.Fields(lower) {
		if d, ok := spokenDigits[word]; ok {
			run = append(run, d)
			continue
		}
		if freq, ok := check(); ok {
			return freq, true
		}
	}
	return check()
}

func decimalFrequency(numbers []string) (string, bool) {
	for _, num := range numbers {
		if strings.Contains(num, ".") && inBand(num) {
			return num, true
		}
	}
	return "", false
}

func inBand(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f >= FrequencyMin && f <= FrequencyMax
}

func isDigits(s string) bool {
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
