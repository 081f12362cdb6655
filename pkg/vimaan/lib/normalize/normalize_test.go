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

package normalize

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"phonetic run", "zero niner zero", "090"},
		{"decimal frequency", "one one eight point seven five", "118.75"},
		{"compound", "two hundred fifty", "250"},
		{"flight level", "climb to flight level two hundred fifty", "climb to flight level 250"},
		{"com tune keeps port digit", "tune com 1 one two three point four five", "tune com 1 123.45"},
		{"uppercase input", "Set Heading ONE EIGHT ZERO", "set heading 180"},
		{"thousands", "set altitude twenty thousand", "set altitude 20000"},
		{"thousands and hundreds", "descend to seven thousand five hundred feet", "descend to 7500 feet"},
		{"hundred with tens", "set heading one hundred eighty degrees", "set heading 180 degrees"},
		{"heading with niner", "fly heading zero niner zero", "fly heading 090"},
		{"simple number", "twenty", "20"},
		{"tens and unit", "turn to thirty five degrees", "turn to 35 degrees"},
		{"decimal after cardinal", "twenty point five", "20.5"},
		{"decimal word", "one two one decimal five", "121.5"},
		{"single digit word", "autopilot one on", "autopilot 1 on"},
		{"interjection left alone", "oh no", "oh no"},
		{"embedded words untouched", "someone is here", "someone is here"},
		{"no numbers", "gear up", "gear up"},
		{"digits untouched", "climb to 15000 feet", "climb to 15000 feet"},
		{"decimal then tens pair", "hundred point six twenty two", "100.6 22"},
		{"decimal then tens and digit run", "eleven decimal nine fifty two two", "11.9 50 22"},
		{"unit before tens pair", "five twenty one", "5 21"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

// idempotenceVocab mixes number words, separators and ordinary words so that
// random phrases hit every stage boundary.
var idempotenceVocab = []string{
	"zero", "oh", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "niner",
	"ten", "eleven", "twelve", "fifteen", "nineteen", "twenty", "thirty", "fifty", "ninety",
	"hundred", "thousand", "million", "point", "decimal", "and",
	"heading", "climb", "to", "set", "flight", "level", "1", "42", "118", "7.5",
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"hundred point six twenty two",
		"eleven decimal nine fifty two two",
		"oh twenty",
		"five twenty one",
		"1 point 2 point 3",
		"one thousand two hundred one two",
		"please engage autopilot 1 now",
	}

	rng := rand.New(rand.NewPCG(7, 11))
	for range 5000 {
		words := make([]string, 1+rng.IntN(8))
		for i := range words {
			words[i] = idempotenceVocab[rng.IntN(len(idempotenceVocab))]
		}
		inputs = append(inputs, strings.Join(words, " "))
	}

	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{
		"zero niner zero",
		"one one eight point seven five",
		"hundred point six twenty two",
		"eleven decimal nine fifty two two",
		"descend to seven thousand five hundred feet",
		"Set Heading ONE EIGHT ZERO",
		"oh no",
		"",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	})
}

func TestWordsToNumber(t *testing.T) {
	tests := []struct {
		phrase string
		want   int64
	}{
		{"two hundred fifty", 250},
		{"one thousand two hundred", 1200},
		{"twelve hundred", 1200},
		{"thousand", 1000},
		{"zero", 0},
		{"twenty-five", 25},
		{"two hundred and five", 205},
		{"niner", 9},
		{"three million", 3_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, err := WordsToNumber(tt.phrase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "five twenty", "one one", "thousand thousand", "banana", "zero five", "oh"} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := WordsToNumber(bad)
			require.ErrorIs(t, err, ErrNotANumber)
		})
	}
}

func TestSlotValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0250", "250"},
		{"118.75", "118.75"},
		{"two hundred", "200"},
		{"one two one", "121"},
		{" Niner ", "9"},
		{"one one eight point seven five", "118.75"},
		{"UP", "up"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotValue(tt.input))
		})
	}
}
