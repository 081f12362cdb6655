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
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotANumber is returned by WordsToNumber for phrases that do not form a
// well-ordered cardinal number.
var ErrNotANumber = errors.New("not a number phrase")

// phoneticDigits maps spoken digit words, including the ATC forms, to digits.
var phoneticDigits = map[string]string{
	"zero": "0", "oh": "0",
	"one": "1", "two": "2", "three": "3",
	"four": "4", "five": "5", "six": "6",
	"seven": "7", "eight": "8",
	"niner": "9", "nine": "9",
}

// decimalWords are spoken decimal separators.
var decimalWords = map[string]bool{
	"point":   true,
	"decimal": true,
}

type wordKind int

const (
	kindZero wordKind = iota
	kindUnit
	kindTeen
	kindTens
	kindHundred
	kindScale
)

type numberWord struct {
	value int64
	kind  wordKind
}

// cardinalWords are the words understood by WordsToNumber.
var cardinalWords = map[string]numberWord{
	"zero": {0, kindZero},
	"one":  {1, kindUnit}, "two": {2, kindUnit}, "three": {3, kindUnit},
	"four": {4, kindUnit}, "five": {5, kindUnit}, "six": {6, kindUnit},
	"seven": {7, kindUnit}, "eight": {8, kindUnit}, "nine": {9, kindUnit},
	"niner": {9, kindUnit},

	"ten": {10, kindTeen}, "eleven": {11, kindTeen}, "twelve": {12, kindTeen},
	"thirteen": {13, kindTeen}, "fourteen": {14, kindTeen}, "fifteen": {15, kindTeen},
	"sixteen": {16, kindTeen}, "seventeen": {17, kindTeen}, "eighteen": {18, kindTeen},
	"nineteen": {19, kindTeen},

	"twenty": {20, kindTens}, "thirty": {30, kindTens}, "forty": {40, kindTens},
	"fifty": {50, kindTens}, "sixty": {60, kindTens}, "seventy": {70, kindTens},
	"eighty": {80, kindTens}, "ninety": {90, kindTens},

	"hundred":  {100, kindHundred},
	"thousand": {1_000, kindScale},
	"million":  {1_000_000, kindScale},
	"billion":  {1_000_000_000, kindScale},
}

// WordsToNumber evaluates an English cardinal number phrase such as
// "two hundred fifty" or "seven thousand five hundred". "and" is ignored.
// Phrases whose words are out of order ("five twenty", "thousand million")
// are rejected with ErrNotANumber rather than guessed at.
func WordsToNumber(phrase string) (int64, error) {
	fields := strings.FieldsFunc(strings.ToLower(phrase), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '-'
	})

	var (
		total, current int64
		last           = kindScale // start of a group
		lastScale      int64
		seen, zero     bool
		hasHundred     bool
	)
	for _, f := range fields {
		if f == "and" {
			continue
		}
		w, ok := cardinalWords[f]
		if !ok {
			return 0, fmt.Errorf("%w: unknown word %q", ErrNotANumber, f)
		}
		if zero {
			return 0, fmt.Errorf("%w: %q after zero", ErrNotANumber, f)
		}
		switch w.kind {
		case kindZero:
			if seen {
				return 0, fmt.Errorf("%w: zero inside %q", ErrNotANumber, phrase)
			}
			zero = true
		case kindUnit:
			if last != kindScale && last != kindTens && last != kindHundred {
				return 0, fmt.Errorf("%w: %q out of order", ErrNotANumber, f)
			}
			current += w.value
		case kindTeen, kindTens:
			if last != kindScale && last != kindHundred {
				return 0, fmt.Errorf("%w: %q out of order", ErrNotANumber, f)
			}
			current += w.value
		case kindHundred:
			if hasHundred || current >= 100 {
				return 0, fmt.Errorf("%w: repeated hundred", ErrNotANumber)
			}
			if current == 0 {
				current = 1
			}
			current *= 100
			hasHundred = true
		case kindScale:
			if lastScale != 0 && w.value >= lastScale {
				return 0, fmt.Errorf("%w: %q after larger scale", ErrNotANumber, f)
			}
			if current == 0 {
				current = 1
			}
			total += current * w.value
			current = 0
			lastScale = w.value
			hasHundred = false
		}
		last = w.kind
		seen = true
	}
	if !seen {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, phrase)
	}
	return total + current, nil
}

// alternation renders words as a regex alternation, longest first so that
// "seventeen" is tried before "seven".
func alternation(words ...string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return "(?:" + strings.Join(sorted, "|") + ")"
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
