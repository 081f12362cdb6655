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

// Package normalize rewrites spoken aviation numerics ("zero niner zero",
// "one one eight point seven five", "two hundred fifty") into digit strings
// before the text is tokenized.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single regex evaluation. A timed out stage leaves its
// input untouched.
const MatchTimeout = 250 * time.Millisecond

var (
	// digitWord matches one phonetic digit word.
	digitWord = alternation(keys(phoneticDigits)...)

	unitWord = alternation("one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "niner")
	tensWord = alternation("twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety")

	// cardinal matches one cardinal number word below a hundred.
	cardinal = alternation(
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "niner",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen",
		"eighteen", "nineteen", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
		"eighty", "ninety",
	)

	scale = `(?:hundred|thousand|million|billion)`

	// phoneticRun: two or more digit words in a row.
	phoneticRun = mustCompile(`\b` + digitWord + `(?:\s+` + digitWord + `)+\b`)

	// decimalRun: one digit group, a spoken separator, one digit group. Digit
	// groups are either a digit word or a digit string produced by phoneticRun.
	decimalRun = mustCompile(`(?<![\d.])\b(\d+|` + digitWord + `)\s+(?:point|decimal)\s+(\d+|` + digitWord + `)\b(?!\.\d)`)

	// compoundNumber: cardinal words containing at least one scale word.
	compoundNumber = mustCompile(`\b(?:` + cardinal + `\s+(?:and\s+)?)+` + scale +
		`(?:\s+(?:and\s+)?(?:` + cardinal + `|` + scale + `))*\b`)

	// simpleNumber: a tens word with an optional unit ("thirty five"), or a
	// single number word. Only pairs that WordsToNumber accepts are matched.
	simpleNumber = mustCompile(`\b(?:` + tensWord + `(?:\s+` + unitWord + `)?|` + cardinal + `|oh|hundred|thousand)\b`)
)

func mustCompile(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.IgnoreCase)
	re.MatchTimeout = MatchTimeout
	return re
}

// Normalize lowercases text and rewrites spoken numbers into digits. Stages run
// in order, each on the output of the previous one:
//
//  1. runs of two or more digit words become a digit string ("zero niner zero" -> "090")
//  2. digit groups around "point"/"decimal" become a decimal ("118 point 75" -> "118.75")
//  3. cardinal phrases with a scale word are evaluated ("two hundred fifty" -> "250")
//  4. remaining short cardinal phrases are evaluated ("twenty" -> "20")
//
// A final decimal pass joins separators left between numbers produced by
// stages 3 and 4 ("twenty point five" -> "20.5"). Normalize never fails:
// phrases that cannot be evaluated are left as they are.
//
// The stages repeat until a pass changes nothing, so the result is a fixed
// point (Normalize(Normalize(s)) == Normalize(s)). Every change removes
// letters, which bounds the number of passes.
func Normalize(text string) string {
	out := strings.ToLower(text)
	for {
		next := normalizePass(out)
		if next == out {
			return out
		}
		out = next
	}
}

func normalizePass(text string) string {
	out := replace(phoneticRun, text, joinDigitWords)
	out = replace(decimalRun, out, joinDecimal)
	out = replace(compoundNumber, out, evaluate)
	out = replace(simpleNumber, out, evaluate)
	return replace(decimalRun, out, joinDecimal)
}

// replace applies fn to every match of re. On a regex engine error (timeout)
// the input is returned unchanged.
func replace(re *regexp2.Regexp, input string, fn func(regexp2.Match) string) string {
	out, err := re.ReplaceFunc(input, fn, -1, -1)
	if err != nil {
		return input
	}
	return out
}

func joinDigitWords(m regexp2.Match) string {
	return digitsOf(m.String())
}

func joinDecimal(m regexp2.Match) string {
	groups := m.Groups()
	if len(groups) < 3 {
		return m.String()
	}
	whole, frac := digitsOf(groups[1].String()), digitsOf(groups[2].String())
	if whole == "" || frac == "" {
		return m.String()
	}
	return whole + "." + frac
}

// evaluate turns a cardinal phrase into its integer value, or returns the
// phrase unchanged if it does not parse.
func evaluate(m regexp2.Match) string {
	phrase := m.String()
	n, err := WordsToNumber(phrase)
	if err != nil {
		return phrase
	}
	return strconv.FormatInt(n, 10)
}

// digitsOf concatenates the digits spelled by s, which is a digit string or
// a whitespace separated list of digit words.
func digitsOf(s string) string {
	var b strings.Builder
	for _, f := range strings.Fields(s) {
		if d, ok := phoneticDigits[f]; ok {
			b.WriteString(d)
			continue
		}
		if isDigits(f) {
			b.WriteString(f)
		}
	}
	return b.String()
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
