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
	"strconv"
	"strings"
)

// SlotValue canonicalises a single slot value: digit strings are rendered in
// canonical base-10 form ("0250" -> "250"), decimals are kept as written,
// cardinal phrases are evaluated ("two hundred" -> "200") and phonetic digit
// words are replaced one by one ("one two one" -> "121"). Anything else is
// returned lowercased and trimmed.
func SlotValue(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return v
	}

	if isDigits(strings.NewReplacer(".", "", "-", "").Replace(v)) {
		if strings.Contains(v, ".") {
			return v
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return v
	}

	if n, err := WordsToNumber(v); err == nil {
		return strconv.FormatInt(n, 10)
	}

	fields := strings.Fields(v)
	var b strings.Builder
	for _, f := range fields {
		switch {
		case phoneticDigits[f] != "":
			b.WriteString(phoneticDigits[f])
		case decimalWords[f]:
			b.WriteString(".")
		default:
			b.WriteString(f)
		}
	}
	if joined := b.String(); isDigits(strings.Replace(joined, ".", "", 1)) {
		return joined
	}
	return v
}
