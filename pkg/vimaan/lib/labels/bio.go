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

package labels

// IsBegin checks if a tag opens a slot span (B-).
func IsBegin(tag string) bool {
	return len(tag) >= 2 && tag[0] == 'B' && tag[1] == '-'
}

// IsInside checks if a tag continues a slot span (I-).
func IsInside(tag string) bool {
	return len(tag) >= 2 && tag[0] == 'I' && tag[1] == '-'
}

// IsOutside checks if a tag is outside any slot (O).
func IsOutside(tag string) bool {
	return tag == OutsideTag || tag == ""
}

// SlotName extracts the slot name from a BIO tag.
// Returns empty string for O tags.
func SlotName(tag string) string {
	if IsOutside(tag) {
		return ""
	}
	if len(tag) >= 2 && tag[1] == '-' {
		return tag[2:]
	}
	return tag
}
