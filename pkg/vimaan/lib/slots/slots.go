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

// Package slots rebuilds slot values from per-token BIO tags.
package slots

import (
	"strings"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
)

// ContinuationPrefix marks a WordPiece token that continues the previous one.
const ContinuationPrefix = "##"

// structural tokens never belong to a slot.
var structural = map[string]bool{
	"[CLS]": true,
	"[SEP]": true,
	"[PAD]": true,
}

// span is the slot currently being accumulated.
type span struct {
	name   string
	pieces []string
}

func (s *span) open() bool { return s.name != "" }

// Reconstruct scans tokens and their tags left to right and returns slot name
// to value. B- opens a span (closing any open one), a matching I- extends it,
// and O, a mismatched I- or a dangling I- closes it. A later span of the same
// name replaces an earlier one. tags shorter than tokens are read as O.
func Reconstruct(tokens, tags []string) map[string]string {
	out := make(map[string]string)
	var cur span

	flush := func() {
		if cur.open() && len(cur.pieces) > 0 {
			out[cur.name] = JoinPieces(cur.pieces)
		}
		cur = span{}
	}

	for i, tok := range tokens {
		if structural[tok] {
			continue
		}
		tag := labels.OutsideTag
		if i < len(tags) {
			tag = tags[i]
		}

		switch {
		case labels.IsBegin(tag):
			flush()
			cur = span{name: labels.SlotName(tag), pieces: []string{tok}}
		case labels.IsInside(tag) && cur.open() && labels.SlotName(tag) == cur.name:
			cur.pieces = append(cur.pieces, tok)
		default:
			flush()
		}
	}
	flush()
	return out
}

// JoinPieces joins the tokens of one slot: continuation pieces and a literal
// "." attach to their neighbours, everything else is space separated.
func JoinPieces(pieces []string) string {
	var b strings.Builder
	prev := ""
	for i, p := range pieces {
		clean := strings.ReplaceAll(p, ContinuationPrefix, "")
		attach := strings.HasPrefix(p, ContinuationPrefix) || clean == "." || prev == "."
		if i > 0 && !attach {
			b.WriteByte(' ')
		}
		b.WriteString(clean)
		prev = clean
	}
	return strings.TrimSpace(b.String())
}
