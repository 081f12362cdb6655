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

// Package joint wraps the jointly trained intent classifier and slot tagger.
// A shared encoder produces per-token hidden states; the slot head projects
// every position onto the BIO tag vocabulary and the intent head projects the
// first ([CLS]) position onto the intent vocabulary.
package joint

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// IgnoreIndex marks slot label positions that do not contribute to the loss.
const IgnoreIndex = -100

// ErrInvalidInput is returned for empty or inconsistent token inputs.
var ErrInvalidInput = errors.New("invalid model input")

// Inputs is a single encoded utterance.
type Inputs struct {
	InputIDs      []int64
	AttentionMask []int64

	// Optional training labels. When IntentLabel is set, Forward also
	// returns the joint loss.
	IntentLabel *int64
	SlotLabels  []int64
}

// Output holds both heads' logits for one utterance.
type Output struct {
	// Loss is set only when Inputs carried labels.
	Loss *float32

	// IntentLogits has one entry per intent label.
	IntentLogits []float32

	// SlotLogits has one row per token position, one column per slot tag.
	SlotLogits [][]float32
}

// NumSlots returns the slot head width seen in this output.
func (o *Output) NumSlots() int {
	if len(o.SlotLogits) == 0 {
		return 0
	}
	return len(o.SlotLogits[0])
}

// Model is the joint intent+slot forward pass.
type Model interface {
	// Forward runs both heads over one utterance.
	Forward(ctx context.Context, in Inputs) (*Output, error)

	// NumIntents and NumSlots report the head widths, or -1 when the
	// model does not declare them statically.
	NumIntents() int
	NumSlots() int

	Close() error
}

// Validate checks that the ids and mask line up.
func (in Inputs) Validate() error {
	if len(in.InputIDs) == 0 {
		return fmt.Errorf("%w: empty token sequence", ErrInvalidInput)
	}
	if len(in.AttentionMask) != len(in.InputIDs) {
		return fmt.Errorf("%w: %d input ids but %d mask entries",
			ErrInvalidInput, len(in.InputIDs), len(in.AttentionMask))
	}
	if in.SlotLabels != nil && len(in.SlotLabels) != len(in.InputIDs) {
		return fmt.Errorf("%w: %d slot labels for %d tokens",
			ErrInvalidInput, len(in.SlotLabels), len(in.InputIDs))
	}
	return nil
}

// Loss returns the summed intent and slot cross-entropy. Slot positions
// labelled IgnoreIndex are skipped; the slot term is the mean over the rest.
func Loss(out *Output, intentLabel int64, slotLabels []int64) float32 {
	loss := CrossEntropy(out.IntentLogits, intentLabel)

	var slotSum float64
	var counted int
	for i, label := range slotLabels {
		if label == IgnoreIndex || i >= len(out.SlotLogits) {
			continue
		}
		slotSum += CrossEntropy(out.SlotLogits[i], label)
		counted++
	}
	if counted > 0 {
		loss += slotSum / float64(counted)
	}
	return float32(loss)
}

// CrossEntropy is -log(softmax(logits)[label]).
func CrossEntropy(logits []float32, label int64) float64 {
	if label < 0 || int(label) >= len(logits) {
		return 0
	}
	maxVal := logits[0]
	for _, v := range logits[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	var sum float64
	for _, v := range logits {
		sum += math.Exp(float64(v - maxVal))
	}
	return math.Log(sum) - float64(logits[label]-maxVal)
}
