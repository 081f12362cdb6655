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

// Package jointtest provides a deterministic joint.Model for tests.
package jointtest

import (
	"context"
	"sync/atomic"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/joint"
)

// Peak is the logit given to the chosen label; every other label gets 0.
const Peak = 5.0

// Model emits one-hot logits chosen by callbacks.
type Model struct {
	Intents int
	Slots   int

	// IntentFor picks the intent id for the whole sequence.
	IntentFor func(ids []int64) int
	// SlotFor picks the slot tag id for the token at position i.
	SlotFor func(ids []int64, i int) int

	// Err, when set, is returned by Forward.
	Err error
	// Gate, when set, holds Forward until it is closed or ctx is done.
	Gate chan struct{}

	calls  atomic.Int64
	closed atomic.Bool
}

func (m *Model) Forward(ctx context.Context, in joint.Inputs) (*joint.Output, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	intent := 0
	if m.IntentFor != nil {
		intent = m.IntentFor(in.InputIDs)
	}
	out := &joint.Output{
		IntentLogits: oneHot(m.Intents, intent),
		SlotLogits:   make([][]float32, len(in.InputIDs)),
	}
	for i := range in.InputIDs {
		slot := 0
		if m.SlotFor != nil {
			slot = m.SlotFor(in.InputIDs, i)
		}
		out.SlotLogits[i] = oneHot(m.Slots, slot)
	}
	if in.IntentLabel != nil {
		loss := joint.Loss(out, *in.IntentLabel, in.SlotLabels)
		out.Loss = &loss
	}
	return out, nil
}

func oneHot(n, idx int) []float32 {
	v := make([]float32, n)
	if idx >= 0 && idx < n {
		v[idx] = Peak
	}
	return v
}

func (m *Model) NumIntents() int { return m.Intents }
func (m *Model) NumSlots() int   { return m.Slots }

func (m *Model) Close() error {
	m.closed.Store(true)
	return nil
}

// Calls returns how many times Forward ran.
func (m *Model) Calls() int64 { return m.calls.Load() }

// Closed reports whether Close was called.
func (m *Model) Closed() bool { return m.closed.Load() }
