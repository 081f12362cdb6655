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

package joint

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/backends"
)

// fakeSession returns fixed outputs and records the inputs it saw.
type fakeSession struct {
	inputs  []backends.TensorInfo
	outputs []backends.TensorInfo
	run     func(in []backends.NamedTensor) ([]backends.NamedTensor, error)
	seen    []backends.NamedTensor
	closed  bool
}

func (s *fakeSession) Run(in []backends.NamedTensor) ([]backends.NamedTensor, error) {
	s.seen = in
	return s.run(in)
}
func (s *fakeSession) InputInfo() []backends.TensorInfo  { return s.inputs }
func (s *fakeSession) OutputInfo() []backends.TensorInfo { return s.outputs }
func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeFactory struct {
	sessions map[string]*fakeSession
	err      map[string]error
}

func (f *fakeFactory) CreateSession(path string, _ ...backends.SessionOption) (backends.Session, error) {
	for name, err := range f.err {
		if len(path) >= len(name) && path[len(path)-len(name):] == name {
			return nil, err
		}
	}
	for name, s := range f.sessions {
		if len(path) >= len(name) && path[len(path)-len(name):] == name {
			return s, nil
		}
	}
	return nil, errors.New("no session for " + path)
}

func (f *fakeFactory) Backend() backends.BackendType { return "fake" }

// newSessions builds an encoder with 3 slot tags and hidden size 2, and an
// intent head with 4 intents whose logits echo the [CLS] hidden state.
func newSessions() (*fakeSession, *fakeSession) {
	encoder := &fakeSession{
		inputs: []backends.TensorInfo{
			{Name: "input_ids", Shape: []int64{1, -1}, DataType: backends.DataTypeInt64},
			{Name: "attention_mask", Shape: []int64{1, -1}, DataType: backends.DataTypeInt64},
			{Name: "token_type_ids", Shape: []int64{1, -1}, DataType: backends.DataTypeInt64},
		},
		outputs: []backends.TensorInfo{
			{Name: "logits", Shape: []int64{1, -1, 3}},
			{Name: "last_hidden_state", Shape: []int64{1, -1, 2}},
		},
	}
	encoder.run = func(in []backends.NamedTensor) ([]backends.NamedTensor, error) {
		n := int(in[0].Shape[1])
		slots := make([]float32, n*3)
		hidden := make([]float32, n*2)
		for i := 0; i < n; i++ {
			slots[i*3+i%3] = 1
			hidden[i*2] = float32(i + 1)
			hidden[i*2+1] = float32(10 * (i + 1))
		}
		return []backends.NamedTensor{
			{Name: "logits", Shape: []int64{1, int64(n), 3}, Data: slots},
			{Name: "last_hidden_state", Shape: []int64{1, int64(n), 2}, Data: hidden},
		}, nil
	}
	intent := &fakeSession{
		inputs:  []backends.TensorInfo{{Name: "hidden", Shape: []int64{1, 2}}},
		outputs: []backends.TensorInfo{{Name: "intent_logits", Shape: []int64{1, 4}}},
	}
	intent.run = func(in []backends.NamedTensor) ([]backends.NamedTensor, error) {
		cls := in[0].Data.([]float32)
		return []backends.NamedTensor{
			{Name: "intent_logits", Shape: []int64{1, 4}, Data: []float32{cls[0], cls[1], 0, 0}},
		}, nil
	}
	return encoder, intent
}

func TestSessionModelForward(t *testing.T) {
	encoder, intent := newSessions()
	m := NewSessionModel(encoder, intent)

	out, err := m.Forward(context.Background(), Inputs{
		InputIDs:      []int64{101, 7, 8, 102},
		AttentionMask: []int64{1, 1, 1, 1},
	})
	require.NoError(t, err)
	assert.Nil(t, out.Loss)

	// The intent head sees only the [CLS] position.
	assert.Equal(t, []float32{1, 10, 0, 0}, out.IntentLogits)
	require.Len(t, out.SlotLogits, 4)
	assert.Equal(t, []float32{0, 1, 0}, out.SlotLogits[1])
	assert.Equal(t, 3, out.NumSlots())

	require.Len(t, encoder.seen, 3)
	assert.Equal(t, []int64{0, 0, 0, 0}, encoder.seen[2].Data)
	assert.Equal(t, "hidden", intent.seen[0].Name)
	assert.Equal(t, []int64{1, 2}, intent.seen[0].Shape)

	assert.Equal(t, 4, m.NumIntents())
	assert.Equal(t, 3, m.NumSlots())
}

func TestSessionModelForwardWithLabels(t *testing.T) {
	encoder, intent := newSessions()
	m := NewSessionModel(encoder, intent)

	label := int64(1)
	out, err := m.Forward(context.Background(), Inputs{
		InputIDs:      []int64{101, 7, 102},
		AttentionMask: []int64{1, 1, 1},
		IntentLabel:   &label,
		SlotLabels:    []int64{IgnoreIndex, 1, IgnoreIndex},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Loss)

	want := CrossEntropy([]float32{1, 10, 0, 0}, 1) + CrossEntropy([]float32{0, 1, 0}, 1)
	assert.InDelta(t, want, float64(*out.Loss), 1e-5)
}

func TestSessionModelForwardErrors(t *testing.T) {
	encoder, intent := newSessions()
	m := NewSessionModel(encoder, intent)

	_, err := m.Forward(context.Background(), Inputs{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Forward(context.Background(), Inputs{InputIDs: []int64{1, 2}, AttentionMask: []int64{1}})
	require.ErrorIs(t, err, ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Forward(ctx, Inputs{InputIDs: []int64{1}, AttentionMask: []int64{1}})
	require.ErrorIs(t, err, context.Canceled)

	boom := errors.New("boom")
	encoder.run = func([]backends.NamedTensor) ([]backends.NamedTensor, error) { return nil, boom }
	_, err = m.Forward(context.Background(), Inputs{InputIDs: []int64{1}, AttentionMask: []int64{1}})
	require.ErrorIs(t, err, boom)
}

func TestOpen(t *testing.T) {
	encoder, intent := newSessions()
	factory := &fakeFactory{sessions: map[string]*fakeSession{
		EncoderFile:    encoder,
		IntentHeadFile: intent,
	}}

	m, err := Open(t.TempDir(), factory)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	assert.True(t, encoder.closed)
	assert.True(t, intent.closed)
}

func TestOpenClosesEncoderOnFailure(t *testing.T) {
	encoder, _ := newSessions()
	factory := &fakeFactory{
		sessions: map[string]*fakeSession{EncoderFile: encoder},
		err:      map[string]error{IntentHeadFile: errors.New("missing")},
	}

	_, err := Open(t.TempDir(), factory)
	require.Error(t, err)
	assert.True(t, encoder.closed)
}

func TestCrossEntropy(t *testing.T) {
	// Uniform logits: -log(1/n).
	assert.InDelta(t, math.Log(4), CrossEntropy([]float32{2, 2, 2, 2}, 3), 1e-9)
	assert.Less(t, CrossEntropy([]float32{10, 0}, 0), 1e-3)
	assert.Zero(t, CrossEntropy([]float32{1, 2}, IgnoreIndex))
}
