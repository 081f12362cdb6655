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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/backends"
)

const (
	// EncoderFile holds the shared encoder and the slot head.
	EncoderFile = "model.onnx"
	// IntentHeadFile holds the intent projection over the [CLS] state.
	IntentHeadFile = "intent_classifier.onnx"

	slotLogitsOutput  = "logits"
	hiddenStateOutput = "last_hidden_state"
)

// SessionModel runs the joint model as two inference sessions: the encoder
// (which also emits slot logits) and the intent head.
type SessionModel struct {
	encoder backends.Session
	intent  backends.Session
}

// NewSessionModel builds a model from already opened sessions and takes
// ownership of them.
func NewSessionModel(encoder, intent backends.Session) *SessionModel {
	return &SessionModel{encoder: encoder, intent: intent}
}

// Open creates both sessions from the model files in dir.
func Open(dir string, factory backends.SessionFactory, opts ...backends.SessionOption) (*SessionModel, error) {
	encoder, err := factory.CreateSession(filepath.Join(dir, EncoderFile), opts...)
	if err != nil {
		return nil, fmt.Errorf("opening encoder: %w", err)
	}
	intent, err := factory.CreateSession(filepath.Join(dir, IntentHeadFile), opts...)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("opening intent head: %w", err)
	}
	return NewSessionModel(encoder, intent), nil
}

func (m *SessionModel) Forward(ctx context.Context, in Inputs) (*Output, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seqLen := int64(len(in.InputIDs))
	shape := []int64{1, seqLen}
	encoderOut, err := m.encoder.Run(m.encoderInputs(in, shape))
	if err != nil {
		return nil, fmt.Errorf("running encoder: %w", err)
	}

	slotTensor, ok := backends.FindTensor(encoderOut, slotLogitsOutput, 0)
	if !ok {
		return nil, fmt.Errorf("encoder produced no %s output", slotLogitsOutput)
	}
	slotLogits, err := rows(slotTensor, int(seqLen))
	if err != nil {
		return nil, err
	}

	hiddenTensor, ok := backends.FindTensor(encoderOut, hiddenStateOutput, 1)
	if !ok {
		return nil, fmt.Errorf("encoder produced no %s output", hiddenStateOutput)
	}
	hidden, err := rows(hiddenTensor, int(seqLen))
	if err != nil {
		return nil, err
	}

	cls := hidden[0]
	intentOut, err := m.intent.Run([]backends.NamedTensor{{
		Name:  m.intentInputName(),
		Shape: []int64{1, int64(len(cls))},
		Data:  cls,
	}})
	if err != nil {
		return nil, fmt.Errorf("running intent head: %w", err)
	}
	if len(intentOut) == 0 {
		return nil, fmt.Errorf("intent head produced no output")
	}
	intentLogits, err := intentOut[0].Float32s()
	if err != nil {
		return nil, err
	}

	out := &Output{IntentLogits: intentLogits, SlotLogits: slotLogits}
	if in.IntentLabel != nil {
		loss := Loss(out, *in.IntentLabel, in.SlotLabels)
		out.Loss = &loss
	}
	return out, nil
}

// encoderInputs feeds every input the encoder declares. BERT exports that
// also take token_type_ids get a single segment of zeros.
func (m *SessionModel) encoderInputs(in Inputs, shape []int64) []backends.NamedTensor {
	info := m.encoder.InputInfo()
	if len(info) == 0 {
		return []backends.NamedTensor{
			{Name: "input_ids", Shape: shape, Data: in.InputIDs},
			{Name: "attention_mask", Shape: shape, Data: in.AttentionMask},
		}
	}

	tensors := make([]backends.NamedTensor, 0, len(info))
	for _, ti := range info {
		name := strings.ToLower(ti.Name)
		var data []int64
		switch {
		case strings.Contains(name, "mask"):
			data = in.AttentionMask
		case strings.Contains(name, "token_type"):
			data = make([]int64, len(in.InputIDs))
		default:
			data = in.InputIDs
		}
		tensors = append(tensors, backends.NamedTensor{Name: ti.Name, Shape: shape, Data: data})
	}
	return tensors
}

func (m *SessionModel) intentInputName() string {
	if info := m.intent.InputInfo(); len(info) > 0 {
		return info[0].Name
	}
	return hiddenStateOutput
}

// rows splits a [1, seqLen, width] tensor into seqLen rows.
func rows(t backends.NamedTensor, seqLen int) ([][]float32, error) {
	data, err := t.Float32s()
	if err != nil {
		return nil, err
	}
	if seqLen == 0 || len(data) == 0 || len(data)%seqLen != 0 {
		return nil, fmt.Errorf("tensor %s: %d values do not split into %d positions", t.Name, len(data), seqLen)
	}
	width := len(data) / seqLen
	out := make([][]float32, seqLen)
	for i := range out {
		out[i] = data[i*width : (i+1)*width]
	}
	return out, nil
}

func (m *SessionModel) NumIntents() int {
	return outputWidth(m.intent, "")
}

func (m *SessionModel) NumSlots() int {
	return outputWidth(m.encoder, slotLogitsOutput)
}

func outputWidth(s backends.Session, name string) int {
	info := s.OutputInfo()
	if len(info) == 0 {
		return -1
	}
	for _, ti := range info {
		if strings.EqualFold(ti.Name, name) {
			return int(ti.LastDim())
		}
	}
	return int(info[0].LastDim())
}

func (m *SessionModel) Close() error {
	var errs []error
	if m.encoder != nil {
		if err := m.encoder.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.intent != nil {
		if err := m.intent.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
