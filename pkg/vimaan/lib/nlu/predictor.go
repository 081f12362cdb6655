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

// Package nlu runs the full understanding pipeline over one utterance:
// normalize, encode, forward, decode, reconstruct slots and postprocess.
package nlu

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/joint"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/normalize"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/postprocess"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/slots"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/tokenizer"
)

// ErrPipeline wraps any failure (including a recovered panic) inside the
// per-utterance pipeline.
var ErrPipeline = errors.New("nlu pipeline failed")

// Prediction is the result for one utterance.
type Prediction struct {
	Intent         string            `json:"intent"`
	Slots          map[string]string `json:"slots"`
	Confidence     float32           `json:"confidence"`
	OriginalText   string            `json:"original_text"`
	NormalizedText string            `json:"normalized_text"`
}

// Predictor runs the pipeline against one loaded bundle. It holds no mutable
// state and may be shared.
type Predictor struct {
	bundle *loader.Bundle
	logger *zap.Logger
}

// NewPredictor returns a predictor over bundle.
func NewPredictor(bundle *loader.Bundle, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{bundle: bundle, logger: logger.Named("nlu")}
}

// Bundle returns the model bundle the predictor runs on.
func (p *Predictor) Bundle() *loader.Bundle {
	return p.bundle
}

type predictConfig struct {
	skipPostprocess bool
}

// PredictOption configures a single Predict call.
type PredictOption func(*predictConfig)

// WithoutPostprocess returns the reconstructed slots without range repair or
// implicit state.
func WithoutPostprocess() PredictOption {
	return func(c *predictConfig) { c.skipPostprocess = true }
}

// WithPostprocess toggles postprocessing.
func WithPostprocess(enabled bool) PredictOption {
	return func(c *predictConfig) { c.skipPostprocess = !enabled }
}

// Predict runs the pipeline over text. A panic anywhere in the pipeline is
// recovered and reported as ErrPipeline so one bad utterance cannot take
// down the caller.
func (p *Predictor) Predict(ctx context.Context, text string, opts ...PredictOption) (pred *Prediction, err error) {
	var cfg predictConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Recovered panic in NLU pipeline",
				zap.String("text", text),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			pred, err = nil, fmt.Errorf("%w: %v", ErrPipeline, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	normalized := normalize.Normalize(text)
	enc, err := p.bundle.Tokenizer.Encode(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	if enc.Len() <= 2 {
		return nil, fmt.Errorf("%w: %w", ErrPipeline, tokenizer.ErrEmptyEncoding)
	}

	out, err := p.bundle.Model.Forward(ctx, joint.Inputs{
		InputIDs:      enc.IDs,
		AttentionMask: enc.AttentionMask,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: forward pass: %w", ErrPipeline, err)
	}

	maps := p.bundle.Labels
	intentID := argmax(out.IntentLogits)
	intent, ok := maps.Intent(intentID)
	if !ok {
		intent = labels.NoIntent
	}

	tags := make([]string, len(enc.Tokens))
	for i := range tags {
		if i < len(out.SlotLogits) && enc.AttentionMask[i] == 1 {
			tags[i] = maps.SlotTag(argmax(out.SlotLogits[i]))
		} else {
			tags[i] = labels.OutsideTag
		}
	}

	values := slots.Reconstruct(enc.Tokens, tags)
	if !cfg.skipPostprocess {
		values = postprocess.Postprocess(values, normalized, intent)
	}
	if values == nil {
		values = map[string]string{}
	}

	pred = &Prediction{
		Intent:         intent,
		Slots:          values,
		Confidence:     softmaxScore(out.IntentLogits, intentID),
		OriginalText:   text,
		NormalizedText: normalized,
	}
	p.logger.Debug("Predicted",
		zap.String("text", text),
		zap.String("normalized", normalized),
		zap.String("intent", intent),
		zap.Any("slots", values),
		zap.Float32("confidence", pred.Confidence),
		zap.Duration("took", time.Since(start)))
	return pred, nil
}

// PredictBatch predicts every text concurrently, at most limit at a time
// (limit <= 0 means unbounded). Results are in input order.
func (p *Predictor) PredictBatch(ctx context.Context, texts []string, limit int, opts ...PredictOption) ([]*Prediction, error) {
	results := make([]*Prediction, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, text := range texts {
		g.Go(func() error {
			pred, err := p.Predict(ctx, text, opts...)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = pred
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
