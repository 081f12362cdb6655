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

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/client"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/client/oapi"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/dispatch"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/nlu"
)

// predictSession predicts in-process or against a running server.
type predictSession interface {
	Predict(ctx context.Context, text string, postprocess bool) (*oapi.PredictResponse, error)
	Close() error
}

// openSession connects to server when set, otherwise loads the local model.
func openSession(ctx context.Context, server string, logger *zap.Logger) (predictSession, error) {
	if server != "" {
		c, err := client.NewVimaanClient(server, &http.Client{Timeout: time.Minute})
		if err != nil {
			return nil, err
		}
		return &remoteSession{client: c}, nil
	}

	applyRuntimeEnv()
	opts, err := serverConfig().LoaderOptions(logger.Named("loader"))
	if err != nil {
		return nil, err
	}
	bundle, err := loader.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	table, err := dispatch.Load(viper.GetString("dispatch_table"))
	if err != nil {
		_ = bundle.Close()
		return nil, err
	}
	return &localSession{predictor: nlu.NewPredictor(bundle, logger), table: table}, nil
}

type localSession struct {
	predictor *nlu.Predictor
	table     *dispatch.Table
}

func (s *localSession) Predict(ctx context.Context, text string, postprocess bool) (*oapi.PredictResponse, error) {
	pred, err := s.predictor.Predict(ctx, text, nlu.WithPostprocess(postprocess))
	if err != nil {
		return nil, err
	}
	action := s.table.ResolvePrediction(pred)
	return &oapi.PredictResponse{
		Intent:         pred.Intent,
		Slots:          pred.Slots,
		Confidence:     pred.Confidence,
		OriginalText:   pred.OriginalText,
		NormalizedText: pred.NormalizedText,
		Action: &oapi.Action{
			Intent:  action.Intent,
			Kind:    oapi.ActionKind(action.Kind),
			Target:  action.Target,
			Value:   action.Value,
			Message: action.Message,
		},
		Model: s.predictor.Bundle().Name(),
	}, nil
}

func (s *localSession) Close() error {
	return s.predictor.Bundle().Close()
}

type remoteSession struct {
	client *client.VimaanClient
}

func (s *remoteSession) Predict(ctx context.Context, text string, postprocess bool) (*oapi.PredictResponse, error) {
	return s.client.Predict(ctx, oapi.PredictRequest{Text: text, Postprocess: &postprocess})
}

func (s *remoteSession) Close() error { return nil }

// printResult writes a prediction for humans, or as indented JSON.
func printResult(w io.Writer, r *oapi.PredictResponse, asJSON bool) error {
	if asJSON {
		data, err := gojson.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "Normalized: %s\n", r.NormalizedText)
	fmt.Fprintf(w, "Intent:     %s (%.2f)\n", r.Intent, r.Confidence)
	fmt.Fprintf(w, "Slots:      %s\n", formatSlots(r.Slots))
	if a := r.Action; a != nil {
		switch a.Kind {
		case oapi.ActionKindDataref:
			fmt.Fprintf(w, "Action:     %s = %g (%s)\n", a.Target, a.Value, a.Message)
		case oapi.ActionKindCommand:
			fmt.Fprintf(w, "Action:     %s (%s)\n", a.Target, a.Message)
		default:
			fmt.Fprintf(w, "Action:     none (%s)\n", a.Message)
		}
	}
	return nil
}

func formatSlots(slots map[string]string) string {
	if len(slots) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + slots[k]
	}
	return strings.Join(parts, " ")
}
