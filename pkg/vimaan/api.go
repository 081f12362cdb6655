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

//go:build go1.22

//go:generate go tool oapi-codegen --config=cfg.yaml ./openapi.yaml
package vimaan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic/decoder"
	"github.com/bytedance/sonic/encoder"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/history"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/nlu"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/normalize"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/registry"
)

// MaxBatchSize bounds the utterances accepted by /api/predict/batch.
const MaxBatchSize = 64

// VimaanAPI implements the generated ServerInterface
type VimaanAPI struct {
	logger *zap.Logger
	node   *VimaanNode
}

// NewVimaanAPI creates a new HTTP handler for the Vimaan API using generated code
func NewVimaanAPI(logger *zap.Logger, node *VimaanNode) http.Handler {
	api := &VimaanAPI{
		logger: logger,
		node:   node,
	}
	return HandlerWithOptions(api, StdHTTPServerOptions{
		BaseURL:    "/api",
		BaseRouter: http.NewServeMux(),
	})
}

// PredictIntent implements ServerInterface
func (a *VimaanAPI) PredictIntent(w http.ResponseWriter, r *http.Request) {
	a.node.handleApiPredict(w, r)
}

// PredictIntentBatch implements ServerInterface
func (a *VimaanAPI) PredictIntentBatch(w http.ResponseWriter, r *http.Request) {
	a.node.handleApiPredictBatch(w, r)
}

// NormalizeText implements ServerInterface
func (a *VimaanAPI) NormalizeText(w http.ResponseWriter, r *http.Request) {
	a.node.handleApiNormalize(w, r)
}

// ListModels implements ServerInterface
func (a *VimaanAPI) ListModels(w http.ResponseWriter, r *http.Request) {
	a.node.handleApiModels(w, r)
}

// ReloadModel implements ServerInterface
func (a *VimaanAPI) ReloadModel(w http.ResponseWriter, r *http.Request) {
	a.node.handleApiReload(w, r)
}

// GetHistory implements ServerInterface
func (a *VimaanAPI) GetHistory(w http.ResponseWriter, r *http.Request, params GetHistoryParams) {
	a.node.handleApiHistory(w, r, params)
}

// GetVersion implements ServerInterface
func (a *VimaanAPI) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(a.logger, w, VersionResponse{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	})
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, resp any) {
	w.Header().Set("Content-Type", "application/json")
	if err := encoder.NewStreamEncoder(w).Encode(resp); err != nil {
		logger.Error("encoding response", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// acquireSlot applies backpressure via the request queue. It writes the
// error response itself and returns false when the request must stop.
func (vn *VimaanNode) acquireSlot(w http.ResponseWriter, r *http.Request) (func(), bool) {
	release, err := vn.requestQueue.Acquire(r.Context())
	if err != nil {
		switch err {
		case ErrQueueFull:
			RecordQueueRejection()
			WriteQueueFullResponse(w, 5*time.Second)
		case ErrRequestTimeout:
			RecordQueueTimeout()
			WriteTimeoutResponse(w)
		default:
			http.Error(w, "request cancelled", http.StatusRequestTimeout)
		}
		return nil, false
	}
	UpdateQueueMetrics(vn.requestQueue.Stats())
	return release, true
}

// acquirePredictor returns the serving predictor or writes a 503.
func (vn *VimaanNode) acquirePredictor(w http.ResponseWriter) (*nlu.Predictor, func(), bool) {
	p, release, err := vn.reloader.Acquire()
	if err != nil {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		return nil, nil, false
	}
	return p, release, true
}

// predictOne runs one utterance through the cache, resolves its action and
// records it.
func (vn *VimaanNode) predictOne(ctx context.Context, p *nlu.Predictor, text string, postprocess bool) (PredictResponse, error) {
	model := p.Bundle().Name()
	pred, hit, err := vn.predictionCache.Predict(ctx, p, text, postprocess)
	if err != nil {
		RecordPipelineError()
		return PredictResponse{Model: model, OriginalText: text, Slots: map[string]string{}}, err
	}
	RecordPrediction(model, pred.Intent)

	action := vn.dispatch.ResolvePrediction(pred)
	vn.record(ctx, pred, model)

	slots := pred.Slots
	if slots == nil {
		slots = map[string]string{}
	}
	return PredictResponse{
		Intent:         pred.Intent,
		Slots:          slots,
		Confidence:     pred.Confidence,
		OriginalText:   pred.OriginalText,
		NormalizedText: pred.NormalizedText,
		Action: &Action{
			Intent:  action.Intent,
			Kind:    ActionKind(action.Kind),
			Target:  action.Target,
			Value:   action.Value,
			Message: action.Message,
		},
		Model:    model,
		CacheHit: hit,
	}, nil
}

// record writes the prediction to the history store, if one is configured.
// History failures never fail the request.
func (vn *VimaanNode) record(ctx context.Context, pred *nlu.Prediction, model string) {
	if vn.history == nil {
		return
	}
	_, err := vn.history.Record(ctx, history.Entry{
		OriginalText:   pred.OriginalText,
		NormalizedText: pred.NormalizedText,
		Intent:         pred.Intent,
		Confidence:     float64(pred.Confidence),
		Slots:          pred.Slots,
		ModelVersion:   model,
	})
	if err != nil {
		vn.logger.Warn("Recording prediction history", zap.Error(err))
	}
}

// handleApiPredict handles single-utterance prediction requests
func (vn *VimaanNode) handleApiPredict(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()
	start := time.Now()
	RecordPredictRequest("predict")

	release, ok := vn.acquireSlot(w, r)
	if !ok {
		return
	}
	defer release()

	var req PredictRequest
	if err := decoder.NewStreamDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	p, done, ok := vn.acquirePredictor(w)
	if !ok {
		return
	}
	defer done()

	resp, err := vn.predictOne(r.Context(), p, req.Text, postprocessEnabled(req.Postprocess))
	if err != nil {
		status := errorStatus(err)
		vn.logger.Warn("prediction failed", zap.String("text", req.Text), zap.Error(err))
		RecordRequestDuration("predict", resp.Model, strconv.Itoa(status), time.Since(start).Seconds())
		http.Error(w, fmt.Sprintf("predicting: %v", err), status)
		return
	}

	RecordRequestDuration("predict", resp.Model, "200", time.Since(start).Seconds())
	writeJSON(vn.logger, w, resp)
}

// handleApiPredictBatch predicts several utterances. A failing utterance is
// reported in its own result and does not fail the batch.
func (vn *VimaanNode) handleApiPredictBatch(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()
	start := time.Now()
	RecordPredictRequest("predict_batch")

	release, ok := vn.acquireSlot(w, r)
	if !ok {
		return
	}
	defer release()

	var req BatchPredictRequest
	if err := decoder.NewStreamDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Texts) == 0 {
		http.Error(w, "texts is required", http.StatusBadRequest)
		return
	}
	if len(req.Texts) > MaxBatchSize {
		http.Error(w, fmt.Sprintf("at most %d texts per batch", MaxBatchSize), http.StatusBadRequest)
		return
	}

	p, done, ok := vn.acquirePredictor(w)
	if !ok {
		return
	}
	defer done()

	postprocess := postprocessEnabled(req.Postprocess)
	results := make([]PredictResponse, len(req.Texts))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range req.Texts {
		g.Go(func() error {
			res, err := vn.predictOne(ctx, p, text, postprocess)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				res.Error = err.Error()
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	}

	model := p.Bundle().Name()
	RecordRequestDuration("predict_batch", model, "200", time.Since(start).Seconds())
	writeJSON(vn.logger, w, BatchPredictResponse{Model: model, Results: results})
}

// handleApiNormalize exposes the normalizer
func (vn *VimaanNode) handleApiNormalize(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()

	var req NormalizeRequest
	if err := decoder.NewStreamDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}

	resp := NormalizeResponse{
		Text:       req.Text,
		Normalized: normalize.Normalize(req.Text),
	}
	if req.SlotValue {
		resp.SlotValue = normalize.SlotValue(req.Text)
	}
	writeJSON(vn.logger, w, resp)
}

// handleApiModels lists the serving model and the versions on disk
func (vn *VimaanNode) handleApiModels(w http.ResponseWriter, r *http.Request) {
	resp := ModelsResponse{Versions: []ModelVersion{}}

	if b := vn.reloader.Bundle(); b != nil {
		resp.Loaded = &LoadedModel{
			Name:     b.Name(),
			Version:  b.Version,
			Path:     b.Path,
			LoadedAt: b.LoadedAt,
			Intents:  b.Labels.Intents(),
			Slots:    b.Labels.SlotNames(),
		}
	}

	if vn.modelsDir != "" {
		versions, err := registry.ListVersions(loader.VersionsRoot(vn.modelsDir))
		if err != nil {
			vn.logger.Error("listing model versions", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, v := range versions {
			resp.Versions = append(resp.Versions, ModelVersion{
				Version:    v.Number,
				Name:       v.Name,
				Path:       v.Path,
				Size:       v.Size,
				ModifiedAt: v.ModifiedAt,
				Complete:   v.Complete,
				Missing:    v.Missing,
			})
		}
	}

	writeJSON(vn.logger, w, resp)
}

// handleApiReload loads the newest model version and swaps it in
func (vn *VimaanNode) handleApiReload(w http.ResponseWriter, r *http.Request) {
	res, err := vn.reloader.Reload(r.Context())
	if err != nil {
		vn.logger.Error("reloading model", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, loader.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, fmt.Sprintf("reloading model: %v", err), status)
		return
	}
	writeJSON(vn.logger, w, ReloadResponse{
		Previous: res.Previous,
		Current:  res.Current,
		Changed:  res.Changed,
	})
}

// handleApiHistory returns the most recent predictions. The limit query
// parameter is bound by the generated wrapper.
func (vn *VimaanNode) handleApiHistory(w http.ResponseWriter, r *http.Request, params GetHistoryParams) {
	if vn.history == nil {
		http.Error(w, "history not enabled: history_db is not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if params.Limit != nil {
		if *params.Limit < 0 {
			http.Error(w, fmt.Sprintf("invalid limit %d", *params.Limit), http.StatusBadRequest)
			return
		}
		limit = *params.Limit
	}

	entries, err := vn.history.Recent(r.Context(), limit)
	if err != nil {
		vn.logger.Error("reading history", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	counts, err := vn.history.IntentCounts(r.Context())
	if err != nil {
		vn.logger.Error("reading intent counts", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := HistoryResponse{
		Entries: make([]HistoryEntry, 0, len(entries)),
		Intents: make([]IntentCount, 0, len(counts)),
	}
	for _, e := range entries {
		slots := e.Slots
		if slots == nil {
			slots = map[string]string{}
		}
		resp.Entries = append(resp.Entries, HistoryEntry{
			Id:             e.ID,
			CreatedAt:      e.CreatedAt,
			OriginalText:   e.OriginalText,
			NormalizedText: e.NormalizedText,
			Intent:         e.Intent,
			Confidence:     e.Confidence,
			Slots:          slots,
			ModelVersion:   e.ModelVersion,
		})
	}
	for _, c := range counts {
		resp.Intents = append(resp.Intents, IntentCount{Intent: c.Intent, Count: c.Count})
	}
	writeJSON(vn.logger, w, resp)
}

func postprocessEnabled(p *bool) bool {
	return p == nil || *p
}

// errorStatus maps a prediction error to an HTTP status.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	case errors.Is(err, nlu.ErrPipeline):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
