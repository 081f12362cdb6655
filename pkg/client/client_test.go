/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/client/oapi"
)

func TestClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "set heading zero niner zero", req["text"])
		assert.Equal(t, false, req["postprocess"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"intent": "set_autopilot_heading",
			"slots": {"degrees": "090"},
			"confidence": 0.97,
			"original_text": "set heading zero niner zero",
			"normalized_text": "set heading 090",
			"action": {"intent": "set_autopilot_heading", "kind": "dataref",
				"target": "sim/cockpit/autopilot/heading_mag", "value": 90,
				"message": "Setting heading to 090 degrees"},
			"model": "v3"
		}`))
	}))
	defer server.Close()

	c, err := NewVimaanClient(server.URL, nil)
	require.NoError(t, err)

	off := false
	resp, err := c.Predict(context.Background(), oapi.PredictRequest{Text: "set heading zero niner zero", Postprocess: &off})
	require.NoError(t, err)

	assert.Equal(t, "set_autopilot_heading", resp.Intent)
	assert.Equal(t, map[string]string{"degrees": "090"}, resp.Slots)
	assert.InDelta(t, 0.97, resp.Confidence, 1e-6)
	assert.Equal(t, "set heading 090", resp.NormalizedText)
	assert.Equal(t, "v3", resp.Model)
	require.NotNil(t, resp.Action)
	assert.Equal(t, "sim/cockpit/autopilot/heading_mag", resp.Action.Target)
	assert.InDelta(t, 90, resp.Action.Value, 1e-9)
}

func TestClient_PredictBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/predict/batch", r.URL.Path)

		var req struct {
			Texts []string `json:"texts"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"gear up", ""}, req.Texts)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model": "v1", "results": [
			{"intent": "toggle_landing_gear", "slots": {"state": "up"}, "model": "v1"},
			{"model": "v1", "error": "nlu pipeline failed: empty token sequence"}
		]}`))
	}))
	defer server.Close()

	c, err := NewVimaanClient(server.URL+"/", nil)
	require.NoError(t, err)

	resp, err := c.PredictBatch(context.Background(), []string{"gear up", ""})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "toggle_landing_gear", resp.Results[0].Intent)
	assert.Empty(t, resp.Results[0].Error)
	assert.Contains(t, resp.Results[1].Error, "empty token sequence")
}

func TestClient_Normalize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/normalize", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, true, req["slot_value"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "two hundred", "normalized": "200", "slot_value": "200"}`))
	}))
	defer server.Close()

	c, err := NewVimaanClient(server.URL, nil)
	require.NoError(t, err)

	resp, err := c.Normalize(context.Background(), "two hundred", true)
	require.NoError(t, err)
	assert.Equal(t, "200", resp.Normalized)
	assert.Equal(t, "200", resp.SlotValue)
}

func TestClient_ModelsReloadVersion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"loaded": {"name": "v2", "version": 2, "intents": ["None"]},
			"versions": [{"version": 1, "name": "v1", "complete": true}, {"version": 2, "name": "v2", "complete": true}]}`))
	})
	mux.HandleFunc("POST /api/models/reload", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"previous": "v1", "current": "v2", "changed": true}`))
	})
	mux.HandleFunc("GET /api/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version": "1.2.0", "go_version": "go1.25.0"}`))
	})
	mux.HandleFunc("GET /api/history", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries": [{"id": 7, "intent": "toggle_flaps"}], "intents": [{"intent": "toggle_flaps", "count": 1}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c, err := NewVimaanClient(server.URL, nil)
	require.NoError(t, err)
	ctx := context.Background()

	models, err := c.Models(ctx)
	require.NoError(t, err)
	require.NotNil(t, models.Loaded)
	assert.Equal(t, "v2", models.Loaded.Name)
	assert.Len(t, models.Versions, 2)

	reload, err := c.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, oapi.ReloadResponse{Previous: "v1", Current: "v2", Changed: true}, *reload)

	version, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", version.Version)

	history, err := c.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, int64(7), history.Entries[0].Id)
	assert.Equal(t, 1, history.Intents[0].Count)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{
			name:        "plain text",
			status:      http.StatusBadRequest,
			contentType: "text/plain",
			body:        "text is required\n",
			wantMessage: "text is required",
		},
		{
			name:        "ok without json body",
			status:      http.StatusOK,
			contentType: "text/plain",
			body:        "gear up\n",
			wantMessage: "gear up",
		},
		{
			name:        "json error",
			status:      http.StatusServiceUnavailable,
			contentType: "application/json",
			body:        `{"error": "request queue is full"}`,
			wantMessage: "request queue is full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := NewVimaanClient(server.URL, nil)
			require.NoError(t, err)

			_, err = c.Predict(context.Background(), oapi.PredictRequest{Text: "gear up"})
			require.Error(t, err)
			assert.True(t, IsStatus(err, tt.status))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClient_HistoryDefaultLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history", r.URL.Path)
		assert.False(t, r.URL.Query().Has("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries": [], "intents": []}`))
	}))
	defer server.Close()

	c, err := NewVimaanClient(server.URL, server.Client())
	require.NoError(t, err)
	require.NotNil(t, c.Client())

	history, err := c.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history.Entries)
}

func TestNewVimaanClient_InvalidURL(t *testing.T) {
	_, err := NewVimaanClient("localhost", nil)
	require.Error(t, err)
}
