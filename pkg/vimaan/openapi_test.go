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

package vimaan

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader/loadertest"
)

func newSpecRouter(t *testing.T) routers.Router {
	t.Helper()
	swagger, err := GetSwagger()
	require.NoError(t, err)
	require.NoError(t, swagger.Validate(context.Background()))

	router, err := legacy.NewRouter(swagger)
	require.NoError(t, err)
	return router
}

// TestOpenAPIContract runs real requests through the handler and validates
// both sides of every exchange against the embedded OpenAPI document.
func TestOpenAPIContract(t *testing.T) {
	router := newSpecRouter(t)
	node := newTestNode(t)
	off := false

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"predict", "POST", "/api/predict", PredictRequest{Text: "set heading zero niner zero"}, http.StatusOK},
		{"predict cached", "POST", "/api/predict", PredictRequest{Text: "set heading zero niner zero"}, http.StatusOK},
		{"predict out of scope", "POST", "/api/predict", PredictRequest{Text: "what is the weather"}, http.StatusOK},
		{"predict raw slots", "POST", "/api/predict", PredictRequest{Text: "raise the landing gear", Postprocess: &off}, http.StatusOK},
		{"predict blank", "POST", "/api/predict", PredictRequest{Text: " "}, http.StatusBadRequest},
		{"batch with failure", "POST", "/api/predict/batch", BatchPredictRequest{Texts: []string{"gear up", "   "}}, http.StatusOK},
		{"normalize", "POST", "/api/normalize", NormalizeRequest{Text: "two hundred", SlotValue: true}, http.StatusOK},
		{"models", "GET", "/api/models", nil, http.StatusOK},
		{"history", "GET", "/api/history?limit=5", nil, http.StatusOK},
		{"history bad limit", "GET", "/api/history?limit=x", nil, http.StatusBadRequest},
		{"version", "GET", "/api/version", nil, http.StatusOK},
		{"reload", "POST", "/api/models/reload", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data []byte
			if tt.body != nil {
				var err error
				data, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(data))
			if tt.body != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			route, pathParams, err := router.FindRoute(req)
			require.NoError(t, err)
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if tt.status == http.StatusOK {
				require.NoError(t, openapi3filter.ValidateRequest(context.Background(), input))
			}

			// Rewind the body for the handler.
			req.Body = http.NoBody
			if data != nil {
				req.Body = io.NopCloser(bytes.NewReader(data))
			}
			w := httptest.NewRecorder()
			node.handler.ServeHTTP(w, req)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			err = openapi3filter.ValidateResponse(context.Background(), &openapi3filter.ResponseValidationInput{
				RequestValidationInput: input,
				Status:                 w.Code,
				Header:                 w.Header(),
				Body:                   io.NopCloser(bytes.NewReader(w.Body.Bytes())),
				Options:                &openapi3filter.Options{IncludeResponseStatus: true},
			})
			require.NoError(t, err, w.Body.String())
		})
	}
}

func TestOpenAPIRoutesAreServed(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	modelsDir := t.TempDir()
	loadertest.WriteVersion(t, modelsDir, 1)
	reloader := NewReloader(loadertest.Options(modelsDir), logger)
	t.Cleanup(func() { _ = reloader.Close() })

	// A complete version on disk keeps reload from answering 404 itself.
	node := &VimaanNode{
		logger:    logger,
		modelsDir: modelsDir,
		reloader:  reloader,
		requestQueue: NewRequestQueue(RequestQueueConfig{
			MaxConcurrentRequests: 1,
			MaxQueueSize:          1,
		}, logger),
	}
	handler := node.Handler()

	for path, item := range swagger.Paths.Map() {
		for method := range item.Operations() {
			req := httptest.NewRequest(method, "/api"+path, bytes.NewReader([]byte("{}")))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "%s %s", method, path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code, "%s %s", method, path)
		}
	}
}
