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

//go:generate go tool oapi-codegen --config=cfg.yaml ../vimaan/openapi.yaml

// Package client provides an auto-generated Go SDK client for the Vimaan API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/client/oapi"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vimaan api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// VimaanClient is a client for interacting with the Vimaan API.
type VimaanClient struct {
	client  *oapi.ClientWithResponses
	baseURL string
}

// NewVimaanClient creates a new Vimaan client.
// The baseURL should be the server address (e.g., "http://localhost:11435").
// The /api prefix is automatically appended.
func NewVimaanClient(baseURL string, httpClient *http.Client) (*VimaanClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}

	apiURL := strings.TrimSuffix(baseURL, "/") + "/api"

	var opts []oapi.ClientOption
	if httpClient != nil {
		opts = append(opts, oapi.WithHTTPClient(httpClient))
	}

	client, err := oapi.NewClientWithResponses(apiURL, opts...)
	if err != nil {
		return nil, err
	}
	return &VimaanClient{
		client:  client,
		baseURL: apiURL,
	}, nil
}

// Client returns the underlying oapi-codegen client for direct API access.
func (c *VimaanClient) Client() *oapi.ClientWithResponses {
	return c.client
}

// Predict runs one utterance through the pipeline.
func (c *VimaanClient) Predict(ctx context.Context, req oapi.PredictRequest) (*oapi.PredictResponse, error) {
	resp, err := c.client.PredictIntentWithResponse(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.JSON200 == nil {
		return nil, apiError(resp.StatusCode(), resp.Body)
	}
	return resp.JSON200, nil
}

// PredictBatch predicts several utterances in one request.
func (c *VimaanClient) PredictBatch(ctx context.Context, texts []string) (*oapi.BatchPredictResponse, error) {
	resp, err := c.client.PredictIntentBatchWithResponse(ctx, oapi.BatchPredictRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.JSON200 == nil {
		return nil, apiError(resp.StatusCode(), resp.Body)
	}
	return resp.JSON200, nil
}

// Normalize runs the normalizer; with slotValue the canonical slot value is
// returned as well.
func (c *VimaanClient) Normalize(ctx context.Context, text string, slotValue bool) (*oapi.NormalizeResponse, error) {
	resp, err := c.client.NormalizeTextWithResponse(ctx, oapi.NormalizeRequest{Text: text, SlotValue: slotValue})
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.JSON200 == nil {
		return nil, apiError(resp.StatusCode(), resp.Body)
	}
	return resp.JSON200, nil
}

// Models lists the serving model and the versions on the server's disk.
func (c *VimaanClient) Models(ctx context.Context) (*oapi.ModelsResponse, error) {
	resp, err := c.client.ListModelsWithResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.JSON200 == nil {
		return nil, apiError(resp.StatusCode(), resp.Body)
	}
	return resp.JSON200, nil
}

// Reload asks the server to load its newest model version.
func (c *VimaanClient) Reload(ctx context.Context) (*oapi.ReloadResponse, error) {
	resp, err := c.client.ReloadModelWithResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.JSON200 == nil {
		return nil, apiError(resp.StatusCode(), resp.Body)
	}
	return resp.JSON200, nil
}

// History returns up to limit recent predictions (server default when limit <= 0).
func (c *VimaanClient) History(ctx context.Context, limit int) (*oapi.HistoryResponse, error) {
	params := &oapi.GetHistoryParams{}
	if limit > 0 {
		params.Limit = &limit
	}
	resp, err := c.client.GetHistoryWithResponse(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.JSON200 == nil {
		return nil, apiError(resp.StatusCode(), resp.Body)
	}
	return resp.JSON200, nil
}

// Version returns the server build information.
func (c *VimaanClient) Version(ctx context.Context) (*oapi.VersionResponse, error) {
	resp, err := c.client.GetVersionWithResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.JSON200 == nil {
		return nil, apiError(resp.StatusCode(), resp.Body)
	}
	return resp.JSON200, nil
}

// apiError builds an APIError from an error body, which is either plain
// text or {"error": "..."}. A 200 without a JSON body is reported as is.
func apiError(status int, body []byte) error {
	var errBody oapi.ErrorResponse
	message := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
		message = errBody.Error
	}
	return &APIError{StatusCode: status, Message: message}
}
