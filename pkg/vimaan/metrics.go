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

import "github.com/prometheus/client_golang/prometheus"

var (
	predictRequestOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "predict_request_ops_total",
			Help:      "The total number of predict requests.",
		},
		[]string{"endpoint"},
	)
	utterancesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "utterances_processed_total",
			Help:      "The total number of utterances run through the pipeline.",
		},
		[]string{"model"},
	)
	intentPredictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "intent_predictions_total",
			Help:      "The total number of predictions per intent.",
		},
		[]string{"intent"},
	)
	pipelineErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "pipeline_errors_total",
			Help:      "The total number of utterances that failed in the pipeline.",
		},
	)

	modelReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "model_reloads_total",
			Help:      "The total number of model reload attempts.",
		},
		[]string{"result"},
	)
	loadedModelVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "loaded_model_version",
			Help:      "Version number of the serving model (0 for an unversioned directory).",
		},
	)
	modelLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "model_load_duration_seconds",
			Help:      "Time taken to load a model version.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "request_duration_seconds",
			Help:      "Time taken to process a request.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"endpoint", "model", "status"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits.",
		},
		[]string{"type"},
	)

	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses.",
		},
		[]string{"type"},
	)

	// Queue metrics
	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "queue_depth",
			Help:      "Number of requests currently waiting in queue.",
		},
	)

	queueActiveRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "queue_active_requests",
			Help:      "Number of requests currently being processed.",
		},
	)

	queueRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "queue_rejected_total",
			Help:      "Total number of requests rejected due to full queue.",
		},
	)

	queueTimedOutTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "queue_timed_out_total",
			Help:      "Total number of requests that timed out while waiting in queue.",
		},
	)

	queueWaitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vimaan",
			Subsystem: "nlu",
			Name:      "queue_wait_duration_seconds",
			Help:      "Time spent waiting in queue before processing.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

func init() {
	prometheus.MustRegister(predictRequestOps)
	prometheus.MustRegister(utterancesProcessed)
	prometheus.MustRegister(intentPredictions)
	prometheus.MustRegister(pipelineErrors)
	prometheus.MustRegister(modelReloads)
	prometheus.MustRegister(loadedModelVersion)
	prometheus.MustRegister(modelLoadDuration)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
	prometheus.MustRegister(queueDepth)
	prometheus.MustRegister(queueActiveRequests)
	prometheus.MustRegister(queueRejectedTotal)
	prometheus.MustRegister(queueTimedOutTotal)
	prometheus.MustRegister(queueWaitDuration)
}

// RecordPredictRequest increments the request counter for an endpoint
func RecordPredictRequest(endpoint string) {
	predictRequestOps.WithLabelValues(endpoint).Inc()
}

// RecordPrediction counts one utterance and its predicted intent
func RecordPrediction(model, intent string) {
	utterancesProcessed.WithLabelValues(model).Inc()
	intentPredictions.WithLabelValues(intent).Inc()
}

// RecordPipelineError increments the pipeline failure counter
func RecordPipelineError() {
	pipelineErrors.Inc()
}

// RecordModelReload counts a reload attempt; result is "loaded", "unchanged" or "failed"
func RecordModelReload(result string) {
	modelReloads.WithLabelValues(result).Inc()
}

// SetLoadedModelVersion sets the serving model version gauge
func SetLoadedModelVersion(version int) {
	loadedModelVersion.Set(float64(version))
}

// RecordModelLoadDuration records how long it took to load a model
func RecordModelLoadDuration(model string, seconds float64) {
	modelLoadDuration.WithLabelValues(model).Observe(seconds)
}

// RecordRequestDuration records how long a request took
func RecordRequestDuration(endpoint, model, status string, seconds float64) {
	requestDuration.WithLabelValues(endpoint, model, status).Observe(seconds)
}

// RecordCacheHit increments the cache hit counter
func RecordCacheHit(cacheType string) {
	cacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss increments the cache miss counter
func RecordCacheMiss(cacheType string) {
	cacheMisses.WithLabelValues(cacheType).Inc()
}

// UpdateQueueMetrics updates all queue-related metrics from QueueStats
func UpdateQueueMetrics(stats QueueStats) {
	queueDepth.Set(float64(stats.CurrentQueued))
	queueActiveRequests.Set(float64(stats.CurrentActive))
}

// RecordQueueRejection increments the rejected counter
func RecordQueueRejection() {
	queueRejectedTotal.Inc()
}

// RecordQueueTimeout increments the timeout counter
func RecordQueueTimeout() {
	queueTimedOutTotal.Inc()
}

// RecordQueueWaitTime records how long a request waited in queue
func RecordQueueWaitTime(seconds float64) {
	queueWaitDuration.Observe(seconds)
}
