// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package metrics is the ambient observability layer named by SPEC_FULL.md's
// A2 component: per-stage counters and a latency histogram for the recording, speech, and
// overlay pipelines. It is deliberately never exposed over HTTP — metrics
// are read in-process only, e.g. for diagnostics logging or tests.
package metrics

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is a small façade around the counters/histogram the pipeline
// updates. A nil *Recorder is safe to call every method on: every method
// guards on it, so components can hold an always-present Recorder field
// and simply skip instrumentation when metrics are disabled (spec.md's
// `metrics.enabled` config flag).
type Recorder struct {
	registry *prometheus.Registry

	recordingsStarted   prometheus.Counter
	recordingsCompleted prometheus.Counter
	recordingsCancelled prometheus.Counter
	transcriptionLatency prometheus.Histogram
	transcriptionErrors prometheus.Counter
	httpErrors          *prometheus.CounterVec
	overlayTransitions  *prometheus.CounterVec
}

// New creates a Recorder registered against a private registry (not the
// global default, so importing this package never collides with another
// component's metric names).
func New() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		recordingsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "justwhisper", Subsystem: "recording", Name: "started_total",
			Help: "Recordings started.",
		}),
		recordingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "justwhisper", Subsystem: "recording", Name: "completed_total",
			Help: "Recordings that reached Thinking.",
		}),
		recordingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "justwhisper", Subsystem: "recording", Name: "cancelled_total",
			Help: "Recordings cancelled before completion.",
		}),
		transcriptionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "justwhisper", Subsystem: "speech", Name: "transcription_seconds",
			Help:    "End-to-end latency of a single transcription request.",
			Buckets: prometheus.DefBuckets,
		}),
		transcriptionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "justwhisper", Subsystem: "speech", Name: "errors_total",
			Help: "Transcription requests that returned an error.",
		}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "justwhisper", Subsystem: "speech", Name: "http_errors_total",
			Help: "Non-2xx responses from a remote provider, labeled by provider kind.",
		}, []string{"provider"}),
		overlayTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "justwhisper", Subsystem: "overlay", Name: "transitions_total",
			Help: "SessionState transitions, labeled by destination state.",
		}, []string{"state"}),
	}

	reg.MustRegister(
		r.recordingsStarted, r.recordingsCompleted, r.recordingsCancelled,
		r.transcriptionLatency, r.transcriptionErrors, r.httpErrors, r.overlayTransitions,
	)
	return r
}

func (r *Recorder) RecordingStarted() {
	if r == nil {
		return
	}
	r.recordingsStarted.Inc()
}

func (r *Recorder) RecordingCompleted() {
	if r == nil {
		return
	}
	r.recordingsCompleted.Inc()
}

func (r *Recorder) RecordingCancelled() {
	if r == nil {
		return
	}
	r.recordingsCancelled.Inc()
}

func (r *Recorder) ObserveTranscriptionLatency(seconds float64) {
	if r == nil {
		return
	}
	r.transcriptionLatency.Observe(seconds)
}

func (r *Recorder) TranscriptionError() {
	if r == nil {
		return
	}
	r.transcriptionErrors.Inc()
}

func (r *Recorder) HTTPError(provider string) {
	if r == nil {
		return
	}
	r.httpErrors.WithLabelValues(provider).Inc()
}

func (r *Recorder) OverlayTransition(state string) {
	if r == nil {
		return
	}
	r.overlayTransitions.WithLabelValues(state).Inc()
}

// Gather returns the current metric families, for in-process diagnostics
// (e.g. dumping counters to the log ring on request). Never served over
// HTTP.
func (r *Recorder) Gather() ([]*dto.MetricFamily, error) {
	if r == nil {
		return nil, nil
	}
	return r.registry.Gather()
}
