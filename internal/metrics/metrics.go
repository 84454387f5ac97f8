// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// List labels for recommendation metrics.
const (
	ListUsers = "users"
	ListPosts = "posts"
)

// Report run status labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	// Dataset Metrics
	LoadRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_load_rows_total",
			Help: "Total number of dataset rows loaded",
		},
		[]string{"dataset"}, // "users", "posts"
	)

	LoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinity_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dataset"},
	)

	LoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"dataset", "kind"}, // kind: "io", "schema", "parse", "canceled", "other"
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_recommendations_total",
			Help: "Total number of recommended items emitted",
		},
		[]string{"list"}, // "users", "posts"
	)

	RecommendationListSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinity_recommendation_list_size",
			Help:    "Number of entries per recommendation list",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
		},
		[]string{"list"},
	)

	EmptyRecommendationLists = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_empty_recommendation_lists_total",
			Help: "Total number of recommendation lists with no entries",
		},
		[]string{"list"},
	)

	// Report Metrics
	ReportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_report_runs_total",
			Help: "Total number of report runs by outcome",
		},
		[]string{"status"}, // "success", "failure"
	)

	ReportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "affinity_report_duration_seconds",
			Help:    "Duration of report builds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReportSubjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_report_subjects",
			Help: "Number of subject users in the last report",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinity_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_api_cache_lookups_total",
			Help: "Total number of ranked list cache lookups",
		},
		[]string{"list", "result"}, // result: "hit", "miss"
	)

	DatasetSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "affinity_dataset_size",
			Help: "Number of records held in memory by the server",
		},
		[]string{"dataset"},
	)

	ReportLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_report_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful report",
		},
	)
)

// RecordLoad records one dataset load. An empty errKind means success.
func RecordLoad(dataset string, rows int, duration time.Duration, errKind string) {
	LoadDuration.WithLabelValues(dataset).Observe(duration.Seconds())
	if errKind != "" {
		LoadErrors.WithLabelValues(dataset, errKind).Inc()
		return
	}
	LoadRowsTotal.WithLabelValues(dataset).Add(float64(rows))
}

// RecordRecommendations records one emitted recommendation list.
func RecordRecommendations(list string, size int) {
	RecommendationListSize.WithLabelValues(list).Observe(float64(size))
	RecommendationsTotal.WithLabelValues(list).Add(float64(size))
	if size == 0 {
		EmptyRecommendationLists.WithLabelValues(list).Inc()
	}
}

// RecordReport records the outcome of a report build.
func RecordReport(subjects int, duration time.Duration, err error) {
	ReportDuration.Observe(duration.Seconds())
	if err != nil {
		ReportRunsTotal.WithLabelValues(StatusFailure).Inc()
		return
	}
	ReportRunsTotal.WithLabelValues(StatusSuccess).Inc()
	ReportSubjects.Set(float64(subjects))
	ReportLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordAPIRequest records one served API request. route is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCacheLookup records one ranked list cache lookup.
func RecordCacheLookup(list string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(list, result).Inc()
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for pickup by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(prometheus.DefaultGatherer, path)
}

// WriteTextfileFrom writes the metrics gathered from g to path.
// The file is replaced atomically.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
