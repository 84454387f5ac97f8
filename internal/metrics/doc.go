// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package metrics provides Prometheus metrics for dataset loads and reports.

Affinity runs as a batch job, so metrics are not scraped over HTTP. When
metrics.textfile_path is set, the registry is written once at exit in the
text format read by node_exporter's textfile collector:

	affinity report --config affinity.yaml
	cat /var/lib/node_exporter/affinity.prom

# Available Metrics

Dataset:
  - affinity_load_rows_total{dataset}
  - affinity_load_duration_seconds{dataset}
  - affinity_load_errors_total{dataset,kind}

Recommendations:
  - affinity_recommendations_total{list}
  - affinity_recommendation_list_size{list}
  - affinity_empty_recommendation_lists_total{list}

Report:
  - affinity_report_runs_total{status}
  - affinity_report_duration_seconds
  - affinity_report_subjects
  - affinity_report_last_success_timestamp_seconds

All collectors are registered with the default registry via promauto and are
safe for concurrent use.
*/
package metrics
