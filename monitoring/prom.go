// Copyright 2025 l3montree UG (haftungsbeschraenkt).
// SPDX-License-Identifier: 	AGPL-3.0-or-later
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var PipelineRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dashcase_pipeline_registrations_total",
	Help: "Number of pipeline result registrations pushed by ci, by pipeline status",
}, []string{"status"})

var PipelineResultsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dashcase_pipeline_results_recorded_total",
	Help: "Number of test case results written by pipeline registrations, by result status",
}, []string{"status"})

var PipelineResultsUnmatched = promauto.NewCounter(prometheus.CounterOpts{
	Name: "dashcase_pipeline_results_unmatched_total",
	Help: "Number of ci results skipped because no test case matched",
})

var PipelineRegistrationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "dashcase_pipeline_registration_duration_seconds",
	Help:    "Duration of a pipeline result registration in seconds",
	Buckets: prometheus.DefBuckets,
})

var NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dashcase_notifications_dispatched_total",
	Help: "Number of notifications handled by the dispatcher, by type and outcome",
}, []string{"type", "status"})

var NotificationDispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "dashcase_notification_dispatch_duration_seconds",
	Help:    "Duration of rendering, sending and logging a notification in seconds",
	Buckets: prometheus.DefBuckets,
})

var PipelineSyncAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "dashcase_pipeline_sync_pipelines_total",
	Help: "Number of pipelines pulled from gitlab by the sync endpoint",
})
