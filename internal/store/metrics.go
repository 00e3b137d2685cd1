package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fro_store_actions_total",
			Help: "Total number of store actions dispatched",
		},
		[]string{"action"},
	)

	persistErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fro_store_persist_errors_total",
			Help: "Total number of failed state writes",
		},
		[]string{"key"},
	)

	loadFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fro_store_load_failures_total",
			Help: "Total number of persisted state entries that could not be loaded",
		},
		[]string{"key"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fro_store_active_sessions",
			Help: "Number of sessions with an open store",
		},
	)
)
