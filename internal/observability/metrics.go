package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "barangay_portal_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangay_portal_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangay_portal_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// StatusTransitions tracks incident report and appointment status changes
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangay_portal_status_transitions_total",
			Help: "Number of status updates applied to records",
		},
		[]string{"entity", "status"},
	)

	// EmergencyReports tracks incident reports flagged as emergencies
	EmergencyReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barangay_portal_emergency_reports_total",
			Help: "Number of incident reports submitted with the emergency flag",
		},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barangay_portal_active_connections",
			Help: "Number of active connections",
		},
	)
)
