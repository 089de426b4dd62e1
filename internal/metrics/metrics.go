package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the auth counters.
const (
	ResultOK        = "ok"
	ResultInvalid   = "invalid_input"
	ResultDuplicate = "duplicate"
	ResultRejected  = "rejected"
	ResultError     = "error"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	SignupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_signups_total",
			Help: "Signup attempts by result",
		},
		[]string{"result"},
	)

	// LoginsTotal does not split unknown email from wrong password; both are "rejected".
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	TokenVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_token_verifications_total",
			Help: "Bearer token verifications by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, SignupsTotal, LoginsTotal, TokenVerificationsTotal)
}

// RecordRequest records duration and count for an HTTP request. route should be the
// router pattern (e.g. "/users/login"), not the raw path, to bound label cardinality.
func RecordRequest(method, route string, statusCode int, durationSeconds float64) {
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, route, status).Inc()
}

func IncSignup(result string) {
	SignupsTotal.WithLabelValues(result).Inc()
}

func IncLogin(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

func IncTokenVerification(result string) {
	TokenVerificationsTotal.WithLabelValues(result).Inc()
}
