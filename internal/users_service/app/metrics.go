package app

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aradsms/users_phonebook/internal/users_service/domain"
)

const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "users",
			Subsystem: "app",
			Name:      "operations_total",
			Help:      "Total number of users application operations by outcome.",
		},
		[]string{"operation", "outcome"}, // e.g. operation="create_user", outcome="ok"
	)

	operationDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "users",
			Subsystem: "app",
			Name:      "operation_duration_seconds",
			Help:      "Duration of users application operations.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

func observe(operation string, start time.Time, err error) {
	operationsTotal.WithLabelValues(operation, outcomeOf(err)).Inc()
	operationDurationHist.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
