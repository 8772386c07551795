package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// AuthAttempts counts authentication attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_auth_attempts_total",
		Help: "Total number of authentication attempts by outcome",
	}, []string{"outcome"})

	// DomainOperations counts social graph and content mutations by operation and result.
	DomainOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_domain_operations_total",
		Help: "Total number of domain mutations by operation and result",
	}, []string{"operation", "result"})

	// CacheLookups counts cache-aside lookups by result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_cache_lookups_total",
		Help: "Total number of cache lookups by result",
	}, []string{"result"})
)

// RecordOperation increments DomainOperations with "ok" or "error".
func RecordOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	DomainOperations.WithLabelValues(operation, result).Inc()
}
