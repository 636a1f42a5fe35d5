package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. Incremented from
// the cache package's client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "askboard_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

// CounterIncrements counts atomic counter bumps applied to questions,
// labeled by counter field. Useful for spotting reconciliation drift windows.
var CounterIncrements = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "askboard_counter_increments_total",
	Help: "Total number of atomic question counter increments",
}, []string{"counter"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-level Prometheus middleware handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
