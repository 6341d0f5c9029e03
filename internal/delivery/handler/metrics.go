package handler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Metrics tracks request counts and latency for the process.
type Metrics struct {
	totalRequests      uint64
	successfulRequests uint64
	failedRequests     uint64
	activeRequests     int32
	totalLatency       time.Duration
	mutex              sync.RWMutex
	startTime          time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			atomic.AddUint64(&m.totalRequests, 1)
			atomic.AddInt32(&m.activeRequests, 1)
			defer atomic.AddInt32(&m.activeRequests, -1)

			start := time.Now()
			err := next(c)

			if err != nil || c.Response().Status >= 400 {
				atomic.AddUint64(&m.failedRequests, 1)
				return err
			}
			atomic.AddUint64(&m.successfulRequests, 1)
			m.mutex.Lock()
			m.totalLatency += time.Since(start)
			m.mutex.Unlock()
			return nil
		}
	}
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() map[string]interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	uptime := time.Since(m.startTime)
	successful := atomic.LoadUint64(&m.successfulRequests)
	var avgLatency time.Duration
	if successful > 0 {
		avgLatency = time.Duration(int64(m.totalLatency) / int64(successful))
	}
	total := atomic.LoadUint64(&m.totalRequests)

	return map[string]interface{}{
		"totalRequests":      total,
		"successfulRequests": successful,
		"failedRequests":     atomic.LoadUint64(&m.failedRequests),
		"avgLatencyMs":       avgLatency.Milliseconds(),
		"activeRequests":     atomic.LoadInt32(&m.activeRequests),
		"uptimeSeconds":      uptime.Seconds(),
		"requestsPerSecond":  float64(total) / uptime.Seconds(),
	}
}
