// Package prometheus records request latency per matched route.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zatxm/hroute"
)

// unmatched labels requests no route answered, so that unknown paths do
// not each create a series.
const unmatched = "unmatched"

type MiddlewareBuilder struct {
	NameSpace string
	Name      string
	SubSystem string
	Help      string
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Build registers a summary labeled by method, route pattern and status
// and returns the middleware observing it in microseconds.
func (m *MiddlewareBuilder) Build() (hroute.Middleware, error) {
	vec := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:      m.Name,
		Help:      m.Help,
		Namespace: m.NameSpace,
		Subsystem: m.SubSystem,
		Objectives: map[float64]float64{
			0.5:   0.05,
			0.9:   0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{"method", "path", "status"})

	reg := m.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(vec); err != nil {
		return nil, err
	}

	return func(next hroute.Handler) hroute.Handler {
		return func(c *hroute.Context) error {
			startTime := time.Now()
			defer func() {
				path := c.HandlerPath()
				if path == "" {
					path = unmatched
				}
				duration := time.Since(startTime).Microseconds()
				vec.WithLabelValues(c.Request().Method(),
					path,
					strconv.Itoa(c.Status())).
					Observe(float64(duration))
			}()

			return next(c)
		}
	}, nil
}
