// Package metrics instruments the HTTP requests sent to Onionoo instances.
package metrics

//
// Metrics definitions
//

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ooni/onionoo/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry contains the metrics defined by this package.
var Registry = prometheus.NewRegistry()

// summaryObjectives returns the objectives of the duration summary.
func summaryObjectives() map[float64]float64 {
	return map[float64]float64{
		0.5:  0.010,
		0.9:  0.010,
		0.99: 0.001,
	}
}

var (
	// RequestsCount counts the requests by host and by status code, where
	// the code is "error" when no response was received.
	RequestsCount = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "onionoo_requests_count",
		Help: "Total number of requests sent to Onionoo instances",
	}, []string{"host", "code"})

	// RequestsInflight gauges the number of requests currently inflight.
	RequestsInflight = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "onionoo_requests_inflight_gauge",
		Help: "The number of requests currently inflight",
	})

	// RequestDurationSeconds summarizes the time to receive the response headers.
	RequestDurationSeconds = promauto.With(Registry).NewSummary(prometheus.SummaryOpts{
		Name:       "onionoo_request_duration_seconds",
		Help:       "Summarizes the time to receive the response headers (in seconds)",
		Objectives: summaryObjectives(),
	})
)

// HTTPClient is a [model.HTTPClient] updating the metrics of this package.
type HTTPClient struct {
	Client model.HTTPClient
}

var _ model.HTTPClient = &HTTPClient{}

// Do implements model.HTTPClient.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	RequestsInflight.Inc()
	defer RequestsInflight.Dec()
	t0 := time.Now()
	resp, err := c.Client.Do(req)
	RequestDurationSeconds.Observe(time.Since(t0).Seconds())
	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	RequestsCount.WithLabelValues(req.URL.Host, code).Inc()
	return resp, err
}

// CloseIdleConnections implements model.HTTPClient.
func (c *HTTPClient) CloseIdleConnections() {
	c.Client.CloseIdleConnections()
}

// WriteToTextfile writes the metrics to filename using the text exposition format.
func WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, Registry)
}
