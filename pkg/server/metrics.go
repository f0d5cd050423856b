// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute labels requests that reached a handler without a mux pattern.
const unmatchedRoute = "unmatched"

var (
	// Labelled by route pattern rather than raw path to keep cardinality
	// bounded by the registered handlers.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoststatus_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		},
		[]string{"route", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoststatus_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"route"},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hoststatus_http_rate_limit_rejects_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hoststatus_http_panic_recoveries_total",
			Help: "Panics recovered in HTTP handlers",
		},
	)

	// readyGauge mirrors /ready so alerting does not need to scrape it.
	readyGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hoststatus_ready",
			Help: "1 once the reporter has published a snapshot, 0 otherwise",
		},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hoststatus_build_info",
			Help: "Always 1, labelled with the reporter name and version",
		},
		[]string{"name", "version"},
	)
)

func recordBuildInfo(name, version string) {
	buildInfo.WithLabelValues(name, version).Set(1)
}

func recordReady(ready bool) {
	if ready {
		readyGauge.Set(1)
		return
	}
	readyGauge.Set(0)
}

func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	return r.Pattern
}

// metricsMiddleware records request count and latency per route.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		route := routeOf(r)
		httpRequestsTotal.WithLabelValues(route, strconv.Itoa(rw.Status())).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
