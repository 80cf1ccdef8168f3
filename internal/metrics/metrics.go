/*
 * metrics.go, part of molmod.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package metrics holds the prometheus collectors of the molmod service.
//A nil *Metrics is valid and records nothing, which is what the service
//uses when metrics are disabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rmera/molmod/edit"
)

const namespace = "molmod"

//Results of an edit batch.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

//Metrics is a set of collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	operations    *prometheus.CounterVec
	parseFailures prometheus.Counter
	atoms         prometheus.Histogram
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

//New creates the collectors and registers them, together with the Go
//runtime collector, on a new registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_operations_total",
			Help:      "Edit operations requested, by kind and result of their batch.",
		}, []string{"kind", "result"}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Geometry files that could not be parsed.",
		}),
		atoms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "molecule_atoms",
			Help:      "Number of atoms of the parsed molecules.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.registry.MustRegister(
		m.operations, m.parseFailures, m.atoms, m.requests, m.duration,
		collectors.NewGoCollector(),
	)
	return m
}

//Operations counts the operations of a batch, labelled with the batch result.
func (m *Metrics) Operations(ops []edit.Operation, result string) {
	if m == nil {
		return
	}
	for _, op := range ops {
		m.operations.WithLabelValues(op.Kind.String(), result).Inc()
	}
}

//Parsed records a molecule that was read, or a failure to read one if
//err is not nil.
func (m *Metrics) Parsed(atoms int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.parseFailures.Inc()
		return
	}
	m.atoms.Observe(float64(atoms))
}

//Request records one served HTTP request.
func (m *Metrics) Request(route string, code int, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(took.Seconds())
}

//Handler returns the HTTP handler that exposes the metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

//Registry returns the registry of m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
