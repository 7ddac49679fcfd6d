/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package server

import (
	"net/http"
	"strconv"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/executor"
	"github.com/botobag/linkboard/graphql/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "linkboard"

// metrics are collected in a registry private to the server so servers in tests don't collide.
type metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	operations   *prometheus.CounterVec
	fieldErrors  *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graphql_operations_total",
				Help:      "Total number of GraphQL operations by type",
			},
			[]string{"type"},
		),

		fieldErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graphql_errors_total",
				Help:      "Total number of errors reported in GraphQL responses by code",
			},
			[]string{"code"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.operations,
		m.fieldErrors,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) observeHTTP(method string, route string, status int, seconds float64) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// operationCounter is a handler.RequestMiddleware counting operations that are about to execute.
func (m *metrics) operationCounter() handler.RequestMiddleware {
	return handler.RequestMiddlewareFunc(func(request *handler.Request, next *handler.RequestMiddlewareNext) {
		operationType := "unknown"
		if operation := request.Operation(); operation != nil {
			operationType = operation.Type.String()
		}
		m.operations.WithLabelValues(operationType).Inc()
		next.Next(request)
	})
}

// errorCounter wraps a ResultPresenter to count errors in results by their code.
type errorCounter struct {
	metrics *metrics
	next    handler.ResultPresenter
}

// Write implements handler.ResultPresenter.
func (c errorCounter) Write(
	w http.ResponseWriter,
	httpRequest *http.Request,
	graphqlRequest *handler.Request,
	result *executor.ExecutionResult) {

	for _, err := range result.Errors.Errors {
		c.metrics.fieldErrors.WithLabelValues(errorCode(err)).Inc()
	}
	c.next.Write(w, httpRequest, graphqlRequest, result)
}

func errorCode(err *graphql.Error) string {
	if code, ok := err.Extensions["code"].(string); ok {
		return code
	}
	return "INTERNAL"
}
