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

// Package server serves the link board schema over HTTP.
//
// Routes:
//
//	GET, POST /graphql  GraphQL queries and mutations (mutations only with POST)
//	GET /healthz        liveness
//	GET /metrics        Prometheus metrics
//
// The core is single-writer, so GraphQL requests are executed one at a time.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/handler"
	"github.com/botobag/linkboard/internal/config"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP front of a schema.
type Server struct {
	config  config.Server
	logger  *zap.Logger
	metrics *metrics
	router  chi.Router

	// mu serializes GraphQL requests.
	mu sync.Mutex
}

// New creates a server for schema. A nil logger disables logging.
func New(cfg config.Server, schema *graphql.Schema, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config:  cfg,
		logger:  logger.Named("server"),
		metrics: newMetrics(),
	}

	var cache handler.DocumentCache = handler.NopDocumentCache{}
	if cfg.DocumentCacheSize > 0 {
		lru, err := handler.NewLRUDocumentCache(cfg.DocumentCacheSize)
		if err != nil {
			return nil, err
		}
		cache = lru
	}

	graphqlHandler, err := handler.New(schema,
		handler.MaxBodySize(cfg.MaxBodySize),
		handler.OverrideDocumentCache(cache),
		handler.Middlewares(s.metrics.operationCounter()),
		handler.OverrideResultPresenter(errorCounter{
			metrics: s.metrics,
			next:    handler.DefaultResultPresenter{},
		}),
	)
	if err != nil {
		return nil, err
	}

	s.router = s.routes(graphqlHandler)
	return s, nil
}

func (s *Server) routes(graphqlHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	if len(s.config.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}

	serialized := s.serialize(graphqlHandler)
	r.Get("/graphql", serialized.ServeHTTP)
	r.Post("/graphql", serialized.ServeHTTP)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return r
}

// serialize runs next for one request at a time.
func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// logRequests logs every request and records its metrics once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && len(rctx.RoutePattern()) > 0 {
			route = rctx.RoutePattern()
		}
		s.metrics.observeHTTP(r.Method, route, status, duration.Seconds())

		s.logger.Info("request",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", duration))
	})
}

// Handler returns the router of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until ctx is canceled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return requestContext(ctx)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(l)
	}()
	s.logger.Info("listening", zap.String("addr", l.Addr().String()))

	select {
	case err := <-errCh:
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// requestContext derives the base context of requests from the serve context. Requests in flight
// keep running while Shutdown drains them after ctx is canceled.
func requestContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}
