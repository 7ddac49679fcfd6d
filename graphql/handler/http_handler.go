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

package handler

import (
	"net/http"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/ast"
	"github.com/botobag/linkboard/graphql/executor"
)

// httpHandler implements a http.Handler which is based on LLHandler to serve GraphQL queries from
// HTTP requests.
type httpHandler struct {
	*LLHandler

	config httpHandlerConfig

	// The handler for presenting errors occurred before execution; It doesn't handle errors occurred
	// during execution (in which ResultPresenter is responsible for.)
	errorPresenter ErrorPresenter

	// The handles for building requests and writing responses; If not given, DefaultRequestBuilder
	// and DefaultResultPresenter are used, respectively.
	requestBuilder  RequestBuilder
	resultPresenter ResultPresenter
}

// httpHandlerConfig contains configuration for a httpHandler.
type httpHandlerConfig struct {
	LLConfig

	// Configuration given to DefaultRequestBuilder; It is not applicable if custom
	// RequestBuilder is used.
	defaultRequestBuilderConfig DefaultRequestBuilderConfig

	errorPresenter  ErrorPresenter
	requestBuilder  RequestBuilder
	resultPresenter ResultPresenter
}

// Option configures httpHandler
type Option func(h *httpHandlerConfig)

// MaxBodySize sets the maximum number of bytes to be read from request body for ParseHTTPRequest
// called by DefaultRequestBuilder.
func MaxBodySize(size uint) Option {
	return func(h *httpHandlerConfig) {
		h.defaultRequestBuilderConfig.HTTPRequestParserOptions.MaxBodySize = size
	}
}

// DefaultFieldResolver sets the resolver to be used when a field doesn't provide one.
func DefaultFieldResolver(resolver graphql.FieldResolver) Option {
	return func(h *httpHandlerConfig) {
		h.defaultRequestBuilderConfig.DefaultFieldResolver = resolver
	}
}

// RootValue sets the value given to resolvers of root fields.
func RootValue(value interface{}) Option {
	return func(h *httpHandlerConfig) {
		h.defaultRequestBuilderConfig.RootValue = value
	}
}

// Middlewares appends middlewares to be applied on requests before execution.
func Middlewares(middlewares ...RequestMiddleware) Option {
	return func(h *httpHandlerConfig) {
		h.Middlewares = append(h.Middlewares, middlewares...)
	}
}

// OverrideErrorPresenter overrides default ErrorPresenter.
func OverrideErrorPresenter(errorPresenter ErrorPresenter) Option {
	return func(h *httpHandlerConfig) {
		h.errorPresenter = errorPresenter
	}
}

// OverrideRequestBuilder overrides default RequestBuilder.
func OverrideRequestBuilder(requestBuilder RequestBuilder) Option {
	return func(h *httpHandlerConfig) {
		h.requestBuilder = requestBuilder
	}
}

// OverrideResultPresenter overrides default ResultPresenter.
func OverrideResultPresenter(resultPresenter ResultPresenter) Option {
	return func(h *httpHandlerConfig) {
		h.resultPresenter = resultPresenter
	}
}

// OverrideDocumentCache overrides default DocumentCache.
func OverrideDocumentCache(cache DocumentCache) Option {
	return func(h *httpHandlerConfig) {
		h.DocumentCache = cache
	}
}

// New creates a net/http.Handler and builds a GraphQL web service to serve queries against the
// schema.
func New(schema *graphql.Schema, opts ...Option) (http.Handler, error) {
	config := httpHandlerConfig{
		LLConfig: LLConfig{
			Schema: schema,
		},

		defaultRequestBuilderConfig: DefaultRequestBuilderConfig{
			HTTPRequestParserOptions: ParseHTTPRequestOptions{
				MaxBodySize: 1 << 20, // 1MB
			},
		},
	}
	for _, opt := range opts {
		opt(&config)
	}

	baseHandler, err := NewLLHandler(&config.LLConfig)
	if err != nil {
		return nil, err
	}

	requestBuilder := config.requestBuilder
	if requestBuilder == nil {
		requestBuilder = DefaultRequestBuilder{
			Config: &config.defaultRequestBuilderConfig,
		}
	}

	resultPresenter := config.resultPresenter
	if resultPresenter == nil {
		resultPresenter = DefaultResultPresenter{}
	}

	errorPresenter := config.errorPresenter
	if errorPresenter == nil {
		errorPresenter = DefaultErrorPresenter{}
	}

	return &httpHandler{
		LLHandler:       baseHandler,
		config:          config,
		errorPresenter:  errorPresenter,
		requestBuilder:  requestBuilder,
		resultPresenter: resultPresenter,
	}, nil
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestBuilder.Build(r, h.LLHandler)
	if err != nil {
		h.errorPresenter.Write(w, err)
		return
	}

	result := h.Serve(req)

	h.resultPresenter.Write(w, r, req, result)
}

// RequestBuilder generates a Request to be served by LLHandler from an HTTP request.
type RequestBuilder interface {
	// Build turns a http.Request r into a Request for h.
	Build(r *http.Request, h *LLHandler) (*Request, error)
}

// DefaultRequestBuilderConfig specifies settings to configure DefaultRequestBuilder.
type DefaultRequestBuilderConfig struct {
	HTTPRequestParserOptions ParseHTTPRequestOptions
	DefaultFieldResolver     graphql.FieldResolver
	RootValue                interface{}
}

// DefaultRequestBuilder implements the default request builder used by HTTP handler to obtain
// a Request object from a http.Request.
type DefaultRequestBuilder struct {
	Config *DefaultRequestBuilderConfig
}

// Build implements RequestBuilder.
func (builder DefaultRequestBuilder) Build(r *http.Request, h *LLHandler) (*Request, error) {
	parsedReq, err := ParseHTTPRequest(r, &builder.Config.HTTPRequestParserOptions)
	if err != nil {
		return nil, err
	}

	// Empty query is an error.
	if len(parsedReq.Query) == 0 {
		return nil, ErrEmptyQuery{
			Request: r,
		}
	}

	document, err := h.Parse(parsedReq.Query)
	if err != nil {
		return nil, &ErrParseQuery{
			Request:       r,
			ParsedRequest: parsedReq,
			Err:           err,
		}
	}

	request := &Request{
		Ctx: r.Context(),
		Params: executor.ExecuteParams{
			Document:             document,
			OperationName:        parsedReq.OperationName,
			VariableValues:       parsedReq.Variables,
			RootValue:            builder.Config.RootValue,
			DefaultFieldResolver: builder.Config.DefaultFieldResolver,
		},
	}

	// GET must not change state.
	if r.Method == http.MethodGet {
		if operation := request.Operation(); operation != nil && operation.Type == ast.OperationTypeMutation {
			return nil, &ErrMutationNotAllowed{
				Request:   r,
				Operation: operation,
			}
		}
	}

	return request, nil
}

// ResultPresenter presents an execution result to a http.ResponseWriter.
type ResultPresenter interface {
	// Write writes an ExecutionResult to w.
	Write(
		w http.ResponseWriter,
		httpRequest *http.Request,
		graphqlRequest *Request,
		result *executor.ExecutionResult)
}

// DefaultResultPresenter implements a ResultPresenter used by HTTP handler to present an
// ExecutionResult. Results without data (the operation couldn't be executed at all) are sent with
// 400 Bad Request; all others with 200 OK even if some fields failed.
type DefaultResultPresenter struct{}

// Write implements ResultPresenter.
func (DefaultResultPresenter) Write(
	w http.ResponseWriter,
	httpRequest *http.Request,
	graphqlRequest *Request,
	result *executor.ExecutionResult) {

	status := http.StatusOK
	if result.Data == nil {
		status = http.StatusBadRequest
	}
	writeResult(w, status, result)
}

func writeResult(w http.ResponseWriter, status int, result *executor.ExecutionResult) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	// The status has been sent; nothing can be done about a client that went away.
	result.MarshalJSONTo(w)
}
