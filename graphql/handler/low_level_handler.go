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
	"context"
	"errors"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/ast"
	"github.com/botobag/linkboard/graphql/executor"
	"github.com/botobag/linkboard/graphql/parser"
)

// LLHandler serves requests against a schema independently of the transport. The HTTP handler is
// built on it.
type LLHandler struct {
	// Schema served by this handler
	schema *graphql.Schema

	// Cache for the parsed documents; Nil when caching is disabled.
	cache DocumentCache

	// Middlewares to be applied before executing a Request
	middlewares []RequestMiddleware
}

// LLConfig contains configuration to set up a LLHandler.
type LLConfig struct {
	// Schema to be working on
	Schema *graphql.Schema

	// DocumentCache caches documents parsed from queries to save parsing efforts. A LRU cache with
	// 512 entries is used if not given. Set to NopDocumentCache to disable the cache.
	DocumentCache DocumentCache

	// Middlewares to be applied before executing a Request
	Middlewares []RequestMiddleware
}

var errMissingSchema = errors.New("linkboard/handler: must specify a schema")

// NewLLHandler creates a LLHandler from given configuration.
func NewLLHandler(config *LLConfig) (*LLHandler, error) {
	schema := config.Schema
	if schema == nil {
		return nil, errMissingSchema
	}

	cache := config.DocumentCache
	if cache == nil {
		var err error
		cache, err = NewLRUDocumentCache(512)
		if err != nil {
			return nil, err
		}
	} else if _, isNop := cache.(NopDocumentCache); isNop {
		cache = nil
	}

	return &LLHandler{
		schema:      schema,
		cache:       cache,
		middlewares: config.Middlewares,
	}, nil
}

// Schema returns handler.schema.
func (handler *LLHandler) Schema() *graphql.Schema {
	return handler.schema
}

// DocumentCache returns handler.cache.
func (handler *LLHandler) DocumentCache() DocumentCache {
	return handler.cache
}

// Parse returns the document for query, from the cache if it has been parsed before.
func (handler *LLHandler) Parse(query string) (*ast.Document, error) {
	cache := handler.cache
	if cache != nil {
		if document, ok := cache.Get(query); ok {
			return document, nil
		}
	}

	document, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		cache.Add(query, document)
	}
	return document, nil
}

// Request contains parameter required by Serve.
type Request struct {
	Ctx context.Context

	// Params to execute; Schema is filled by Serve.
	Params executor.ExecuteParams
}

// Operation returns the operation in the document that will be executed, or nil if there's no
// such operation (in which case the executor reports the error).
func (request *Request) Operation() *ast.OperationDefinition {
	document := request.Params.Document
	if document == nil {
		return nil
	}

	name := request.Params.OperationName
	if len(name) == 0 {
		if len(document.Operations) == 1 {
			return document.Operations[0]
		}
		return nil
	}

	for _, operation := range document.Operations {
		if operation.Name == name {
			return operation
		}
	}
	return nil
}

// Serve runs request through the middlewares and executes it unless one of them produced a result.
// request must not be nil.
func (handler *LLHandler) Serve(request *Request) *executor.ExecutionResult {
	if len(handler.middlewares) > 0 {
		chain := RequestMiddlewareNext{middlewares: handler.middlewares}
		if result := chain.run(request); result != nil {
			return result
		}
	}

	params := request.Params
	params.Schema = handler.schema
	return executor.Execute(request.Ctx, params)
}
