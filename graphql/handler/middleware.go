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
	"fmt"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/executor"
)

// RequestMiddleware inspects or modifies a Request before it is executed. A middleware either
// passes the request on with next.Next or answers it with next.NextError or next.NextResult.
type RequestMiddleware interface {
	Apply(request *Request, next *RequestMiddlewareNext)
}

// RequestMiddlewareFunc is an adapter to allow the use of ordinary functions as RequestMiddleware.
type RequestMiddlewareFunc func(request *Request, next *RequestMiddlewareNext)

// Apply calls f(request, next).
func (f RequestMiddlewareFunc) Apply(request *Request, next *RequestMiddlewareNext) {
	f(request, next)
}

type chainState uint8

const (
	chainPending chainState = iota
	chainPassed
	chainAnswered
)

// RequestMiddlewareNext lets a RequestMiddleware decide what happens after it. Exactly one of its
// methods must be called, once, before the middleware returns.
type RequestMiddlewareNext struct {
	middlewares []RequestMiddleware
	pos         int

	state  chainState
	result *executor.ExecutionResult
}

// run applies the middlewares to request. It returns the result given by a middleware that
// answered the request, or nil if the request went through all of them.
func (next *RequestMiddlewareNext) run(request *Request) *executor.ExecutionResult {
	next.Next(request)
	if next.state == chainAnswered {
		return next.result
	}
	return nil
}

// Next passes request to the next middleware in the chain.
func (next *RequestMiddlewareNext) Next(request *Request) {
	switch next.state {
	case chainPassed:
		panic("calling Next multiple times is not allowed")
	case chainAnswered:
		panic("cannot call Next after one of NextError or NextResult is called")
	}

	if next.pos == len(next.middlewares) {
		next.state = chainPassed
		return
	}

	middleware := next.middlewares[next.pos]
	next.pos++
	middleware.Apply(request, next)

	if next.state == chainPending {
		panic(fmt.Errorf(`"%T" must end with one of Next, NextError or NextResult on return`, middleware))
	}
}

// NextError answers the request with err and skips the rest of the chain.
func (next *RequestMiddlewareNext) NextError(err error) {
	next.NextResult(&executor.ExecutionResult{
		Errors: graphql.ErrorsOf(err),
	})
}

// NextResult answers the request with result and skips the rest of the chain.
func (next *RequestMiddlewareNext) NextResult(result *executor.ExecutionResult) {
	switch next.state {
	case chainPassed:
		panic("calling NextError or NextResult is not allowed on returning from Next")
	case chainAnswered:
		panic("calling NextError or NextResult multiple times is not allowed")
	}
	next.state = chainAnswered
	next.result = result
}
