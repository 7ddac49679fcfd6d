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
	"errors"
	"net/http"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/ast"
	"github.com/botobag/linkboard/graphql/executor"
)

// ErrorPresenter presents an error to a http.ResponseWriter.
type ErrorPresenter interface {
	// Write sends the given error to w.
	Write(w http.ResponseWriter, err error)
}

// Errors by DefaultRequestBuilder.Build

// ErrEmptyQuery describes an error when an empty query is not allowed.
type ErrEmptyQuery struct {
	Request *http.Request
}

// Error implements Go's error interface.
func (err ErrEmptyQuery) Error() string {
	return "Must provide query string."
}

// ErrParseQuery describes an invalid GraphQL query document that failed parsing.
type ErrParseQuery struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	Err           error
}

// Error implements Go's error interface.
func (err *ErrParseQuery) Error() string {
	return "invalid query: " + err.Err.Error()
}

// Unwrap returns the syntax error.
func (err *ErrParseQuery) Unwrap() error {
	return err.Err
}

// ErrMutationNotAllowed is returned when a mutation is requested with GET.
type ErrMutationNotAllowed struct {
	Request   *http.Request
	Operation *ast.OperationDefinition
}

// Error implements Go's error interface.
func (err *ErrMutationNotAllowed) Error() string {
	return "Can only perform a mutation operation from a POST request."
}

// DefaultErrorPresenter implements an ErrorPresenter which is default used by HTTP handler when no
// error presenter is provided. Errors are sent in the "errors" of a response without data.
type DefaultErrorPresenter struct{}

// Write implements ErrorPresenter.
func (DefaultErrorPresenter) Write(w http.ResponseWriter, err error) {
	var (
		status = http.StatusBadRequest
		cause  = err
	)

	var (
		parseErr    *ErrParseQuery
		mutationErr *ErrMutationNotAllowed
		requestErr  *HTTPRequestParseError
	)
	switch {
	case errors.As(err, &parseErr):
		// Present the syntax error itself which has locations.
		cause = parseErr.Err

	case errors.As(err, &mutationErr):
		status = http.StatusMethodNotAllowed
		w.Header().Set("Allow", http.MethodPost)
		cause = graphql.NewError(err.Error(), graphql.ErrorLocationOfASTNode(mutationErr.Operation),
			graphql.ErrKindValidation)

	case errors.As(err, &requestErr):
		if requestErr.Err == errRequestBodyTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
	}

	writeResult(w, status, &executor.ExecutionResult{
		Errors: graphql.ErrorsOf(cause),
	})
}
