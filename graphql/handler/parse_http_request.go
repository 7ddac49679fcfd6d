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
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/botobag/linkboard/internal/unsafe"

	"github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Media types accepted in POST bodies.
const (
	mediaTypeJSON    = "application/json"
	mediaTypeGraphQL = "application/graphql"
	mediaTypeForm    = "application/x-www-form-urlencoded"
)

// ParseHTTPRequestOptions provides settings to ParseHTTPRequest.
type ParseHTTPRequestOptions struct {
	// Maximum size in bytes to be read when parsing a GraphQL query from HTTP request body.
	MaxBodySize uint
}

// HTTPRequest contains result values of ParseHTTPRequest.
type HTTPRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HTTPRequestParseError is returned by ParseHTTPRequest when parsing failed.
type HTTPRequestParseError struct {
	Request *http.Request
	Options *ParseHTTPRequestOptions
	Err     error
}

// Error implements Go's error interface.
func (err *HTTPRequestParseError) Error() string {
	return err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *HTTPRequestParseError) Unwrap() error {
	return err.Err
}

var errRequestBodyTooLarge = errors.New("request body is too large")

// ParseHTTPRequest extracts the query, the operation name and the variables from r.
//
// GET requests carry them as URL parameters. POST requests carry them in the body, encoded
// according to Content-Type:
//
//	application/json                   {"query": ..., "operationName": ..., "variables": {...}}
//	application/x-www-form-urlencoded  query=...&operationName=...&variables=...
//	application/graphql                the body is the query
//
// A POST without Content-Type is decoded as JSON. Other methods and media types give an empty
// HTTPRequest which the handler reports as a missing query.
func ParseHTTPRequest(r *http.Request, options *ParseHTTPRequestOptions) (*HTTPRequest, error) {
	p := requestParser{r, options}
	switch r.Method {
	case http.MethodGet:
		return p.parseURL()
	case http.MethodPost:
		return p.parseBody()
	}
	return &HTTPRequest{}, nil
}

type requestParser struct {
	r       *http.Request
	options *ParseHTTPRequestOptions
}

func (p requestParser) fail(err error) (*HTTPRequest, error) {
	return nil, &HTTPRequestParseError{
		Request: p.r,
		Options: p.options,
		Err:     err,
	}
}

func (p requestParser) parseURL() (*HTTPRequest, error) {
	// Use the form if someone up the chain has parsed it already.
	if p.r.Form != nil {
		return p.parseValues(p.r.Form)
	}
	values, err := url.ParseQuery(p.r.URL.RawQuery)
	if err != nil {
		return p.fail(err)
	}
	return p.parseValues(values)
}

func (p requestParser) parseBody() (*HTTPRequest, error) {
	// Malformed media types are treated as if none was given.
	mediaType, _, _ := mime.ParseMediaType(p.r.Header.Get("Content-Type"))

	if mediaType == mediaTypeForm && p.r.Form != nil {
		return p.parseValues(p.r.Form)
	}

	switch mediaType {
	case "", mediaTypeJSON, mediaTypeGraphQL, mediaTypeForm:
	default:
		return &HTTPRequest{}, nil
	}

	body, err := p.readBody()
	if err != nil {
		return p.fail(err)
	}

	switch mediaType {
	case mediaTypeGraphQL:
		// body is never modified after this point.
		return &HTTPRequest{Query: unsafe.String(body)}, nil

	case mediaTypeForm:
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return p.fail(err)
		}
		return p.parseValues(values)
	}

	var req HTTPRequest
	if err := decodeJSON(body, &req); err != nil {
		return p.fail(fmt.Errorf("POST body sent invalid JSON: %s", err))
	}
	return &req, nil
}

// readBody reads the whole body, failing with errRequestBodyTooLarge if it exceeds MaxBodySize.
func (p requestParser) readBody() ([]byte, error) {
	limit := int64(p.options.MaxBodySize)
	body, err := io.ReadAll(io.LimitReader(p.r.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, errRequestBodyTooLarge
	}
	return body, nil
}

// parseValues reads the request from URL-encoded values. Each parameter may appear at most once.
func (p requestParser) parseValues(values url.Values) (*HTTPRequest, error) {
	var (
		req       HTTPRequest
		variables string
	)

	for _, param := range []struct {
		key string
		dst *string
	}{
		{"query", &req.Query},
		{"operationName", &req.OperationName},
		{"variables", &variables},
	} {
		switch v := values[param.key]; len(v) {
		case 0:
		case 1:
			*param.dst = v[0]
		default:
			return p.fail(fmt.Errorf(`multiple values are provided to "%s", but only one expected`, param.key))
		}
	}

	if len(variables) > 0 {
		if err := decodeJSON([]byte(variables), &req.Variables); err != nil {
			return p.fail(fmt.Errorf("variables are invalid JSON: %s", err))
		}
	}

	return &req, nil
}

// decodeJSON decodes data into v. Numbers are kept as json.Number so integers larger than what a
// float64 can represent exactly are rejected by Int coercion instead of being rounded.
func decodeJSON(data []byte, v interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(v)
}
