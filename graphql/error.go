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

package graphql

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"unsafe"

	"github.com/botobag/linkboard/graphql/ast"

	"github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "mutation.UpvoteLink".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of Kind
const (
	ErrKindOther             ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindCoercion                         // Failed to coerce input or result values for desired type.
	ErrKindSyntax                           // Represent a syntax error in the query source.
	ErrKindValidation                       // Invalid query or mutation arguments.
	ErrKindExecution                        // Represent an error occurred when executing a query.
	ErrKindInternal                         // Internal error
	ErrKindNotFound                         // A record requested by id does not exist.
	ErrKindDanglingReference                // A stored reference points to a missing record.
	ErrKindCycleDetected                    // The comment forest contains a cycle.
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindCoercion:
		return "coercion error"
	case ErrKindSyntax:
		return "syntax error"
	case ErrKindValidation:
		return "validation error"
	case ErrKindExecution:
		return "execution error"
	case ErrKindInternal:
		return "internal error"
	case ErrKindNotFound:
		return "not found"
	case ErrKindDanglingReference:
		return "dangling reference"
	case ErrKindCycleDetected:
		return "cycle detected"
	}
	return "unknown error kind"
}

// Code returns the machine-readable code reported under "extensions.code" in responses. It is
// empty for kinds that don't report one.
func (k ErrKind) Code() string {
	switch k {
	case ErrKindValidation:
		return "VALIDATION_FAILED"
	case ErrKindNotFound:
		return "NOT_FOUND"
	case ErrKindDanglingReference:
		return "DANGLING_REFERENCE"
	case ErrKindCycleDetected:
		return "CYCLE_DETECTED"
	case ErrKindSyntax:
		return "SYNTAX_ERROR"
	}
	return ""
}

// ErrorExtensions provides an additional entry to an error with key "extensions". It is useful for
// attaching vendor-specific error data (such as error code).
type ErrorExtensions map[string]interface{}

// ErrorLocation contains a line number and a column number to point out the beginning of an
// associated syntax element.
type ErrorLocation struct {
	// Both line and column are positive numbers starting from 1
	Line   uint
	Column uint
}

// ErrorWithLocations indicates an error that contains locations. If "locations" is not given in the
// arguments to NewError, NewError will retrieve one from the underlying error (if provided) that
// implements this interface.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ErrorLocationOfASTNode formats location of an AST node into an ErrorLocation.
func ErrorLocationOfASTNode(node ast.Node) ErrorLocation {
	loc := node.Location()
	return ErrorLocation{
		Line:   loc.Line,
		Column: loc.Column,
	}
}

// ResponsePath is an array of "key" where each key is either a string (indicating the field name)
// or an integer (indicating an index to list.)
type ResponsePath struct {
	// Currently this could only be either int or string.
	keys []interface{}
}

// Empty returns true if the path doesn't contain any path keys.
func (path ResponsePath) Empty() bool {
	return len(path.keys) == 0
}

// Keys returns a copy of the keys in the path.
func (path ResponsePath) Keys() []interface{} {
	return path.Clone().keys
}

// AppendFieldName adds a field name to the end of current path.
func (path *ResponsePath) AppendFieldName(name string) {
	path.keys = append(path.keys, name)
}

// AppendIndex adds a list index to the end of current path.
func (path *ResponsePath) AppendIndex(index int) {
	path.keys = append(path.keys, index)
}

// Clone makes a deep copy of the path.
func (path ResponsePath) Clone() ResponsePath {
	if len(path.keys) == 0 {
		return ResponsePath{}
	}

	keys := make([]interface{}, len(path.keys))
	copy(keys, path.keys)
	return ResponsePath{keys}
}

// String serializes a ResponsePath to more readable format such as "allLinks[0].author".
func (path ResponsePath) String() string {
	var b strings.Builder
	for _, key := range path.keys {
		switch key := key.(type) {
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(key)

		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// responsePathMarshaller implements jsoniter.ValEncoder to encode ResponsePath to JSON.
type responsePathMarshaller struct{}

var _ jsoniter.ValEncoder = responsePathMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (responsePathMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return len((*ResponsePath)(ptr).keys) == 0
}

// Encode implements jsoniter.ValEncoder.
func (responsePathMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	path := (*ResponsePath)(ptr)
	stream.WriteArrayStart()
	for i, key := range path.keys {
		if i > 0 {
			stream.WriteMore()
		}
		switch key := key.(type) {
		case string:
			stream.WriteString(key)
		case int:
			stream.WriteInt(key)
		default:
			stream.Error = fmt.Errorf(`unsupported type "%T" of key in response path`, key)
			return
		}
	}
	stream.WriteArrayEnd()
}

// MarshalJSON serializes path keys to JSON.
func (path *ResponsePath) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(path)
}

// ErrorWithPath indicates an error that contains a path for reporting. If "path" is not given in
// the arguments to NewError, NewError will retrieve the one from the underlying error (if provided)
// that implements this interface.
type ErrorWithPath interface {
	Path() ResponsePath
}

// An Error describes an error found during parse or execution of a query, or while applying a
// mutation. It can be serialized to JSON for including in the response.
//
// Information not given in the arguments to NewError is pulled from the wrapped error, so an
// error can travel up the call chain and be annotated (or rewritten) at each level. Op and Kind are
// printed by Error() which makes the message helpful for programmers; Kind also decides the
// "extensions.code" reported to clients.
type Error struct {
	// Message describes the error for debugging purposes.
	Message string

	// Locations within the query source which correspond to this error
	Locations []ErrorLocation

	// Path of the response field which experienced the error
	Path ResponsePath

	// Extensions contains data to be added to in the error response
	Extensions ErrorExtensions

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

// Error implements Go error interface.
var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Each argument is interpreted by its type:
// ErrorLocation or []ErrorLocation, ResponsePath, ErrorExtensions, Op, ErrKind or an underlying
// error.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg

		case ResponsePath:
			e.Path = arg

		case ErrorExtensions:
			e.Extensions = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		case error:
			e.Err = arg

		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("NewError: bad call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	// Propagate locations, path or extensions from underlying error when one is not provided in
	// argument.
	prev := e.Err
	if prev != nil {
		if len(e.Locations) == 0 {
			switch errWithLocations := prev.(type) {
			case ErrorWithLocations:
				e.Locations = errWithLocations.Locations()
			case *Error:
				if len(errWithLocations.Locations) > 0 {
					e.Locations = make([]ErrorLocation, len(errWithLocations.Locations))
					copy(e.Locations, errWithLocations.Locations)
				}
			}
		}

		if e.Path.Empty() {
			switch errWithPath := prev.(type) {
			case ErrorWithPath:
				e.Path = errWithPath.Path()
			case *Error:
				if !errWithPath.Path.Empty() {
					e.Path = errWithPath.Path.Clone()
				}
			}
		}

		if prev, ok := prev.(*Error); ok {
			if e.Extensions == nil {
				e.Extensions = prev.Extensions
			}
			// Pull kind from underlying error.
			if e.Kind == ErrKindOther {
				e.Kind = prev.Kind
			}
		}
	}

	if code := e.Kind.Code(); len(code) > 0 {
		if _, exists := e.Extensions["code"]; !exists {
			extensions := make(ErrorExtensions, len(e.Extensions)+1)
			for k, v := range e.Extensions {
				extensions[k] = v
			}
			extensions["code"] = code
			e.Extensions = extensions
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// KindOf returns the kind of the first *Error in err's chain that has one, or ErrKindOther.
func KindOf(err error) ErrKind {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		if e.Kind != ErrKindOther {
			return e.Kind
		}
		err = e.Err
	}
	return ErrKindOther
}

// IsKind reports whether err (or an error it wraps) has the given kind.
func IsKind(err error, kind ErrKind) bool {
	return KindOf(err) == kind
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	// If the previous error was also one of ours, suppress duplications so the message won't contain
	// the same kind, location or path twice.
	initialLen := b.Len()

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if e.Locations != nil {
		if nextErr == nil || !reflect.DeepEqual(nextErr.Locations, e.Locations) {
			if b.Len() == initialLen {
				b.WriteString("At ")
			} else {
				b.WriteString(" at ")
			}
			b.WriteString(fmt.Sprintf("%+v", e.Locations))
		}
	}

	if !e.Path.Empty() {
		if nextErr == nil || !reflect.DeepEqual(nextErr.Path, e.Path) {
			if b.Len() == initialLen {
				b.WriteString("For ")
			} else {
				b.WriteString(" for ")
			}
			b.WriteString("response field in the path ")
			b.WriteString(e.Path.String())
		}
	}

	if e.Kind != ErrKindOther {
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			// Indent on new line if we are cascading non-empty Error.
			pad(":\n  ")
			prev.printError(b, e)
		} else {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorMarshaller implements jsoniter.ValEncoder to encode Error to JSON.
type errorMarshaller struct{}

var _ jsoniter.ValEncoder = errorMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder.
func (errorMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	if len(err.Locations) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("locations")
		stream.WriteArrayStart()
		for i := range err.Locations {
			if i > 0 {
				stream.WriteMore()
			}
			location := &err.Locations[i]
			stream.WriteObjectStart()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
			stream.WriteObjectEnd()
		}
		stream.WriteArrayEnd()
	}

	if !err.Path.Empty() {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteVal(&err.Path)
	}

	numExtensions := len(err.Extensions)
	if numExtensions > 0 {
		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteObjectStart()
		for k, v := range err.Extensions {
			stream.WriteObjectField(k)
			stream.WriteVal(v)
			numExtensions--
			if numExtensions > 0 {
				stream.WriteMore()
			}
		}
		stream.WriteObjectEnd()
	}

	stream.WriteObjectEnd()
}

// Errors wraps a list of Error. Intentionally wrapped in a struct instead of a simple alias to
// []*Error to enforce error checks to use errs.HaveOccurred() instead of (errs != nil).
type Errors struct {
	Errors []*Error
}

// ErrorsOf constructs an Errors value from either a list of errors or arguments that can be taken
// by NewError (a message followed by error context). It panics on other arguments.
func ErrorsOf(args ...interface{}) Errors {
	var errs Errors
	for i, arg := range args {
		switch arg := arg.(type) {
		case error:
			errs.Append(arg)

		case string:
			errs.Emplace(arg, args[(i+1):]...)
			return errs

		default:
			panic("Errors.Emplace: bad call")
		}
	}
	return errs
}

// NoErrors constructs an empty Errors.
func NoErrors() Errors {
	return Errors{}
}

// Emplace constructs an Error from arguments and append to the errs.
func (errs *Errors) Emplace(message string, args ...interface{}) {
	errs.Append(NewError(message, args...))
}

// Append appends errors to the end of the Errors. Errors that are not *Error are wrapped.
func (errs *Errors) Append(e ...error) {
	for _, err := range e {
		gqlErr, ok := err.(*Error)
		if !ok {
			gqlErr = NewError(err.Error(), err).(*Error)
		}
		errs.Errors = append(errs.Errors, gqlErr)
	}
}

// HaveOccurred returns true if some errors exist.
func (errs Errors) HaveOccurred() bool {
	return len(errs.Errors) > 0
}

// Error implements Go's error interface so Errors can be returned where an error is expected.
func (errs Errors) Error() string {
	messages := make([]string, len(errs.Errors))
	for i, err := range errs.Errors {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "\n")
}

func init() {
	jsoniter.RegisterTypeEncoder("graphql.ResponsePath", responsePathMarshaller{})
	jsoniter.RegisterTypeEncoder("graphql.Error", errorMarshaller{})
}
