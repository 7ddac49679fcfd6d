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
	"encoding/json"
	"fmt"
	"math"

	"github.com/botobag/linkboard/graphql/ast"
)

// Scalar enumerates the leaf types understood by the engine.
type Scalar uint8

// Enumeration of Scalar
const (
	ScalarInvalid Scalar = iota
	ScalarInt
	ScalarString
	ScalarBoolean
)

// ScalarByName returns the Scalar named by name ("Int", "String" or "Boolean").
func ScalarByName(name string) (Scalar, bool) {
	switch name {
	case "Int":
		return ScalarInt, true
	case "String":
		return ScalarString, true
	case "Boolean":
		return ScalarBoolean, true
	}
	return ScalarInvalid, false
}

// Name returns the type name of the scalar.
func (s Scalar) Name() string {
	switch s {
	case ScalarInt:
		return "Int"
	case ScalarString:
		return "String"
	case ScalarBoolean:
		return "Boolean"
	}
	return "<invalid>"
}

func (s Scalar) String() string {
	return s.Name()
}

func newCoercionError(s Scalar, value interface{}) error {
	return NewError(fmt.Sprintf("%s cannot represent value: %s", s.Name(), Inspect(value)),
		ErrKindCoercion)
}

// Ints are 32-bit signed integers on the wire.
func coerceInt(value interface{}) (int, bool) {
	var i int64
	switch value := value.(type) {
	case int:
		i = int64(value)
	case int8:
		i = int64(value)
	case int16:
		i = int64(value)
	case int32:
		i = int64(value)
	case int64:
		i = value
	case uint8:
		i = int64(value)
	case uint16:
		i = int64(value)
	case uint32:
		i = int64(value)
	case float64:
		if value != math.Trunc(value) {
			return 0, false
		}
		i = int64(value)
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			return 0, false
		}
		i = n
	default:
		return 0, false
	}

	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return int(i), true
}

// CoerceResultValue serializes a value returned by a resolver into the scalar's result
// representation.
func (s Scalar) CoerceResultValue(value interface{}) (interface{}, error) {
	switch s {
	case ScalarInt:
		if i, ok := coerceInt(value); ok {
			return i, nil
		}

	case ScalarString:
		switch value := value.(type) {
		case string:
			return value, nil
		case []byte:
			return string(value), nil
		case fmt.Stringer:
			return value.String(), nil
		}

	case ScalarBoolean:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	}

	return nil, newCoercionError(s, value)
}

// CoerceLiteral coerces an argument literal in the query into a Go value of the scalar. Null and
// variables are handled by the caller.
func (s Scalar) CoerceLiteral(value ast.Value) (interface{}, error) {
	switch s {
	case ScalarInt:
		if v, ok := value.(*ast.IntValue); ok {
			if i, ok := coerceInt(v.Value); ok {
				return i, nil
			}
		}

	case ScalarString:
		if v, ok := value.(*ast.StringValue); ok {
			return v.Value, nil
		}

	case ScalarBoolean:
		if v, ok := value.(*ast.BooleanValue); ok {
			return v.Value, nil
		}
	}

	return nil, NewError(fmt.Sprintf("Expected type %s, found %s.", s.Name(), Inspect(value.Interface())),
		ErrorLocationOfASTNode(value), ErrKindCoercion)
}

// CoerceVariableValue coerces a variable value supplied with the request (usually decoded from
// JSON) into a Go value of the scalar.
func (s Scalar) CoerceVariableValue(value interface{}) (interface{}, error) {
	switch s {
	case ScalarInt:
		if i, ok := coerceInt(value); ok {
			return i, nil
		}

	case ScalarString:
		if str, ok := value.(string); ok {
			return str, nil
		}

	case ScalarBoolean:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	}

	return nil, newCoercionError(s, value)
}

// Inspect renders a value for use in error messages.
func Inspect(value interface{}) string {
	switch value := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", value)
	}
	return fmt.Sprintf("%v", value)
}
