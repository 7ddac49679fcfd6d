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
	"github.com/botobag/linkboard/graphql/ast"

	"github.com/json-iterator/go"
)

// An ArgumentValues contains argument values given to a field. It is immutable after it is created.
//
// A value explicitly given as null is present (Lookup returns ok) with a nil value; an omitted
// argument without a default value is absent. Resolvers rely on the distinction to let callers
// override a natural reference target.
type ArgumentValues struct {
	values map[string]interface{}
}

var noArgumentValues = ArgumentValues{
	// Allocate an non-nil map to eliminate null-check for Lookup.
	values: map[string]interface{}{},
}

// NoArgumentValues represents an empty argument value set.
func NoArgumentValues() ArgumentValues {
	return noArgumentValues
}

// NewArgumentValues creates an ArgumentValues from given values.
func NewArgumentValues(values map[string]interface{}) ArgumentValues {
	if len(values) == 0 {
		return noArgumentValues
	}
	return ArgumentValues{values}
}

// Lookup returns argument value for the given name. The second value (ok) is true if the argument
// was given (possibly as null) or has a default value.
func (args ArgumentValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = args.values[name]
	return
}

// Get returns argument value for the given name. It returns nil if no such argument was found.
func (args ArgumentValues) Get(name string) interface{} {
	return args.values[name]
}

// Len returns the number of present arguments.
func (args ArgumentValues) Len() int {
	return len(args.values)
}

// Map returns a copy of the argument values as a map.
func (args ArgumentValues) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(args.values))
	for k, v := range args.values {
		m[k] = v
	}
	return m
}

// MarshalJSON implements json.Marshaler to serialize the internal map in ArgumentValues into JSON
// with sorted keys.
// This is primarily used by tests for verifying argument values.
func (args ArgumentValues) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(args.values)
}

// VariableValues contains coerced values for variables defined by the operation. It is immutable
// after it is created.
type VariableValues struct {
	values map[string]interface{}
}

var noVariableValues = VariableValues{
	values: map[string]interface{}{},
}

// NoVariableValues represents an empty variable value set.
func NoVariableValues() VariableValues {
	return noVariableValues
}

// NewVariableValues creates a VariableValues from given values.
func NewVariableValues(values map[string]interface{}) VariableValues {
	if len(values) == 0 {
		return noVariableValues
	}
	return VariableValues{values}
}

// Lookup returns the value of the variable with the given name. The second value (ok) is false if
// the variable wasn't provided.
func (vars VariableValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = vars.values[name]
	return
}

// Get returns the value of the variable with the given name or nil.
func (vars VariableValues) Get(name string) interface{} {
	return vars.values[name]
}

// ResolveInfo exposes a collection of information about execution state for resolvers.
type ResolveInfo interface {
	// Schema of the type system that is currently executing.
	Schema() *Schema

	// Operation being executed.
	Operation() *ast.OperationDefinition

	// Object is the type that contains the field being resolved.
	Object() *Object

	// Field being resolved.
	Field() *Field

	// FieldDefinitions are the nodes in the query requesting the field. More than one if the same
	// response key is requested multiple times.
	FieldDefinitions() []*ast.Field

	// Args are the coerced argument values of the field.
	Args() ArgumentValues

	// Path in the response to this field.
	Path() ResponsePath

	// VariableValues of the operation.
	VariableValues() VariableValues

	// AppContext is the value given to the executor for use by resolvers.
	AppContext() interface{}
}
