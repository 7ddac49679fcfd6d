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
	"fmt"
	"sort"

	"github.com/botobag/linkboard/graphql/ast"
)

// SchemaConfig contains configuration to define a Schema.
type SchemaConfig struct {
	// Query is the root type for query operations; It is required.
	Query *Object

	// Mutation is the root type for mutation operations; Nil if the schema doesn't accept mutations.
	Mutation *Object
}

// Schema describes the root types of operations and all objects reachable from them.
type Schema struct {
	query    *Object
	mutation *Object
	typeMap  map[string]*Object
}

// NewSchema builds a schema. It evaluates field thunks of every reachable object and rejects
// invalid field definitions and distinct objects sharing a name.
func NewSchema(config *SchemaConfig) (*Schema, error) {
	if config.Query == nil {
		return nil, NewError("Schema query must be Object Type but got: nil.")
	}

	schema := &Schema{
		query:    config.Query,
		mutation: config.Mutation,
		typeMap:  map[string]*Object{},
	}

	queue := []*Object{config.Query}
	if config.Mutation != nil {
		queue = append(queue, config.Mutation)
	}

	for len(queue) > 0 {
		var object *Object
		object, queue = queue[0], queue[1:]

		if existing, exists := schema.typeMap[object.Name()]; exists {
			if existing != object {
				return nil, NewError(fmt.Sprintf("Schema must contain unique named types but contains "+
					`multiple types named "%s".`, object.Name()))
			}
			continue
		}
		schema.typeMap[object.Name()] = object

		if err := object.finalize(); err != nil {
			return nil, err
		}

		for _, name := range object.FieldNames() {
			if t := object.fields[name].Type(); t != nil {
				queue = append(queue, t)
			}
		}
	}

	return schema, nil
}

// MustNewSchema is a convenience function equivalent to NewSchema but panics on failure instead
// of returning an error.
func MustNewSchema(config *SchemaConfig) *Schema {
	schema, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return schema
}

// Query returns the root type for query operations.
func (schema *Schema) Query() *Object {
	return schema.query
}

// Mutation returns the root type for mutation operations or nil.
func (schema *Schema) Mutation() *Object {
	return schema.mutation
}

// RootType returns the root object for the given operation type or nil if the schema doesn't
// support it.
func (schema *Schema) RootType(operationType ast.OperationType) *Object {
	switch operationType {
	case ast.OperationTypeQuery:
		return schema.query
	case ast.OperationTypeMutation:
		return schema.mutation
	}
	return nil
}

// TypeNames returns the names of all objects in the schema in lexical order.
func (schema *Schema) TypeNames() []string {
	names := make([]string, 0, len(schema.typeMap))
	for name := range schema.typeMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Type finds the object with the given name.
func (schema *Schema) Type(name string) *Object {
	return schema.typeMap[name]
}
