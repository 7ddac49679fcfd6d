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

// Package ast defines the query shape consumed by the executor: operations made of selection sets
// whose fields carry arguments and nested selection sets. Nodes keep the position in the source
// they were parsed from so errors can point back into the query.
package ast

// Location is a 1-based line and column in the query source.
type Location struct {
	Line   uint
	Column uint
}

// Node is implemented by every element in the query shape.
type Node interface {
	// Location of the first token of the node in the query source; Zero value if the node was not
	// built from source text.
	Location() Location
}

// OperationType is the kind of an operation.
type OperationType uint8

// Enumeration of OperationType
const (
	OperationTypeQuery OperationType = iota
	OperationTypeMutation
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeQuery:
		return "query"
	case OperationTypeMutation:
		return "mutation"
	}
	return "unknown"
}

// Document is a list of operations. Fragments are not supported.
type Document struct {
	Operations []*OperationDefinition
}

// OperationDefinition is a query or a mutation with an optional name and variable definitions.
type OperationDefinition struct {
	Loc                 Location
	Type                OperationType
	Name                string
	VariableDefinitions []*VariableDefinition
	SelectionSet        SelectionSet
}

// Location implements Node.
func (op *OperationDefinition) Location() Location {
	return op.Loc
}

// TypeRef names the type of a variable; Only named scalar types with an optional non-null marker
// are accepted (e.g., "Int!").
type TypeRef struct {
	Name    string
	NonNull bool
}

func (t TypeRef) String() string {
	if t.NonNull {
		return t.Name + "!"
	}
	return t.Name
}

// VariableDefinition declares a variable of an operation.
type VariableDefinition struct {
	Loc          Location
	Name         string
	Type         TypeRef
	DefaultValue Value
}

// Location implements Node.
func (def *VariableDefinition) Location() Location {
	return def.Loc
}

// SelectionSet is the ordered list of fields requested on an object.
type SelectionSet []*Field

// Field requests a field of an object, optionally under an alias, with arguments and a nested
// selection set for fields that yield objects.
type Field struct {
	Loc          Location
	Alias        string
	Name         string
	Arguments    []*Argument
	SelectionSet SelectionSet
}

// Location implements Node.
func (field *Field) Location() Location {
	return field.Loc
}

// ResponseKey is the alias if defined, otherwise the field name.
func (field *Field) ResponseKey() string {
	if len(field.Alias) > 0 {
		return field.Alias
	}
	return field.Name
}

// Argument returns the argument with the given name or nil if the field doesn't have one.
func (field *Field) Argument(name string) *Argument {
	for _, arg := range field.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

// Argument is a name-value pair given to a field.
type Argument struct {
	Loc   Location
	Name  string
	Value Value
}

// Location implements Node.
func (arg *Argument) Location() Location {
	return arg.Loc
}

// Value is an argument or default value literal.
type Value interface {
	Node

	// Interface returns the Go value of the literal: int64, string, bool or nil. Variables return
	// nil; use Variable.Name to find their value.
	Interface() interface{}
}

// IntValue is an integer literal.
type IntValue struct {
	Loc   Location
	Value int64
}

// StringValue is a quoted string literal.
type StringValue struct {
	Loc   Location
	Value string
}

// BooleanValue is true or false.
type BooleanValue struct {
	Loc   Location
	Value bool
}

// NullValue is the null literal.
type NullValue struct {
	Loc Location
}

// Variable references a variable ("$name") declared by the operation.
type Variable struct {
	Loc  Location
	Name string
}

var (
	_ Value = (*IntValue)(nil)
	_ Value = (*StringValue)(nil)
	_ Value = (*BooleanValue)(nil)
	_ Value = (*NullValue)(nil)
	_ Value = (*Variable)(nil)
)

// Location implements Node.
func (v *IntValue) Location() Location { return v.Loc }

// Location implements Node.
func (v *StringValue) Location() Location { return v.Loc }

// Location implements Node.
func (v *BooleanValue) Location() Location { return v.Loc }

// Location implements Node.
func (v *NullValue) Location() Location { return v.Loc }

// Location implements Node.
func (v *Variable) Location() Location { return v.Loc }

// Interface implements Value.
func (v *IntValue) Interface() interface{} { return v.Value }

// Interface implements Value.
func (v *StringValue) Interface() interface{} { return v.Value }

// Interface implements Value.
func (v *BooleanValue) Interface() interface{} { return v.Value }

// Interface implements Value.
func (v *NullValue) Interface() interface{} { return nil }

// Interface implements Value.
func (v *Variable) Interface() interface{} { return nil }
