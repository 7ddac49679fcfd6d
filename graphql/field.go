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
	"context"
	"fmt"
	"sort"
)

// FieldResolver resolves field value during execution.
type FieldResolver interface {
	// Context carries deadlines and cancelation signals.
	//
	// Source is the "source" value. It contains the value that has been resolved by field's enclosing
	// object.
	//
	// Info contains a collection of information about the current execution state.
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// Resolve calls f(ctx, source, info).
func (f FieldResolverFunc) Resolve(
	ctx context.Context,
	source interface{},
	info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

// FieldResolverFunc implements FieldResolver.
var _ FieldResolver = FieldResolverFunc(nil)

// FieldKind is the closed set of shapes a field value can take. The executor picks the completion
// strategy for a field from its kind alone.
type FieldKind uint8

// Enumeration of FieldKind
const (
	// The field yields a leaf value read from the source record.
	FieldKindScalar FieldKind = iota

	// The field yields one object found by following a reference.
	FieldKindSingleReference

	// The field yields objects found by following an explicit list of references, in list order.
	FieldKindReferenceList

	// The field yields objects computed on demand (e.g., by an inverse scan over a collection).
	FieldKindComputedChildren
)

func (k FieldKind) String() string {
	switch k {
	case FieldKindScalar:
		return "Scalar"
	case FieldKindSingleReference:
		return "SingleReference"
	case FieldKindReferenceList:
		return "ReferenceList"
	case FieldKindComputedChildren:
		return "ComputedChildren"
	}
	return "<invalid>"
}

// IsList returns true for kinds that yield a sequence of objects.
func (k FieldKind) IsList() bool {
	return k == FieldKindReferenceList || k == FieldKindComputedChildren
}

// ArgumentConfig defines an argument accepted by a field.
type ArgumentConfig struct {
	// Description of the argument
	Description string

	// Type of the argument
	Type Scalar

	// NonNull requires the argument to be given with a non-null value.
	NonNull bool

	// DefaultValue is used when the argument is omitted. Nil means there is no default value.
	DefaultValue interface{}
}

// ArgumentConfigMap maps argument name to its definition.
type ArgumentConfigMap map[string]ArgumentConfig

// Fields maps field name to its definition.
type Fields map[string]*FieldConfig

// FieldConfig provides definition of a field when defining an object.
type FieldConfig struct {
	// Description of the defining field
	Description string

	// Kind of value yielded by the field
	Kind FieldKind

	// Scalar type of the value; Only for FieldKindScalar.
	Scalar Scalar

	// Object type of the value (or of list elements); Required for all kinds but FieldKindScalar.
	Type *Object

	// NonNull rejects a null value for the field (the list itself for list kinds).
	NonNull bool

	// ElementNonNull rejects null elements in a list field.
	ElementNonNull bool

	// Argument configuration of the field
	Args ArgumentConfigMap

	// Resolver for resolving field value during execution; Nil selects the default resolver given
	// to the executor.
	Resolver FieldResolver
}

// Argument is a defined argument of a Field.
type Argument struct {
	name   string
	config ArgumentConfig
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.config.Description
}

// Type of the argument
func (arg *Argument) Type() Scalar {
	return arg.config.Type
}

// NonNull returns true if the argument must be given.
func (arg *Argument) NonNull() bool {
	return arg.config.NonNull
}

// DefaultValue returns the value used when the argument is omitted.
func (arg *Argument) DefaultValue() interface{} {
	return arg.config.DefaultValue
}

// HasDefaultValue returns true if the argument defines a default value.
func (arg *Argument) HasDefaultValue() bool {
	return arg.config.DefaultValue != nil
}

// TypeString renders the argument type as it appears in queries, e.g., "Int!".
func (arg *Argument) TypeString() string {
	if arg.config.NonNull {
		return arg.config.Type.Name() + "!"
	}
	return arg.config.Type.Name()
}

// Field represents a field in an object.
type Field struct {
	name   string
	config FieldConfig
	args   []*Argument
}

func newField(name string, config *FieldConfig) (*Field, error) {
	if len(name) == 0 {
		return nil, NewError("Must provide name for field.")
	}

	switch config.Kind {
	case FieldKindScalar:
		if config.Scalar == ScalarInvalid {
			return nil, NewError(fmt.Sprintf(`Scalar field "%s" must provide a scalar type.`, name))
		}
	case FieldKindSingleReference, FieldKindReferenceList, FieldKindComputedChildren:
		if config.Type == nil {
			return nil, NewError(fmt.Sprintf(`%s field "%s" must provide an object type.`, config.Kind, name))
		}
	default:
		return nil, NewError(fmt.Sprintf(`Field "%s" has invalid kind %d.`, name, config.Kind))
	}

	var args []*Argument
	if len(config.Args) > 0 {
		args = make([]*Argument, 0, len(config.Args))
		for argName, argConfig := range config.Args {
			if argConfig.Type == ScalarInvalid {
				return nil, NewError(fmt.Sprintf(`Argument "%s" of field "%s" must provide a type.`,
					argName, name))
			}
			args = append(args, &Argument{
				name:   argName,
				config: argConfig,
			})
		}
		sort.Slice(args, func(i, j int) bool {
			return args[i].name < args[j].name
		})
	}

	return &Field{
		name:   name,
		config: *config,
		args:   args,
	}, nil
}

// Name of the field
func (f *Field) Name() string {
	return f.name
}

// Description of the field
func (f *Field) Description() string {
	return f.config.Description
}

// Kind of the field
func (f *Field) Kind() FieldKind {
	return f.config.Kind
}

// Scalar type of a FieldKindScalar field
func (f *Field) Scalar() Scalar {
	return f.config.Scalar
}

// Type returns the object type of a reference field (or of its elements). Nil for scalars.
func (f *Field) Type() *Object {
	return f.config.Type
}

// NonNull returns true if the field rejects null.
func (f *Field) NonNull() bool {
	return f.config.NonNull
}

// ElementNonNull returns true if a list field rejects null elements.
func (f *Field) ElementNonNull() bool {
	return f.config.ElementNonNull
}

// Args returns the arguments of the field sorted by name.
func (f *Field) Args() []*Argument {
	return f.args
}

// Arg finds the argument with the given name.
func (f *Field) Arg(name string) *Argument {
	for _, arg := range f.args {
		if arg.name == name {
			return arg
		}
	}
	return nil
}

// Resolver returns the custom resolver of the field, if any.
func (f *Field) Resolver() FieldResolver {
	return f.config.Resolver
}

// TypeString renders the field type as it appears in a schema, e.g., "[Comment!]!".
func (f *Field) TypeString() string {
	var s string
	if f.config.Kind == FieldKindScalar {
		s = f.config.Scalar.Name()
	} else {
		s = f.config.Type.Name()
		if f.config.Kind.IsList() {
			if f.config.ElementNonNull {
				s += "!"
			}
			s = "[" + s + "]"
		}
	}
	if f.config.NonNull {
		s += "!"
	}
	return s
}

// TypenameFieldName is the name of the meta field available on every object.
const TypenameFieldName = "__typename"

var typenameField = &Field{
	name: TypenameFieldName,
	config: FieldConfig{
		Description: "The name of the current Object type at runtime.",
		Kind:        FieldKindScalar,
		Scalar:      ScalarString,
		NonNull:     true,
		Resolver: FieldResolverFunc(func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
			return info.Object().Name(), nil
		}),
	},
}

// TypenameField returns the "__typename" meta field.
func TypenameField() *Field {
	return typenameField
}
