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
	"regexp"
	"sort"
	"sync"
)

// FieldsThunk returns the fields of an object. It is evaluated the first time the fields are
// needed which allows an object to reference itself (e.g., a comment's replies are comments).
type FieldsThunk func() Fields

// ObjectConfig provides specification to define an Object type.
type ObjectConfig struct {
	// Name of the defining Object
	Name string

	// Description for the Object type
	Description string

	// Fields in the object
	Fields FieldsThunk
}

// Object is a named set of fields. Fields of an Object yield either scalars or other Objects.
type Object struct {
	name        string
	description string
	thunk       FieldsThunk

	once       sync.Once
	fields     map[string]*Field
	fieldNames []string
	err        error
}

var namePattern = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// NewObject defines an Object type from an ObjectConfig. Fields are built on first use; Schema
// creation forces them and reports any error found in field definitions.
func NewObject(config *ObjectConfig) (*Object, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Object.")
	}
	if !namePattern.MatchString(config.Name) {
		return nil, NewError(fmt.Sprintf(`Names must match /^[_a-zA-Z][_a-zA-Z0-9]*$/ but "%s" does not.`,
			config.Name))
	}
	if config.Fields == nil {
		return nil, NewError(fmt.Sprintf("%s fields must be provided.", config.Name))
	}
	return &Object{
		name:        config.Name,
		description: config.Description,
		thunk:       config.Fields,
	}, nil
}

// MustNewObject is a convenience function equivalent to NewObject but panics on failure instead of
// returning an error.
func MustNewObject(config *ObjectConfig) *Object {
	o, err := NewObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

// Name of the object type
func (o *Object) Name() string {
	return o.name
}

// Description of the object type
func (o *Object) Description() string {
	return o.description
}

func (o *Object) String() string {
	return o.name
}

// finalize evaluates the field thunk once and builds the field map.
func (o *Object) finalize() error {
	o.once.Do(func() {
		configs := o.thunk()
		if len(configs) == 0 {
			o.err = NewError(fmt.Sprintf("%s fields must be an object with field names as keys.", o.name))
			return
		}

		fields := make(map[string]*Field, len(configs))
		names := make([]string, 0, len(configs))
		for name, config := range configs {
			if !namePattern.MatchString(name) {
				o.err = NewError(fmt.Sprintf(`%s has invalid field name "%s".`, o.name, name))
				return
			}
			field, err := newField(name, config)
			if err != nil {
				o.err = WrapErrorf(err, "invalid definition of %s.%s", o.name, name)
				return
			}
			fields[name] = field
			names = append(names, name)
		}
		sort.Strings(names)
		o.fields = fields
		o.fieldNames = names
	})
	return o.err
}

// Fields returns the fields of the object keyed by name. It returns nil if the field definitions
// are invalid.
func (o *Object) Fields() map[string]*Field {
	if err := o.finalize(); err != nil {
		return nil
	}
	return o.fields
}

// Field returns the field with the given name, including the "__typename" meta field.
func (o *Object) Field(name string) *Field {
	if name == TypenameFieldName {
		return typenameField
	}
	return o.Fields()[name]
}

// FieldNames returns names of the fields in lexical order.
func (o *Object) FieldNames() []string {
	if err := o.finalize(); err != nil {
		return nil
	}
	return o.fieldNames
}
