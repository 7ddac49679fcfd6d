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

package executor

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/botobag/linkboard/graphql"
)

// DefaultFieldResolverOption specifies an option to configure field resolver instance created by
// NewDefaultFieldResolver.
type DefaultFieldResolverOption func(*defaultFieldResolverImpl)

// defaultFieldResolverImpl is used when no resolver is given to a field. It resolves the field
// value to the value of the struct field (or map entry) in source matching the field name.
type defaultFieldResolverImpl struct {
	UnresolvedAsError bool   // default: true
	FieldTagName      string // default: "graphql"
}

// NewDefaultFieldResolver configures a field resolver which is useful as "default" resolver for
// fields without resolver.
//
// When source value is a struct (or a pointer to one), the resolver takes the value of the struct
// field whose tag (see FieldTagName) or name matches the field name. Matching on name is case
// insensitive so "score" finds Score. When source is a map with string keys, the entry of the field
// name is returned.
func NewDefaultFieldResolver(opts ...DefaultFieldResolverOption) graphql.FieldResolver {
	resolver := &defaultFieldResolverImpl{
		UnresolvedAsError: true,
		FieldTagName:      "graphql",
	}

	for _, opt := range opts {
		opt(resolver)
	}

	return resolver
}

// UnresolvedAsError specifies whether error should be returned for fields that cannot be resolved
// by the resolver. When disabled, such fields resolve to nil. The feature is enabled by default.
func UnresolvedAsError(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolverImpl) {
		resolver.UnresolvedAsError = enabled
	}
}

// FieldTagName specifies the struct field tag that is used to specify custom name in source object
// field for matching targeting field. For example,
//
//	type Link struct {
//		URL string `graphql:"url"`
//	}
//
// The tag can be disabled by FieldTagName("").
func FieldTagName(name string) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolverImpl) {
		resolver.FieldTagName = name
	}
}

// Resolve implements graphql.FieldResolver.
func (resolver *defaultFieldResolverImpl) Resolve(
	ctx context.Context,
	source interface{},
	info graphql.ResolveInfo) (interface{}, error) {

	value := reflect.ValueOf(source)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		return resolver.resolveFromStruct(value, info)

	case reflect.Map:
		return resolver.resolveFromMap(value, info)
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *defaultFieldResolverImpl) unresolvedError(info graphql.ResolveInfo) error {
	if !resolver.UnresolvedAsError {
		return nil
	}

	return graphql.NewError(fmt.Sprintf(`default resolver cannot resolve value for "%s.%s"`,
		info.Object().Name(), info.Field().Name()), graphql.ErrKindInternal)
}

func (resolver *defaultFieldResolverImpl) resolveFromStruct(
	value reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	var (
		fieldName = info.Field().Name()
		valueType = value.Type()
		// Index of the struct field whose name matches; Tag matches take precedence.
		nameMatch = -1
	)

	for i := 0; i < valueType.NumField(); i++ {
		structField := valueType.Field(i)
		if len(structField.PkgPath) > 0 {
			// Unexported
			continue
		}

		if len(resolver.FieldTagName) > 0 {
			if tag, ok := structField.Tag.Lookup(resolver.FieldTagName); ok {
				tagName := strings.Split(tag, ",")[0]
				if tagName == "-" {
					continue
				}
				if tagName == fieldName {
					return value.Field(i).Interface(), nil
				}
			}
		}

		if nameMatch < 0 && strings.EqualFold(structField.Name, fieldName) {
			nameMatch = i
		}
	}

	if nameMatch >= 0 {
		return value.Field(nameMatch).Interface(), nil
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *defaultFieldResolverImpl) resolveFromMap(
	value reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	if value.Type().Key().Kind() != reflect.String {
		return nil, resolver.unresolvedError(info)
	}

	entry := value.MapIndex(reflect.ValueOf(info.Field().Name()).Convert(value.Type().Key()))
	if !entry.IsValid() {
		return nil, resolver.unresolvedError(info)
	}
	return entry.Interface(), nil
}
