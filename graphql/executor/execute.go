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
	"io"
	"reflect"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/ast"
	"github.com/botobag/linkboard/internal/util"
	"github.com/botobag/linkboard/iterator"
)

// ExecutionResult contains result from running an operation. Data is nil when the operation
// couldn't be executed at all (e.g., invalid variables); Errors then explain why.
type ExecutionResult struct {
	Data   *ResultNode
	Errors graphql.Errors
}

// MarshalJSONTo writes the JSON encoding of result to the w.
func (result *ExecutionResult) MarshalJSONTo(w io.Writer) error {
	return writeExecutionResult(w, result)
}

// MarshalJSON implements json.Marshaler interface for ExecutionResult.
func (result ExecutionResult) MarshalJSON() ([]byte, error) {
	return marshalExecutionResult(&result)
}

// Execute runs the operation in params to completion and returns the result tree.
//
// Fields are resolved one at a time, depth-first, in the order they appear in the query. A field
// that fails gets an error at its position in the result; its siblings and ancestors are resolved
// as if nothing happened.
func Execute(ctx context.Context, params ExecuteParams) *ExecutionResult {
	ectx, errs := newExecutionContext(ctx, &params)
	if errs.HaveOccurred() {
		return &ExecutionResult{
			Errors: errs,
		}
	}

	// Root node is a special node which behaves like a field with nil parent and definition.
	rootNode := &ExecutionNode{}
	result := &ResultNode{}
	ectx.executeObject(ectx.rootType, rootNode, result, ectx.rootValue)

	return &ExecutionResult{
		Data:   result,
		Errors: ectx.errs,
	}
}

// collectFields returns the child nodes for the selection set of node, building them on first
// use.
func (ctx *ExecutionContext) collectFields(node *ExecutionNode, objectType *graphql.Object) []*ExecutionNode {
	if node.childrenCollected {
		return node.Children
	}

	var selectionSets []ast.SelectionSet
	if node.IsRoot() {
		selectionSets = []ast.SelectionSet{ctx.operation.SelectionSet}
	} else {
		selectionSets = make([]ast.SelectionSet, len(node.Definitions))
		for i, definition := range node.Definitions {
			selectionSets[i] = definition.SelectionSet
		}
	}

	var (
		childNodes []*ExecutionNode
		// Map field response key to its corresponding node to coalesce selections of the same key.
		fields = map[string]*ExecutionNode{}
	)

	for _, selectionSet := range selectionSets {
		for _, selection := range selectionSet {
			name := selection.ResponseKey()
			if childNode := fields[name]; childNode != nil {
				childNode.Definitions = append(childNode.Definitions, selection)
				continue
			}

			childNode := &ExecutionNode{
				Parent:      node,
				ParentType:  objectType,
				Definitions: []*ast.Field{selection},
			}

			field := objectType.Field(selection.Name)
			if field == nil {
				childNode.Err = graphql.NewError(
					util.DidYouMean(
						fmt.Sprintf(`Cannot query field "%s" on type "%s".`, selection.Name, objectType.Name()),
						util.SuggestionList(selection.Name, objectType.FieldNames())),
					graphql.ErrKindValidation)
			} else {
				childNode.Field = field
				childNode.Args, childNode.Err = ctx.argumentValues(field, selection)
				if childNode.Err == nil && field.Kind() != graphql.FieldKindScalar && len(selection.SelectionSet) == 0 {
					childNode.Err = graphql.NewError(
						fmt.Sprintf(`Field "%s" of type "%s" must have a selection of subfields.`,
							selection.Name, field.TypeString()),
						graphql.ErrKindValidation)
				} else if childNode.Err == nil && field.Kind() == graphql.FieldKindScalar && len(selection.SelectionSet) > 0 {
					childNode.Err = graphql.NewError(
						fmt.Sprintf(`Field "%s" must not have a selection since type "%s" has no subfields.`,
							selection.Name, field.TypeString()),
						graphql.ErrKindValidation)
				}
			}

			childNodes = append(childNodes, childNode)
			fields[name] = childNode
		}
	}

	node.Children = childNodes
	node.childrenCollected = true
	return childNodes
}

// argumentValues coerces the arguments given to field in the query.
func (ctx *ExecutionContext) argumentValues(field *graphql.Field, selection *ast.Field) (graphql.ArgumentValues, error) {
	for _, arg := range selection.Arguments {
		if field.Arg(arg.Name) == nil {
			argNames := make([]string, len(field.Args()))
			for i, def := range field.Args() {
				argNames[i] = def.Name()
			}
			return graphql.NoArgumentValues(), graphql.NewError(
				util.DidYouMean(
					fmt.Sprintf(`Unknown argument "%s" on field "%s".`, arg.Name, field.Name()),
					util.SuggestionList(arg.Name, argNames)),
				graphql.ErrorLocationOfASTNode(arg),
				graphql.ErrKindValidation)
		}
	}

	if len(field.Args()) == 0 {
		return graphql.NoArgumentValues(), nil
	}

	values := map[string]interface{}{}
	for _, def := range field.Args() {
		name := def.Name()
		arg := selection.Argument(name)

		var (
			value    interface{}
			provided bool
		)

		if arg != nil {
			switch literal := arg.Value.(type) {
			case *ast.Variable:
				value, provided = ctx.variableValues.Lookup(literal.Name)

			case *ast.NullValue:
				value, provided = nil, true

			default:
				coerced, err := def.Type().CoerceLiteral(literal)
				if err != nil {
					return graphql.NoArgumentValues(), graphql.NewError(
						fmt.Sprintf(`Argument "%s" has invalid value %s.`, name, graphql.Inspect(literal.Interface())),
						graphql.ErrorLocationOfASTNode(arg), graphql.ErrKindValidation, err)
				}
				value, provided = coerced, true
			}
		}

		if !provided {
			if def.HasDefaultValue() {
				values[name] = def.DefaultValue()
			} else if def.NonNull() {
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of required type "%s" was not provided.`, name, def.TypeString()),
					graphql.ErrKindValidation)
			}
			continue
		}

		if value == nil && def.NonNull() {
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" of non-null type "%s" must not be null.`, name, def.TypeString()),
				graphql.ErrorLocationOfASTNode(arg), graphql.ErrKindValidation)
		}

		if value != nil {
			// Variables were coerced to the variable's type which may differ from the argument's.
			coerced, err := def.Type().CoerceVariableValue(value)
			if err != nil {
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" has invalid value %s.`, name, graphql.Inspect(value)),
					graphql.ErrorLocationOfASTNode(arg), graphql.ErrKindValidation, err)
			}
			value = coerced
		}
		values[name] = value
	}

	return graphql.NewArgumentValues(values), nil
}

// executeObject completes result as an object of objectType whose fields are the child nodes of
// node, resolved from source.
func (ctx *ExecutionContext) executeObject(
	objectType *graphql.Object,
	node *ExecutionNode,
	result *ResultNode,
	source interface{}) {

	childNodes := ctx.collectFields(node, objectType)

	// Allocate ResultNode's for each nodes.
	fieldValues := make([]ResultNode, len(childNodes))
	result.Kind = ResultKindObject
	result.Value = &ObjectResultValue{
		ExecutionNodes: childNodes,
		FieldValues:    fieldValues,
	}

	for i, childNode := range childNodes {
		fieldResult := &fieldValues[i]
		fieldResult.Parent = result
		if childNode.Field != nil && childNode.Field.NonNull() {
			fieldResult.SetIsNonNull()
		}
		ctx.executeNode(childNode, fieldResult, source)
	}
}

// executeNode resolves the field of node from source and completes result with its value.
func (ctx *ExecutionContext) executeNode(
	node *ExecutionNode,
	result *ResultNode,
	source interface{}) {

	if node.Err != nil {
		ctx.handleNodeError(node, node.Err, result)
		return
	}

	field := node.Field
	resolver := field.Resolver()
	if resolver == nil {
		resolver = ctx.defaultFieldResolver
	}

	info := &ResolveInfo{
		ExecutionContext: ctx,
		ExecutionNode:    node,
		ResultNode:       result,
	}

	value, err := resolver.Resolve(ctx.ctx, source, info)
	if err != nil {
		ctx.handleNodeError(node, err, result)
		return
	}

	switch field.Kind() {
	case graphql.FieldKindScalar:
		ctx.completeLeafValue(node, result, value)

	case graphql.FieldKindSingleReference:
		ctx.completeObjectValue(node, result, value)

	case graphql.FieldKindReferenceList, graphql.FieldKindComputedChildren:
		ctx.completeListValue(node, result, value)
	}
}

// handleNodeError records err at the position of result. The error is annotated with the response
// path of the field, and with the query locations of the field unless it already points somewhere
// (e.g., at an invalid argument).
func (ctx *ExecutionContext) handleNodeError(node *ExecutionNode, err error, result *ResultNode) {
	var (
		locations = node.Locations()
		path      = result.Path()
	)

	// Copy *graphql.Error so errors shared between fields (e.g., the same dangling reference seen
	// from different positions) get their own locations and path.
	var e *graphql.Error
	if gqlErr, ok := err.(*graphql.Error); ok {
		copied := *gqlErr
		e = &copied
		if len(e.Locations) == 0 {
			e.Locations = locations
		}
		e.Path = path
	} else {
		e = graphql.NewError(err.Error(), locations, path, graphql.ErrKindExecution, err).(*graphql.Error)
	}

	result.Kind = ResultKindError
	result.Value = e

	ctx.errs.Append(e)
}

// completeNilValue completes result with nil or reports an error if result must not be nil.
func (ctx *ExecutionContext) completeNilValue(node *ExecutionNode, result *ResultNode) {
	if result.IsNonNull() {
		ctx.handleNodeError(node, graphql.NewError(
			fmt.Sprintf("Cannot return null for non-nullable field %s.%s.",
				node.ParentType.Name(), node.Field.Name()),
			graphql.ErrKindExecution), result)
		return
	}
	result.Kind = ResultKindNil
	result.Value = nil
}

func (ctx *ExecutionContext) completeLeafValue(node *ExecutionNode, result *ResultNode, value interface{}) {
	if isNullish(value) {
		ctx.completeNilValue(node, result)
		return
	}

	coercedValue, err := node.Field.Scalar().CoerceResultValue(value)
	if err != nil {
		ctx.handleNodeError(node, err, result)
		return
	}

	result.Kind = ResultKindLeaf
	result.Value = coercedValue
}

func (ctx *ExecutionContext) completeObjectValue(node *ExecutionNode, result *ResultNode, value interface{}) {
	// Resolvers can signify failure of an individual value by returning an error as the value.
	if err, ok := value.(error); ok {
		ctx.handleNodeError(node, err, result)
		return
	}

	if isNullish(value) {
		ctx.completeNilValue(node, result)
		return
	}

	ctx.executeObject(node.Field.Type(), node, result, value)
}

func (ctx *ExecutionContext) completeListValue(node *ExecutionNode, result *ResultNode, value interface{}) {
	if isNullish(value) {
		ctx.completeNilValue(node, result)
		return
	}

	values, err := listValues(value)
	if err != nil {
		ctx.handleNodeError(node, graphql.NewError(
			fmt.Sprintf("Error occurred while enumerating values in the list field %s.%s.",
				node.ParentType.Name(), node.Field.Name()), err), result)
		return
	}

	elements := make([]ResultNode, len(values))
	result.Kind = ResultKindList
	result.Value = elements

	elementNonNull := node.Field.ElementNonNull()
	for i, value := range values {
		element := &elements[i]
		element.Parent = result
		if elementNonNull {
			element.SetIsNonNull()
		}
		ctx.completeObjectValue(node, element, value)
	}
}

// listValues drains value into a slice. value must be a graphql.Iterable, a slice or an array.
func listValues(value interface{}) ([]interface{}, error) {
	if iterable, ok := value.(graphql.Iterable); ok {
		var values []interface{}
		if sized, ok := iterable.(graphql.SizedIterable); ok {
			values = make([]interface{}, 0, sized.Size())
		}

		iter := iterable.Iterator()
		for {
			v, err := iter.Next()
			if err == iterator.Done {
				break
			} else if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
		return nil, graphql.NewError(fmt.Sprintf("Expected Iterable, but got %T.", value),
			graphql.ErrKindExecution)
	}

	values := make([]interface{}, v.Len())
	for i := range values {
		values[i] = v.Index(i).Interface()
	}
	return values, nil
}

// isNullish returns true for nil and typed nil pointers, maps, slices and interfaces.
func isNullish(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
