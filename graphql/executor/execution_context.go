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

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/ast"
)

// ExecuteParams specifies what to execute and how.
type ExecuteParams struct {
	// Schema to execute against; Required.
	Schema *graphql.Schema

	// Document contains the operations; Required.
	Document *ast.Document

	// OperationName selects the operation in Document. It can be empty if the document contains
	// exactly one operation.
	OperationName string

	// VariableValues are raw values for the variables defined by the operation (typically decoded
	// from the JSON request).
	VariableValues map[string]interface{}

	// RootValue is passed as source to the resolvers of the root fields.
	RootValue interface{}

	// AppContext is made available to resolvers via ResolveInfo.AppContext.
	AppContext interface{}

	// DefaultFieldResolver is used for fields without a resolver. NewDefaultFieldResolver() is used
	// if not given.
	DefaultFieldResolver graphql.FieldResolver
}

// ExecutionContext contains the state of executing one operation.
type ExecutionContext struct {
	ctx                  context.Context
	schema               *graphql.Schema
	operation            *ast.OperationDefinition
	rootType             *graphql.Object
	variableValues       graphql.VariableValues
	rootValue            interface{}
	appContext           interface{}
	defaultFieldResolver graphql.FieldResolver

	// Errors that occurred during execution
	errs graphql.Errors
}

var defaultFieldResolver = NewDefaultFieldResolver()

// newExecutionContext finds the operation to execute and coerces variable values. Errors are
// request errors: nothing should be executed if any occurred.
func newExecutionContext(ctx context.Context, params *ExecuteParams) (*ExecutionContext, graphql.Errors) {
	if params.Schema == nil {
		return nil, graphql.ErrorsOf("Must provide schema.", graphql.ErrKindInternal)
	}
	if params.Document == nil {
		return nil, graphql.ErrorsOf("Must provide document.", graphql.ErrKindInternal)
	}

	operation, err := findOperation(params.Document, params.OperationName)
	if err != nil {
		return nil, graphql.ErrorsOf(err)
	}

	rootType := params.Schema.RootType(operation.Type)
	if rootType == nil {
		return nil, graphql.ErrorsOf(
			fmt.Sprintf("Schema is not configured for %ss.", operation.Type),
			graphql.ErrorLocationOfASTNode(operation),
			graphql.ErrKindValidation)
	}

	variableValues, errs := coerceVariableValues(operation, params.VariableValues)
	if errs.HaveOccurred() {
		return nil, errs
	}

	resolver := params.DefaultFieldResolver
	if resolver == nil {
		resolver = defaultFieldResolver
	}

	return &ExecutionContext{
		ctx:                  ctx,
		schema:               params.Schema,
		operation:            operation,
		rootType:             rootType,
		variableValues:       variableValues,
		rootValue:            params.RootValue,
		appContext:           params.AppContext,
		defaultFieldResolver: resolver,
	}, graphql.NoErrors()
}

func findOperation(document *ast.Document, operationName string) (*ast.OperationDefinition, error) {
	if len(operationName) == 0 {
		switch len(document.Operations) {
		case 0:
			return nil, graphql.NewError("Must provide an operation.", graphql.ErrKindValidation)
		case 1:
			return document.Operations[0], nil
		default:
			return nil, graphql.NewError("Must provide operation name if query contains multiple operations.",
				graphql.ErrKindValidation)
		}
	}

	for _, operation := range document.Operations {
		if operation.Name == operationName {
			return operation, nil
		}
	}
	return nil, graphql.NewError(fmt.Sprintf(`Unknown operation named "%s".`, operationName),
		graphql.ErrKindValidation)
}

// coerceVariableValues prepares values for the variables defined by operation from the raw inputs.
func coerceVariableValues(
	operation *ast.OperationDefinition,
	inputs map[string]interface{}) (graphql.VariableValues, graphql.Errors) {

	if len(operation.VariableDefinitions) == 0 {
		return graphql.NoVariableValues(), graphql.NoErrors()
	}

	var (
		errs   graphql.Errors
		values = make(map[string]interface{}, len(operation.VariableDefinitions))
	)

	for _, def := range operation.VariableDefinitions {
		location := graphql.ErrorLocationOfASTNode(def)

		scalar, ok := graphql.ScalarByName(def.Type.Name)
		if !ok {
			errs.Emplace(
				fmt.Sprintf(`Variable "$%s" expected value of type "%s" which cannot be used as an input type.`,
					def.Name, def.Type),
				location, graphql.ErrKindValidation)
			continue
		}

		input, provided := inputs[def.Name]
		if !provided {
			if def.DefaultValue != nil {
				if _, isNull := def.DefaultValue.(*ast.NullValue); isNull {
					values[def.Name] = nil
					continue
				}
				value, err := scalar.CoerceLiteral(def.DefaultValue)
				if err != nil {
					errs.Append(err)
					continue
				}
				values[def.Name] = value
			} else if def.Type.NonNull {
				errs.Emplace(
					fmt.Sprintf(`Variable "$%s" of required type "%s" was not provided.`, def.Name, def.Type),
					location, graphql.ErrKindValidation)
			}
			continue
		}

		if input == nil {
			if def.Type.NonNull {
				errs.Emplace(
					fmt.Sprintf(`Variable "$%s" of non-null type "%s" must not be null.`, def.Name, def.Type),
					location, graphql.ErrKindValidation)
				continue
			}
			values[def.Name] = nil
			continue
		}

		value, err := scalar.CoerceVariableValue(input)
		if err != nil {
			errs.Emplace(
				fmt.Sprintf(`Variable "$%s" got invalid value %s.`, def.Name, graphql.Inspect(input)),
				location, graphql.ErrKindValidation, err)
			continue
		}
		values[def.Name] = value
	}

	return graphql.NewVariableValues(values), errs
}

// Context returns the context of the execution.
func (ctx *ExecutionContext) Context() context.Context {
	return ctx.ctx
}

// Schema returns the schema being executed against.
func (ctx *ExecutionContext) Schema() *graphql.Schema {
	return ctx.schema
}

// Operation returns the operation being executed.
func (ctx *ExecutionContext) Operation() *ast.OperationDefinition {
	return ctx.operation
}

// VariableValues returns the coerced variable values.
func (ctx *ExecutionContext) VariableValues() graphql.VariableValues {
	return ctx.variableValues
}

// AppContext returns the application context given in ExecuteParams.
func (ctx *ExecutionContext) AppContext() interface{} {
	return ctx.appContext
}
