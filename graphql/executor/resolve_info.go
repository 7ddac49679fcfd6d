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
	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/ast"
)

// ResolveInfo implements graphql.ResolveInfo to provide execution states for field resolvers.
type ResolveInfo struct {
	ExecutionContext *ExecutionContext
	ExecutionNode    *ExecutionNode
	ResultNode       *ResultNode
}

var _ graphql.ResolveInfo = (*ResolveInfo)(nil)

// Schema implements graphql.ResolveInfo.
func (info *ResolveInfo) Schema() *graphql.Schema {
	return info.ExecutionContext.Schema()
}

// Operation implements graphql.ResolveInfo.
func (info *ResolveInfo) Operation() *ast.OperationDefinition {
	return info.ExecutionContext.Operation()
}

// AppContext implements graphql.ResolveInfo.
func (info *ResolveInfo) AppContext() interface{} {
	return info.ExecutionContext.AppContext()
}

// VariableValues implements graphql.ResolveInfo.
func (info *ResolveInfo) VariableValues() graphql.VariableValues {
	return info.ExecutionContext.VariableValues()
}

// Object implements graphql.ResolveInfo.
func (info *ResolveInfo) Object() *graphql.Object {
	return info.ExecutionNode.ParentType
}

// FieldDefinitions implements graphql.ResolveInfo.
func (info *ResolveInfo) FieldDefinitions() []*ast.Field {
	return info.ExecutionNode.Definitions
}

// Field implements graphql.ResolveInfo.
func (info *ResolveInfo) Field() *graphql.Field {
	return info.ExecutionNode.Field
}

// Path implements graphql.ResolveInfo.
func (info *ResolveInfo) Path() graphql.ResponsePath {
	return info.ResultNode.Path()
}

// Args implements graphql.ResolveInfo.
func (info *ResolveInfo) Args() graphql.ArgumentValues {
	return info.ExecutionNode.Args
}
