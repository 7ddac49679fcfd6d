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

// An ExecutionNode represents a field to be evaluated. It stores what was computed when collecting
// the fields of a selection set: the field definition in the schema, the coerced arguments and the
// query nodes requesting the field (fields with the same response key are coalesced into one
// node).
//
// Nodes are computed once and revisited for every value resolved at the same position. For
// example, given
//
//	{
//	  allLinks {
//	    comments { # Selection set of this node is shared by every comment of every link
//	      content
//	      comments { content }
//	    }
//	  }
//	}
//
// the child nodes of "comments" are collected when the first comment is completed and reused for
// the rest.
type ExecutionNode struct {
	// Parent of this node in the graph; This is nil for root node.
	Parent *ExecutionNode

	// The object type containing the field; This is nil for root node.
	ParentType *graphql.Object

	// Field definitions in the query for this node; This is nil for root node.
	Definitions []*ast.Field

	// The corresponding Field definition in the schema; This is nil for root node and for nodes
	// whose field couldn't be found (see Err).
	Field *graphql.Field

	// Arguments to this field after coercion
	Args graphql.ArgumentValues

	// Err is set when the node cannot be executed (e.g., the field doesn't exist or arguments are
	// invalid). Executing the node reports the error at its position in the result.
	Err error

	// The child nodes of this node; Computed on first use.
	Children []*ExecutionNode

	// childrenCollected is set when Children was computed.
	childrenCollected bool
}

// IsRoot returns true if this node represents a root node.
func (node *ExecutionNode) IsRoot() bool {
	return node.Parent == nil
}

// ResponseKey is the field alias name if defined, otherwise the field name.
func (node *ExecutionNode) ResponseKey() string {
	return node.Definitions[0].ResponseKey()
}

// Locations returns the query locations of the definitions of this node.
func (node *ExecutionNode) Locations() []graphql.ErrorLocation {
	if len(node.Definitions) == 0 {
		return nil
	}
	locations := make([]graphql.ErrorLocation, len(node.Definitions))
	for i, definition := range node.Definitions {
		locations[i] = graphql.ErrorLocationOfASTNode(definition)
	}
	return locations
}
