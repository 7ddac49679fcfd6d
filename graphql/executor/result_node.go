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
	"unsafe"

	"github.com/botobag/linkboard/graphql"
)

// ResultKind specifies which kind of value is held in the ResultNode. More specifically, it
// describes the type of ResultNode.Value.
type ResultKind uint16

// Enumeration of ResultKind
const (
	// ResultNode was not resolved. The Value is nil.
	ResultKindUnresolved ResultKind = iota

	// ResultNode was resolved to a nil value. The Value contains an nil interface.
	ResultKindNil

	// ResultNode was resolved to a List value. The value contains an []ResultNode.
	ResultKindList

	// ResultNode was resolved to an Object value. The value contains an *ObjectResultValue.
	ResultKindObject

	// ResultNode was resolved to a Scalar value. The value went through the result coercion of the
	// scalar type.
	ResultKindLeaf

	// Resolving the ResultNode failed. The value contains the *graphql.Error; The error was also
	// added to the errors of the ExecutionResult.
	ResultKindError
)

// ResultFlag includes some useful properties of this ResultNode.
type ResultFlag uint16

// Enumeration of ResultFlag
const (
	// ResultNode must represents a value other than nil.
	ResultFlagNonNull ResultFlag = 1 << iota
)

// A ResultNode holds a field value. Result data from executing an operation is made up of
// ResultNode's formed in a tree structure mirroring the query. Each node is either a value or an
// error scoped to the field: a failure in one node never changes its siblings or ancestors.
type ResultNode struct {
	// Pointer to the upper level of ResultNode in the result tree
	Parent *ResultNode

	// Kind describes kind of Value
	Kind ResultKind

	// Flags describes properties of Value. It is a bit set containing ResultFlag's.
	Flags uint16

	// The result value; This could be in a various format based on Kind.
	Value interface{}
}

const sizeOfResultNode = unsafe.Sizeof(ResultNode{})

// ObjectResultValue stores result from executing an Object field.
type ObjectResultValue struct {
	// The ExecutionNode's of Select Set that resolved FieldValues
	ExecutionNodes []*ExecutionNode

	// An array of ResultNode's each of which stores the result from executing the corresponding
	// ExecutionNode in ExecutionNodes.
	FieldValues []ResultNode
}

// IsUnresolved describes the result has not been resolved from its source value yet.
func (node *ResultNode) IsUnresolved() bool {
	return node.Kind == ResultKindUnresolved
}

// IsNil returns true if the node holds nil value.
func (node *ResultNode) IsNil() bool {
	return node.Kind == ResultKindNil
}

// IsList returns true if the node holds result for a List field.
func (node *ResultNode) IsList() bool {
	return node.Kind == ResultKindList
}

// IsObject returns true if the node holds result for an Object field.
func (node *ResultNode) IsObject() bool {
	return node.Kind == ResultKindObject
}

// IsLeaf returns true if the node holds result for a Scalar field.
func (node *ResultNode) IsLeaf() bool {
	return node.Kind == ResultKindLeaf
}

// IsError returns true if resolving the node failed.
func (node *ResultNode) IsError() bool {
	return node.Kind == ResultKindError
}

// SetIsNonNull marks the result to not have a nil value.
func (node *ResultNode) SetIsNonNull() {
	node.Flags = node.Flags | uint16(ResultFlagNonNull)
}

// IsNonNull describes the result should not be nil.
func (node *ResultNode) IsNonNull() bool {
	return (node.Flags & uint16(ResultFlagNonNull)) != 0
}

// ListValue returns a value that is held by this node for a List field. It would panic if this is
// not a resolved List result (i.e., IsList returns false).
func (node *ResultNode) ListValue() []ResultNode {
	return node.Value.([]ResultNode)
}

// ObjectValue returns a value that is held by this node for a Object field. It would panic if this
// is not a resolved Object result (i.e., IsObject returns false).
func (node *ResultNode) ObjectValue() *ObjectResultValue {
	return node.Value.(*ObjectResultValue)
}

// ErrorValue returns the error that failed the node. It would panic if IsError returns false.
func (node *ResultNode) ErrorValue() *graphql.Error {
	return node.Value.(*graphql.Error)
}

// Field returns the ResultNode of the field with the given response key in an Object result, or
// nil if there's no such field or node is not an Object.
func (node *ResultNode) Field(responseKey string) *ResultNode {
	if !node.IsObject() {
		return nil
	}
	object := node.ObjectValue()
	for i, executionNode := range object.ExecutionNodes {
		if executionNode.ResponseKey() == responseKey {
			return &object.FieldValues[i]
		}
	}
	return nil
}

// Path in the response to this node.
func (node *ResultNode) Path() graphql.ResponsePath {
	var (
		path      graphql.ResponsePath
		pathKeys  []interface{}
		childNode = node
	)

	if node == nil {
		return path
	}

	for node := node.Parent; node != nil; node = node.Parent {
		var childNodes []ResultNode
		if node.IsList() {
			childNodes = node.ListValue()
		} else if node.IsObject() {
			childNodes = node.ObjectValue().FieldValues
		} else {
			continue
		}

		// Child nodes are stored contiguously so the index can be recovered from the address.
		childNodeAddr := uintptr(unsafe.Pointer(childNode))
		firstChildNodeAddr := uintptr(unsafe.Pointer(&childNodes[0]))
		childIndex := int((childNodeAddr - firstChildNodeAddr) / sizeOfResultNode)

		if node.IsList() {
			pathKeys = append(pathKeys, childIndex)
		} else {
			pathKeys = append(pathKeys, node.ObjectValue().ExecutionNodes[childIndex].ResponseKey())
		}

		childNode = node
	}

	// Pour keys in pathKeys to path in reverse order.
	for i := len(pathKeys) - 1; i >= 0; i-- {
		switch pathKey := pathKeys[i].(type) {
		case int:
			path.AppendIndex(pathKey)
		case string:
			path.AppendFieldName(pathKey)
		}
	}

	return path
}
