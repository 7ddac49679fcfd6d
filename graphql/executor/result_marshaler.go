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
	"bytes"
	"io"

	"github.com/botobag/linkboard/graphql"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeExecutionResult(w io.Writer, result *ExecutionResult) error {
	stream := json.BorrowStream(w)
	defer json.ReturnStream(stream)

	if err := writeResult(stream, result); err != nil {
		return err
	}
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

func marshalExecutionResult(result *ExecutionResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeExecutionResult(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeResult(stream *jsoniter.Stream, result *ExecutionResult) error {
	stream.WriteObjectStart()

	// "errors" goes first to make it clear when something went wrong.
	if result.Errors.HaveOccurred() {
		stream.WriteObjectField("errors")
		stream.WriteArrayStart()
		for i, err := range result.Errors.Errors {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteVal(err)
		}
		stream.WriteArrayEnd()
		if result.Data != nil {
			stream.WriteMore()
		}
	}

	if result.Data != nil {
		stream.WriteObjectField("data")
		if err := writeResultNode(stream, result.Data); err != nil {
			return err
		}
	}

	stream.WriteObjectEnd()
	return nil
}

// writeResultNode writes result tree without recursion. Tasks are pushed to a stack in reverse
// order of output.
func writeResultNode(stream *jsoniter.Stream, root *ResultNode) error {
	var (
		// objectEndTask calls stream.WriteObjectEnd().
		objectEndTask interface{} = &struct{ int }{1}
		// arrayEndTask calls stream.WriteArrayEnd().
		arrayEndTask interface{} = &struct{ int }{2}
		// moreTask calls stream.WriteMore().
		moreTask interface{} = &struct{ int }{3}
		stack                = []interface{}{root}
	)

	for len(stack) > 0 {
		var task interface{}
		task, stack = stack[len(stack)-1], stack[:len(stack)-1]

		if task == objectEndTask {
			stream.WriteObjectEnd()
		} else if task == arrayEndTask {
			stream.WriteArrayEnd()
		} else if task == moreTask {
			stream.WriteMore()
		} else if node, ok := task.(*ExecutionNode); ok {
			stream.WriteObjectField(node.ResponseKey())
		} else {
			result := task.(*ResultNode)
			switch result.Kind {
			case ResultKindList:
				elements := result.ListValue()
				if len(elements) == 0 {
					stream.WriteEmptyArray()
					continue
				}

				stream.WriteArrayStart()
				stack = append(stack, arrayEndTask)
				for i := len(elements) - 1; i >= 0; i-- {
					stack = append(stack, &elements[i], moreTask)
				}
				// Pop the moreTask at the top. Don't write "," before first element.
				stack = stack[:len(stack)-1]

			case ResultKindObject:
				object := result.ObjectValue()
				nodes := object.ExecutionNodes
				values := object.FieldValues
				if len(nodes) != len(values) {
					return graphql.NewError("malformed object result value: mismatch length of "+
						"field values with the execution nodes", graphql.ErrKindInternal)
				}

				if len(values) == 0 {
					stream.WriteEmptyObject()
					continue
				}

				stream.WriteObjectStart()
				stack = append(stack, objectEndTask)
				for i := len(nodes) - 1; i >= 0; i-- {
					stack = append(stack, &values[i], nodes[i], moreTask)
				}
				// Pop the moreTask at the top. Don't write "," before first field.
				stack = stack[:len(stack)-1]

			case ResultKindLeaf:
				stream.WriteVal(result.Value)

			default:
				// Nil, Error and (should not happen) Unresolved
				stream.WriteNil()
			}
		}
	}

	return nil
}

// MarshalJSON implements json.Marshaler interface for ResultNode.
func (result *ResultNode) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	stream := json.BorrowStream(&buf)
	defer json.ReturnStream(stream)

	if err := writeResultNode(stream, result); err != nil {
		return nil, err
	}
	if err := stream.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
