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

// Package graphql provides the type system and error model of the field resolution engine.
//
// A Schema is made of Objects whose Fields each have a FieldKind drawn from a closed set: scalars
// read from the source record, single references, explicit reference lists and computed children.
// The executor (package executor) picks how to complete a field from its kind alone, so no runtime
// property lookup is involved in deciding how a value is assembled.
//
// Objects take a FieldsThunk instead of a field map. The thunk runs on first use, which lets an
// object type refer to itself:
//
//	var commentType *graphql.Object
//	commentType = graphql.MustNewObject(&graphql.ObjectConfig{
//		Name: "Comment",
//		Fields: func() graphql.Fields {
//			return graphql.Fields{
//				"content": {Kind: graphql.FieldKindScalar, Scalar: graphql.ScalarString},
//				"comments": {
//					Kind: graphql.FieldKindComputedChildren,
//					Type: commentType,
//				},
//			}
//		},
//	})
//
// Errors are reported with Error, which carries the kind of failure, the operation that failed and
// the response path and query location of the field it belongs to.
package graphql
