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

package executor_test

import (
	"context"
	"errors"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/executor"
	"github.com/botobag/linkboard/iterator"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type item struct {
	Name    string `graphql:"name"`
	Count   int
	Hidden  string `graphql:"-"`
	private int
}

// itemList implements graphql.SizedIterable. It fails with err after failAfter items if err is
// set.
type itemList struct {
	items     []*item
	err       error
	failAfter int
	iterated  *int
}

func (list itemList) Size() int {
	return len(list.items)
}

func (list itemList) Iterator() graphql.Iterator {
	return &itemListIterator{list: list}
}

type itemListIterator struct {
	list itemList
	pos  int
}

func (iter *itemListIterator) Next() (interface{}, error) {
	if iter.list.err != nil && iter.pos == iter.list.failAfter {
		return nil, iter.list.err
	}
	if iter.pos >= len(iter.list.items) {
		return nil, iterator.Done
	}
	if iter.list.iterated != nil {
		*iter.list.iterated++
	}
	item := iter.list.items[iter.pos]
	iter.pos++
	return item, nil
}

func resolveWith(f func(info graphql.ResolveInfo) (interface{}, error)) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		return f(info)
	})
}

func resolveTo(value interface{}) graphql.FieldResolver {
	return resolveWith(func(graphql.ResolveInfo) (interface{}, error) {
		return value, nil
	})
}

var _ = Describe("Execute", func() {
	var (
		itemType  *graphql.Object
		queryType *graphql.Object
		schema    *graphql.Schema
		iterated  int
	)

	BeforeEach(func() {
		iterated = 0

		itemType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Item",
			Fields: func() graphql.Fields {
				return graphql.Fields{
					"name":    {Kind: graphql.FieldKindScalar, Scalar: graphql.ScalarString, NonNull: true},
					"count":   {Kind: graphql.FieldKindScalar, Scalar: graphql.ScalarInt},
					"hidden":  {Kind: graphql.FieldKindScalar, Scalar: graphql.ScalarString},
					"private": {Kind: graphql.FieldKindScalar, Scalar: graphql.ScalarInt},
					"path": {
						Kind:   graphql.FieldKindScalar,
						Scalar: graphql.ScalarString,
						Resolver: resolveWith(func(info graphql.ResolveInfo) (interface{}, error) {
							return info.Path().String(), nil
						}),
					},
					"self": {
						Kind: graphql.FieldKindSingleReference,
						Type: itemType,
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							return source, nil
						}),
					},
				}
			},
		})

		queryType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: func() graphql.Fields {
				return graphql.Fields{
					"item": {
						Kind:     graphql.FieldKindSingleReference,
						Type:     itemType,
						Resolver: resolveTo(&item{Name: "first", Count: 1, Hidden: "h", private: 2}),
					},
					"typedNil": {
						Kind:     graphql.FieldKindSingleReference,
						Type:     itemType,
						Resolver: resolveTo((*item)(nil)),
					},
					"fromMap": {
						Kind:     graphql.FieldKindSingleReference,
						Type:     itemType,
						Resolver: resolveTo(map[string]interface{}{"name": "m", "count": 3}),
					},
					"items": {
						Kind: graphql.FieldKindReferenceList,
						Type: itemType,
						Resolver: resolveTo([]interface{}{
							&item{Name: "a"},
							errors.New("boom"),
							nil,
							item{Name: "d", Count: 4},
						}),
					},
					"strictItems": {
						Kind:           graphql.FieldKindReferenceList,
						Type:           itemType,
						ElementNonNull: true,
						Resolver:       resolveTo([]*item{{Name: "a"}, nil}),
					},
					"array": {
						Kind:     graphql.FieldKindReferenceList,
						Type:     itemType,
						Resolver: resolveTo([2]*item{{Name: "x"}, {Name: "y"}}),
					},
					"iterable": {
						Kind: graphql.FieldKindComputedChildren,
						Type: itemType,
						Resolver: resolveWith(func(graphql.ResolveInfo) (interface{}, error) {
							return itemList{
								items:    []*item{{Name: "i0"}, {Name: "i1"}, {Name: "i2"}},
								iterated: &iterated,
							}, nil
						}),
					},
					"failingIterable": {
						Kind:    graphql.FieldKindComputedChildren,
						Type:    itemType,
						NonNull: true,
						Resolver: resolveTo(itemList{
							items:     []*item{{Name: "i0"}, {Name: "i1"}},
							err:       errors.New("scan failed"),
							failAfter: 1,
						}),
					},
					"notList": {
						Kind:     graphql.FieldKindReferenceList,
						Type:     itemType,
						Resolver: resolveTo(42),
					},
					"nonNullString": {
						Kind:     graphql.FieldKindScalar,
						Scalar:   graphql.ScalarString,
						NonNull:  true,
						Resolver: resolveTo(nil),
					},
					"badInt": {
						Kind:     graphql.FieldKindScalar,
						Scalar:   graphql.ScalarInt,
						Resolver: resolveTo("abc"),
					},
					"failing": {
						Kind:   graphql.FieldKindScalar,
						Scalar: graphql.ScalarString,
						Resolver: resolveWith(func(graphql.ResolveInfo) (interface{}, error) {
							return nil, graphql.NewError("not today", graphql.ErrKindNotFound)
						}),
					},
					"echo": {
						Kind:   graphql.FieldKindScalar,
						Scalar: graphql.ScalarString,
						Args: graphql.ArgumentConfigMap{
							"value": {Type: graphql.ScalarInt, DefaultValue: 7},
							"text":  {Type: graphql.ScalarString},
							"flag":  {Type: graphql.ScalarBoolean, NonNull: true},
						},
						Resolver: resolveWith(func(info graphql.ResolveInfo) (interface{}, error) {
							data, err := info.Args().MarshalJSON()
							return string(data), err
						}),
					},
					"root": {
						Kind:   graphql.FieldKindScalar,
						Scalar: graphql.ScalarString,
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							return source, nil
						}),
					},
				}
			},
		})

		schema = graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: queryType,
		})
	})

	It("reads scalars with the default resolver", func() {
		Expect(execute(schema, `{ item { name count } fromMap { name count } }`)).Should(MatchResultInJSON(`{
			"data": {
				"item": {"name": "first", "count": 1},
				"fromMap": {"name": "m", "count": 3}
			}
		}`))
	})

	It("reports fields the default resolver cannot find", func() {
		Expect(execute(schema, `{ item { hidden private } }`)).Should(MatchResultInJSON(`{
			"errors": [
				{
					"message": "default resolver cannot resolve value for \"Item.hidden\"",
					"locations": [{"line": 1, "column": 10}],
					"path": ["item", "hidden"]
				},
				{
					"message": "default resolver cannot resolve value for \"Item.private\"",
					"locations": [{"line": 1, "column": 17}],
					"path": ["item", "private"]
				}
			],
			"data": {"item": {"hidden": null, "private": null}}
		}`))
	})

	It("can be configured not to report unresolved fields", func() {
		result := execute(schema, `{ item { hidden } }`, func(params *executor.ExecuteParams) {
			params.DefaultFieldResolver = executor.NewDefaultFieldResolver(executor.UnresolvedAsError(false))
		})
		Expect(result).Should(MatchResultInJSON(`{"data": {"item": {"hidden": null}}}`))
	})

	It("matches struct fields by custom tag", func() {
		type tagged struct {
			Value string `json:"value" alias:"name"`
		}
		resolver := executor.NewDefaultFieldResolver(executor.FieldTagName("alias"))
		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: func() graphql.Fields {
					return graphql.Fields{
						"tagged": {
							Kind:     graphql.FieldKindSingleReference,
							Type:     itemType,
							Resolver: resolveTo(tagged{Value: "by tag"}),
						},
					}
				},
			}),
		})
		result := execute(schema, `{ tagged { name } }`, func(params *executor.ExecuteParams) {
			params.DefaultFieldResolver = resolver
		})
		Expect(result).Should(MatchResultInJSON(`{"data": {"tagged": {"name": "by tag"}}}`))
	})

	It("completes null for nil values including typed nil", func() {
		Expect(execute(schema, `{ typedNil { name } }`)).Should(MatchResultInJSON(`{"data": {"typedNil": null}}`))
	})

	It("records errors at element positions in lists", func() {
		Expect(execute(schema, `{ items { name count } }`)).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "boom",
				"locations": [{"line": 1, "column": 3}],
				"path": ["items", 1]
			}],
			"data": {
				"items": [
					{"name": "a", "count": 0},
					null,
					null,
					{"name": "d", "count": 4}
				]
			}
		}`))
	})

	It("reports null elements in lists of non-null", func() {
		Expect(execute(schema, `{ strictItems { name } }`)).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "Cannot return null for non-nullable field Query.strictItems.",
				"locations": [{"line": 1, "column": 3}],
				"path": ["strictItems", 1]
			}],
			"data": {"strictItems": [{"name": "a"}, null]}
		}`))
	})

	It("completes arrays and iterables", func() {
		Expect(execute(schema, `{ array { name } iterable { name path } }`)).Should(MatchResultInJSON(`{
			"data": {
				"array": [{"name": "x"}, {"name": "y"}],
				"iterable": [
					{"name": "i0", "path": "iterable[0].path"},
					{"name": "i1", "path": "iterable[1].path"},
					{"name": "i2", "path": "iterable[2].path"}
				]
			}
		}`))
		Expect(iterated).Should(Equal(3))
	})

	It("doesn't pull iterables that are not requested", func() {
		execute(schema, `{ array { name } }`)
		Expect(iterated).Should(Equal(0))
	})

	It("fails the list field when iteration fails", func() {
		Expect(execute(schema, `{ failingIterable { name } item { name } }`)).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "Error occurred while enumerating values in the list field Query.failingIterable.",
				"locations": [{"line": 1, "column": 3}],
				"path": ["failingIterable"]
			}],
			"data": {"failingIterable": null, "item": {"name": "first"}}
		}`))
	})

	It("rejects non-list values for list fields", func() {
		result := execute(schema, `{ notList { name } }`)
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Error()).Should(ContainSubstring("Expected Iterable, but got int."))
		Expect(result.Data.Field("notList").IsError()).Should(BeTrue())
	})

	It("reports non-null violations and bad scalars without bubbling", func() {
		Expect(execute(schema, `{ nonNullString badInt failing item { name } }`)).Should(MatchResultInJSON(`{
			"errors": [
				{
					"message": "Cannot return null for non-nullable field Query.nonNullString.",
					"locations": [{"line": 1, "column": 3}],
					"path": ["nonNullString"]
				},
				{
					"message": "Int cannot represent value: \"abc\"",
					"locations": [{"line": 1, "column": 17}],
					"path": ["badInt"]
				},
				{
					"message": "not today",
					"locations": [{"line": 1, "column": 24}],
					"path": ["failing"],
					"extensions": {"code": "NOT_FOUND"}
				}
			],
			"data": {
				"nonNullString": null,
				"badInt": null,
				"failing": null,
				"item": {"name": "first"}
			}
		}`))
	})

	It("coalesces fields with the same response key", func() {
		result := execute(schema, `{ item { name } item { count } other: item { name } }`)
		Expect(result).Should(MatchResultInJSON(`{
			"data": {
				"item": {"name": "first", "count": 1},
				"other": {"name": "first"}
			}
		}`))

		object := result.Data.ObjectValue()
		Expect(object.ExecutionNodes).Should(HaveLen(2))
		Expect(object.ExecutionNodes[0].Definitions).Should(HaveLen(2))
	})

	It("resolves fields in query order", func() {
		data, err := execute(schema, `{ fromMap { count } item { count name } }`).MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(data)).Should(Equal(
			`{"data":{"fromMap":{"count":3},"item":{"count":1,"name":"first"}}}`))
	})

	It("coerces arguments with defaults, null and variables", func() {
		Expect(execute(schema, `query ($v: Int, $t: String = "dflt") {
			a: echo(flag: true)
			b: echo(value: null, flag: false, text: "x")
			c: echo(value: $v, text: $t, flag: true)
		}`, withVariables(map[string]interface{}{"v": 3}))).Should(MatchResultInJSON(`{
			"data": {
				"a": "{\"flag\":true,\"value\":7}",
				"b": "{\"flag\":false,\"text\":\"x\",\"value\":null}",
				"c": "{\"flag\":true,\"text\":\"dflt\",\"value\":3}"
			}
		}`))
	})

	It("reports argument errors", func() {
		Expect(execute(schema, `{ echo(value: 1) b: echo(flag: null) c: echo(flag: 1) }`)).Should(MatchResultInJSON(`{
			"errors": [
				{
					"message": "Argument \"flag\" of required type \"Boolean!\" was not provided.",
					"locations": [{"line": 1, "column": 3}],
					"path": ["echo"],
					"extensions": {"code": "VALIDATION_FAILED"}
				},
				{
					"message": "Argument \"flag\" of non-null type \"Boolean!\" must not be null.",
					"locations": [{"line": 1, "column": 26}],
					"path": ["b"],
					"extensions": {"code": "VALIDATION_FAILED"}
				},
				{
					"message": "Argument \"flag\" has invalid value 1.",
					"locations": [{"line": 1, "column": 46}],
					"path": ["c"],
					"extensions": {"code": "VALIDATION_FAILED"}
				}
			],
			"data": {"echo": null, "b": null, "c": null}
		}`))
	})

	It("passes the root value to root fields", func() {
		Expect(execute(schema, `{ root }`, withRootValue("I'm root"))).Should(MatchResultInJSON(`{
			"data": {"root": "I'm root"}
		}`))
	})

	It("rejects operations the schema doesn't support", func() {
		Expect(execute(schema, `mutation { item { name } }`)).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "Schema is not configured for mutations.",
				"locations": [{"line": 1, "column": 1}],
				"extensions": {"code": "VALIDATION_FAILED"}
			}]
		}`))
	})

	It("selects operations by name", func() {
		query := `query A { item { name } } query B { fromMap { name } }`

		Expect(execute(schema, query, func(params *executor.ExecuteParams) {
			params.OperationName = "B"
		})).Should(MatchResultInJSON(`{"data": {"fromMap": {"name": "m"}}}`))

		Expect(execute(schema, query, func(params *executor.ExecuteParams) {
			params.OperationName = "C"
		})).Should(MatchResultInJSON(`{
			"errors": [{
				"message": "Unknown operation named \"C\".",
				"extensions": {"code": "VALIDATION_FAILED"}
			}]
		}`))
	})

	It("exposes result nodes", func() {
		result := execute(schema, `{ items { name } typedNil { name } item { name } }`)

		items := result.Data.Field("items")
		Expect(items.IsList()).Should(BeTrue())
		Expect(items.ListValue()).Should(HaveLen(4))
		Expect(items.ListValue()[1].IsError()).Should(BeTrue())
		Expect(items.ListValue()[1].ErrorValue().Path.String()).Should(Equal("items[1]"))
		Expect(items.ListValue()[2].IsNil()).Should(BeTrue())

		Expect(result.Data.Field("typedNil").IsNil()).Should(BeTrue())
		Expect(result.Data.Field("item").Field("name").IsLeaf()).Should(BeTrue())
		Expect(result.Data.Field("item").Field("name").Value).Should(Equal("first"))
		Expect(result.Data.Field("missing")).Should(BeNil())
	})
})
