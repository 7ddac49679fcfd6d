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

package graphql_test

import (
	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Object", func() {
	It("rejects invalid names", func() {
		_, err := graphql.NewObject(&graphql.ObjectConfig{
			Fields: func() graphql.Fields { return nil },
		})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Must provide name for Object."),
		))

		_, err = graphql.NewObject(&graphql.ObjectConfig{
			Name:   "bad-name",
			Fields: func() graphql.Fields { return nil },
		})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Names must match /^[_a-zA-Z][_a-zA-Z0-9]*$/ but "bad-name" does not.`),
		))
	})

	It("requires a field thunk", func() {
		_, err := graphql.NewObject(&graphql.ObjectConfig{
			Name: "Link",
		})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Link fields must be provided."),
		))
	})

	It("panics in MustNewObject on errors", func() {
		Expect(func() {
			graphql.MustNewObject(&graphql.ObjectConfig{})
		}).Should(Panic())
	})

	It("evaluates fields lazily and only once", func() {
		calls := 0
		var comment *graphql.Object
		comment = graphql.MustNewObject(&graphql.ObjectConfig{
			Name:        "Comment",
			Description: "A comment on a link",
			Fields: func() graphql.Fields {
				calls++
				return graphql.Fields{
					"id": {Kind: graphql.FieldKindScalar, Scalar: graphql.ScalarInt, NonNull: true},
					"comments": {
						Kind:           graphql.FieldKindComputedChildren,
						Type:           comment,
						NonNull:        true,
						ElementNonNull: true,
					},
					"parent": {Kind: graphql.FieldKindSingleReference, Type: comment},
				}
			},
		})
		Expect(calls).Should(Equal(0))

		Expect(comment.Name()).Should(Equal("Comment"))
		Expect(comment.String()).Should(Equal("Comment"))
		Expect(comment.Description()).Should(Equal("A comment on a link"))
		Expect(comment.FieldNames()).Should(Equal([]string{"comments", "id", "parent"}))
		Expect(comment.Field("comments").Type()).Should(BeIdenticalTo(comment))
		Expect(comment.Field("parent").Type()).Should(BeIdenticalTo(comment))
		Expect(comment.Fields()).Should(HaveLen(3))
		Expect(calls).Should(Equal(1))
	})

	It("provides __typename on every object", func() {
		user := scalarObject("User", map[string]graphql.Scalar{"username": graphql.ScalarString})
		field := user.Field("__typename")
		Expect(field).Should(BeIdenticalTo(graphql.TypenameField()))
		Expect(field.TypeString()).Should(Equal("String!"))
		Expect(user.FieldNames()).ShouldNot(ContainElement("__typename"))
	})

	It("returns nil for unknown fields", func() {
		user := scalarObject("User", map[string]graphql.Scalar{"username": graphql.ScalarString})
		Expect(user.Field("email")).Should(BeNil())
	})

	Describe("invalid field definitions", func() {
		objectWithFields := func(fields graphql.Fields) *graphql.Object {
			return graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Link",
				Fields: func() graphql.Fields {
					return fields
				},
			})
		}

		expectSchemaError := func(object *graphql.Object, message string) {
			_, err := graphql.NewSchema(&graphql.SchemaConfig{Query: object})
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring(message))
			Expect(object.Fields()).Should(BeNil())
			Expect(object.FieldNames()).Should(BeNil())
		}

		It("rejects objects without fields", func() {
			expectSchemaError(objectWithFields(graphql.Fields{}),
				"Link fields must be an object with field names as keys.")
		})

		It("rejects invalid field names", func() {
			expectSchemaError(objectWithFields(graphql.Fields{
				"bad name": {Kind: graphql.FieldKindScalar, Scalar: graphql.ScalarInt},
			}), `Link has invalid field name "bad name".`)
		})

		It("rejects scalar fields without scalar type", func() {
			expectSchemaError(objectWithFields(graphql.Fields{
				"score": {Kind: graphql.FieldKindScalar},
			}), "invalid definition of Link.score:\n  Scalar field \"score\" must provide a scalar type.")
		})

		It("rejects reference fields without object type", func() {
			expectSchemaError(objectWithFields(graphql.Fields{
				"author": {Kind: graphql.FieldKindSingleReference},
			}), `SingleReference field "author" must provide an object type.`)
		})

		It("rejects invalid kinds", func() {
			expectSchemaError(objectWithFields(graphql.Fields{
				"author": {Kind: graphql.FieldKind(42)},
			}), `Field "author" has invalid kind 42.`)
		})

		It("rejects arguments without type", func() {
			expectSchemaError(objectWithFields(graphql.Fields{
				"score": {
					Kind:   graphql.FieldKindScalar,
					Scalar: graphql.ScalarInt,
					Args: graphql.ArgumentConfigMap{
						"factor": {},
					},
				},
			}), `Argument "factor" of field "score" must provide a type.`)
		})
	})
})

var _ = Describe("Field", func() {
	var link, user *graphql.Object

	BeforeEach(func() {
		user = scalarObject("User", map[string]graphql.Scalar{"id": graphql.ScalarInt})
		link = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Link",
			Fields: func() graphql.Fields {
				return graphql.Fields{
					"score": {
						Description: "Number of upvotes minus downvotes",
						Kind:        graphql.FieldKindScalar,
						Scalar:      graphql.ScalarInt,
						NonNull:     true,
					},
					"author": {
						Kind:    graphql.FieldKindSingleReference,
						Type:    user,
						NonNull: true,
						Args: graphql.ArgumentConfigMap{
							"author": {Type: graphql.ScalarInt, Description: "Overrides the author"},
						},
					},
					"voters": {
						Kind: graphql.FieldKindReferenceList,
						Type: user,
						Args: graphql.ArgumentConfigMap{
							"limit":  {Type: graphql.ScalarInt, DefaultValue: 10},
							"active": {Type: graphql.ScalarBoolean, NonNull: true},
						},
					},
					"replies": {
						Kind:           graphql.FieldKindComputedChildren,
						Type:           user,
						NonNull:        true,
						ElementNonNull: true,
					},
				}
			},
		})
	})

	It("describes its type", func() {
		Expect(link.Field("score").TypeString()).Should(Equal("Int!"))
		Expect(link.Field("author").TypeString()).Should(Equal("User!"))
		Expect(link.Field("voters").TypeString()).Should(Equal("[User]"))
		Expect(link.Field("replies").TypeString()).Should(Equal("[User!]!"))
	})

	It("exposes its definition", func() {
		score := link.Field("score")
		Expect(score.Name()).Should(Equal("score"))
		Expect(score.Description()).Should(Equal("Number of upvotes minus downvotes"))
		Expect(score.Kind()).Should(Equal(graphql.FieldKindScalar))
		Expect(score.Scalar()).Should(Equal(graphql.ScalarInt))
		Expect(score.Type()).Should(BeNil())
		Expect(score.NonNull()).Should(BeTrue())
		Expect(score.Args()).Should(BeEmpty())
		Expect(score.Resolver()).Should(BeNil())

		replies := link.Field("replies")
		Expect(replies.Kind().IsList()).Should(BeTrue())
		Expect(replies.ElementNonNull()).Should(BeTrue())
		Expect(link.Field("author").Kind().IsList()).Should(BeFalse())
	})

	It("sorts arguments by name", func() {
		voters := link.Field("voters")
		Expect(voters.Args()).Should(HaveLen(2))
		Expect(voters.Args()[0].Name()).Should(Equal("active"))
		Expect(voters.Args()[1].Name()).Should(Equal("limit"))
	})

	It("exposes arguments", func() {
		active := link.Field("voters").Arg("active")
		Expect(active.Type()).Should(Equal(graphql.ScalarBoolean))
		Expect(active.NonNull()).Should(BeTrue())
		Expect(active.TypeString()).Should(Equal("Boolean!"))
		Expect(active.HasDefaultValue()).Should(BeFalse())

		limit := link.Field("voters").Arg("limit")
		Expect(limit.TypeString()).Should(Equal("Int"))
		Expect(limit.HasDefaultValue()).Should(BeTrue())
		Expect(limit.DefaultValue()).Should(Equal(10))

		author := link.Field("author").Arg("author")
		Expect(author.Description()).Should(Equal("Overrides the author"))

		Expect(link.Field("voters").Arg("offset")).Should(BeNil())
	})

	It("names field kinds", func() {
		Expect(graphql.FieldKindScalar.String()).Should(Equal("Scalar"))
		Expect(graphql.FieldKindSingleReference.String()).Should(Equal("SingleReference"))
		Expect(graphql.FieldKindReferenceList.String()).Should(Equal("ReferenceList"))
		Expect(graphql.FieldKindComputedChildren.String()).Should(Equal("ComputedChildren"))
		Expect(graphql.FieldKind(42).String()).Should(Equal("<invalid>"))
	})
})
