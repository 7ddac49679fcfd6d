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

// Package schema defines the linkboard schema: the Query and Mutation root types and the Link, User
// and Comment objects, with resolvers reading from a store through package resolver and writing
// through package mutation.
//
//	type Query {
//	  allLinks: [Link!]!
//	  link(id: Int!): Link
//	  allUsers: [User]
//	  user(id: Int!): User
//	  allComments: [Comment!]!
//	  comment(id: Int!): Comment
//	  comments(id: Int): [Comment!]!
//	}
//
//	type Link {
//	  id: Int!
//	  url: String!
//	  description: String!
//	  score: Int!
//	  author(author: Int): User!
//	  comments: [Comment]!
//	}
//
//	type User {
//	  id: Int!
//	  username: String!
//	  about: String!
//	}
//
//	type Comment {
//	  id: Int!
//	  parent: Comment
//	  author(author: Int): User!
//	  content: String!
//	  comments(id: Int): [Comment!]!
//	}
//
//	type Mutation {
//	  upvoteLink(id: Int!): Link
//	  downvoteLink(id: Int!): Link
//	  createLink(author: Int!, description: String!, url: String!): Link
//	}
//
// Looking up a record by id that doesn't exist gives null. Arguments on a relationship select an
// alternate target: Link.author(author: 2) is user 2 instead of the link's author, and
// Comment.comments(id: 4) are the replies of comment 4 (or the top-level comments for id: null)
// instead of the comment's own replies.
package schema

import (
	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/mutation"
	"github.com/botobag/linkboard/resolver"
)

// New builds the schema over the given resolver and mutation executor.
func New(r *resolver.Resolver, m *mutation.Executor) (*graphql.Schema, error) {
	types := newTypes(r, m)
	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:    types.query,
		Mutation: types.mutation,
	})
}

// MustNew is a convenience function equivalent to New but panics on failure instead of returning
// an error.
func MustNew(r *resolver.Resolver, m *mutation.Executor) *graphql.Schema {
	schema, err := New(r, m)
	if err != nil {
		panic(err)
	}
	return schema
}
