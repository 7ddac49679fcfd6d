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

// Package resolver follows references between records in a store.Store.
//
// Single references (a link's author, a comment's author and parent) resolve to the record they
// name. A reference that names a missing record is a data-integrity problem: it fails with an error
// of kind graphql.ErrKindDanglingReference and is logged as a warning. The comment tree is never
// stored forward; ChildrenOf computes the replies of a comment by scanning the store when asked.
package resolver

import (
	"fmt"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/store"
	"go.uber.org/zap"
)

// Resolver resolves references against a Store.
type Resolver struct {
	store  *store.Store
	logger *zap.Logger
}

// New creates a Resolver over s. A nil logger discards logs.
func New(s *store.Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		store:  s,
		logger: logger.Named("resolver"),
	}
}

// Store returns the store being resolved against.
func (r *Resolver) Store() *store.Store {
	return r.store
}

// CommentRef is the outcome of resolving one entry of a list of comment ids. Exactly one of
// Comment and Err is set.
type CommentRef struct {
	ID      int
	Comment *store.Comment
	Err     error
}

func (r *Resolver) danglingReference(op graphql.Op, from string, collection string, id int) error {
	r.logger.Warn("dangling reference",
		zap.String("op", string(op)),
		zap.String("from", from),
		zap.String("collection", collection),
		zap.Int("id", id))

	return graphql.NewError(fmt.Sprintf("%s refers to %s %d which does not exist", from, collection, id),
		op, graphql.ErrKindDanglingReference)
}

// Author returns the user with the given id. from describes the record holding the reference for
// the error message (e.g., "link 0").
func (r *Resolver) Author(userID int, from string) (*store.User, error) {
	if user, ok := r.store.User(userID); ok {
		return user, nil
	}
	return nil, r.danglingReference("resolver.Author", from, "user", userID)
}

// LinkAuthor returns the author of link.
func (r *Resolver) LinkAuthor(link *store.Link) (*store.User, error) {
	return r.Author(link.Author, fmt.Sprintf("link %d", link.ID))
}

// CommentAuthor returns the author of comment.
func (r *Resolver) CommentAuthor(comment *store.Comment) (*store.User, error) {
	return r.Author(comment.Author, fmt.Sprintf("comment %d", comment.ID))
}

// CommentParent returns the comment that comment replies to, or nil for a top-level comment.
func (r *Resolver) CommentParent(comment *store.Comment) (*store.Comment, error) {
	if comment.Parent == nil {
		return nil, nil
	}
	if parent, ok := r.store.Comment(*comment.Parent); ok {
		return parent, nil
	}
	return nil, r.danglingReference("resolver.CommentParent", fmt.Sprintf("comment %d", comment.ID),
		"comment", *comment.Parent)
}

// LinkComments resolves the comment ids listed by link in order. An id that doesn't resolve is
// kept at its position with a dangling reference error.
func (r *Resolver) LinkComments(link *store.Link) []CommentRef {
	refs := make([]CommentRef, len(link.Comments))
	for i, id := range link.Comments {
		refs[i].ID = id
		if comment, ok := r.store.Comment(id); ok {
			refs[i].Comment = comment
		} else {
			refs[i].Err = r.danglingReference("resolver.LinkComments", fmt.Sprintf("link %d", link.ID),
				"comment", id)
		}
	}
	return refs
}
