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

package resolver

import (
	"fmt"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/iterator"
	"github.com/botobag/linkboard/store"
	"go.uber.org/zap"
)

// ChildIterator iterates the replies of a comment. See package iterator for usage.
type ChildIterator struct {
	resolver *Resolver
	parentID *int
	comments *store.CommentIterator

	// Ids on the parent chain of parentID including parentID itself
	ancestors map[int]bool

	// Sticky error
	err error
}

// ChildrenOf returns an iterator over the comments whose parent is parentID in store order. A nil
// parentID selects the top-level comments. An id that doesn't exist has no children.
//
// Comments form a forest so the recursion through replies always ends. ChildrenOf still verifies
// that: it fails with graphql.ErrKindCycleDetected if the ancestors of parentID loop, and the
// iterator fails with the same kind if it meets a child that is also an ancestor.
func (r *Resolver) ChildrenOf(parentID *int) (*ChildIterator, error) {
	ancestors := map[int]bool{}
	if parentID != nil {
		for id := *parentID; ; {
			if ancestors[id] {
				return nil, r.cycleDetected(id)
			}
			ancestors[id] = true

			comment, ok := r.store.Comment(id)
			if !ok || comment.Parent == nil {
				break
			}
			id = *comment.Parent
		}
		// Copy so the caller can't change what we scan for.
		id := *parentID
		parentID = &id
	}

	return &ChildIterator{
		resolver:  r,
		parentID:  parentID,
		ancestors: ancestors,
		comments: r.store.CommentsWhere(func(comment *store.Comment) bool {
			return comment.HasParent(parentID)
		}),
	}, nil
}

func (r *Resolver) cycleDetected(id int) error {
	r.logger.Error("cycle in comment tree", zap.Int("comment", id))
	return graphql.NewError(fmt.Sprintf("comment %d is its own ancestor", id),
		graphql.Op("resolver.ChildrenOf"), graphql.ErrKindCycleDetected)
}

// Next returns the next reply. It returns iterator.Done when there are no more.
func (iter *ChildIterator) Next() (*store.Comment, error) {
	if iter.err != nil {
		return nil, iter.err
	}

	comment, err := iter.comments.Next()
	if err != nil {
		if err != iterator.Done {
			iter.err = err
		}
		return nil, err
	}

	if iter.ancestors[comment.ID] {
		iter.err = iter.resolver.cycleDetected(comment.ID)
		return nil, iter.err
	}

	return comment, nil
}
