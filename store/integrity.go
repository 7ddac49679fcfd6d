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

package store

import (
	"fmt"

	"github.com/botobag/linkboard/graphql"
)

// CheckIntegrity reports references that don't resolve (as ErrKindDanglingReference) and comments
// whose parent chain loops (as ErrKindCycleDetected). A Store with problems is still usable;
// resolving a broken reference fails at that position only.
func (s *Store) CheckIntegrity() graphql.Errors {
	const op graphql.Op = "store.CheckIntegrity"

	var errs graphql.Errors

	dangling := func(format string, args ...interface{}) {
		errs.Emplace(fmt.Sprintf(format, args...), op, graphql.ErrKindDanglingReference)
	}

	for _, link := range s.links {
		if _, ok := s.User(link.Author); !ok {
			dangling("link %d refers to unknown author %d", link.ID, link.Author)
		}
		for _, id := range link.Comments {
			if _, ok := s.Comment(id); !ok {
				dangling("link %d refers to unknown comment %d", link.ID, id)
			}
		}
	}

	for _, comment := range s.comments {
		if _, ok := s.User(comment.Author); !ok {
			dangling("comment %d refers to unknown author %d", comment.ID, comment.Author)
		}
		if comment.Parent != nil {
			if _, ok := s.Comment(*comment.Parent); !ok {
				dangling("comment %d refers to unknown parent %d", comment.ID, *comment.Parent)
			}
		}
	}

	for _, comment := range s.comments {
		if s.onParentCycle(comment) {
			errs.Emplace(fmt.Sprintf("comment %d is its own ancestor", comment.ID), op,
				graphql.ErrKindCycleDetected)
		}
	}

	return errs
}

// onParentCycle returns true if following parents from comment leads back to it.
func (s *Store) onParentCycle(comment *Comment) bool {
	visited := map[int]bool{}
	for c := comment; c.Parent != nil; {
		parent, ok := s.Comment(*c.Parent)
		if !ok {
			return false
		}
		if parent == comment {
			return true
		}
		if visited[parent.ID] {
			// Loops further up without passing through comment.
			return false
		}
		visited[parent.ID] = true
		c = parent
	}
	return false
}
