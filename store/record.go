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

// Package store keeps the users, links and comments served by linkboard in memory.
//
// A Store is populated once from a Seed. Afterwards users and comments never change; links can be
// appended and their score adjusted, which package mutation does. Nothing is ever deleted. A Store
// does no locking: callers that share one between goroutines must serialize access themselves.
//
// Lookups return the stored records, not copies, so a change made through a returned *Link is
// visible to every later lookup.
package store

// User is an account that authors links and comments.
type User struct {
	ID       int    `json:"id" graphql:"id"`
	Username string `json:"username" graphql:"username"`
	About    string `json:"about" graphql:"about"`
}

// Link is a submitted URL. Comments lists the ids of its top-level discussion in display order.
type Link struct {
	ID          int    `json:"id" graphql:"id"`
	Author      int    `json:"author" graphql:"-"`
	URL         string `json:"url" graphql:"url"`
	Description string `json:"description" graphql:"description"`
	Score       int    `json:"score" graphql:"score"`
	Comments    []int  `json:"comments" graphql:"-"`
}

// Comment is a message in a discussion. Parent is the id of the comment it replies to, or nil for a
// top-level comment.
type Comment struct {
	ID      int    `json:"id" graphql:"id"`
	Parent  *int   `json:"parent" graphql:"-"`
	Author  int    `json:"author" graphql:"-"`
	Content string `json:"content" graphql:"content"`
}

// IsTopLevel returns true if the comment doesn't reply to another comment.
func (comment *Comment) IsTopLevel() bool {
	return comment.Parent == nil
}

// HasParent returns true if the comment replies to the comment with the given id. A nil id matches
// top-level comments.
func (comment *Comment) HasParent(id *int) bool {
	if comment.Parent == nil || id == nil {
		return comment.Parent == nil && id == nil
	}
	return *comment.Parent == *id
}
