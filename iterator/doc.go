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

// Package iterator documents the guidelines for using iterator pattern in linkboard. The pattern
// draws significant inspiration from the Iterator Guidelines established for Google Cloud Client
// Libraries for Go [0].
//
// A resource that can be traversed provides a method returning an iterator over its elements. When
// appropriated, the method is named after the elements (in plural) or after the selection. For
// example, store.Store provides
//
//	// CommentsWhere returns an iterator over the comments satisfying pred in insertion order.
//	func (s *Store) CommentsWhere(pred func(*Comment) bool) *CommentIterator {
//		...
//	}
//
// The result iterator has just one method Next for iterating over individual elements:
//
//	// Next returns the next matching comment. It returns iterator.Done when there are no more.
//	func (iter *CommentIterator) Next() (*Comment, error) {
//		...
//	}
//
// Work is done as Next is called, not when the iterator is created. That's what makes a
// computed relationship like the replies to a comment lazily evaluated: nothing is scanned until
// the executor asks for the first element.
//
// Now, let's show how the CommentIterator is used in code,
//
//	iter := s.CommentsWhere(func(c *store.Comment) bool { return c.IsTopLevel() })
//	for {
//		comment, err := iter.Next()
//		if err == iterator.Done {
//			break
//		} else if err != nil {
//			handleError(err)
//		}
//		process(comment)
//	}
//
// An iterator that can fail midway (e.g., resolver.ChildIterator detecting a cycle in the comment
// tree) returns the error from Next and should keep returning it on later calls.
//
// [0]: https://github.com/googleapis/google-cloud-go/wiki/Iterator-Guidelines
package iterator
