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
	"github.com/botobag/linkboard/iterator"
)

// CommentIterator iterates comments matching a predicate. See package iterator for usage.
type CommentIterator struct {
	comments []*Comment
	pred     func(*Comment) bool
	pos      int
}

// Next returns the next matching comment. It returns iterator.Done when there are no more.
func (iter *CommentIterator) Next() (*Comment, error) {
	for iter.pos < len(iter.comments) {
		comment := iter.comments[iter.pos]
		iter.pos++
		if iter.pred == nil || iter.pred(comment) {
			return comment, nil
		}
	}
	return nil, iterator.Done
}
