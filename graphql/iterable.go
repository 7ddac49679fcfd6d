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

package graphql

// Iterator enumerates values lazily. Next returns iterator.Done when there are no more values.
type Iterator interface {
	Next() (interface{}, error)
}

// Iterable can be returned by resolvers of list fields in place of a slice. The executor pulls its
// values only while completing the field, so the work behind them is deferred until requested.
type Iterable interface {
	Iterator() Iterator
}

// SizedIterable is an Iterable that knows its size in advance.
type SizedIterable interface {
	Iterable

	// Size returns the number of values in the iterable.
	Size() int
}
