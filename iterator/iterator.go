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

package iterator

type done struct{}

func (done) Error() string {
	return "no more items in iterator"
}

// Done is returned by an iterator's Next method when the iteration is complete.
var Done error = done{}

// Collect calls next until it returns Done and returns the items in the order they were produced.
// On any other error, Collect stops and returns the items produced so far along with the error.
func Collect[T any](next func() (T, error)) ([]T, error) {
	var items []T
	for {
		item, err := next()
		if err == Done {
			return items, nil
		} else if err != nil {
			return items, err
		}
		items = append(items, item)
	}
}
