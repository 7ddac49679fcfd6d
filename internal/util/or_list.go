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

package util

import (
	"strings"
)

const maxSuggestions = 5

// QuotedOrList turns ["A", "B", "C"] into `"A", "B", or "C"`. At most five items are listed.
func QuotedOrList(items []string) string {
	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			if len(items) > 2 {
				b.WriteString(", ")
			} else {
				b.WriteString(" ")
			}
			if i == len(items)-1 {
				b.WriteString("or ")
			}
		}
		b.WriteByte('"')
		b.WriteString(item)
		b.WriteByte('"')
	}
	return b.String()
}

// DidYouMean appends a " Did you mean ...?" hint listing the suggestions to message. The message
// is returned unchanged when there are no suggestions.
func DidYouMean(message string, suggestions []string) string {
	if len(suggestions) == 0 {
		return message
	}
	return message + " Did you mean " + QuotedOrList(suggestions) + "?"
}
