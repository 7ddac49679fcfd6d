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
	"sort"
	"strings"
)

// SuggestionList returns the options that are similar enough to input, most similar first. An
// option is kept when its edit distance to input is at most half the length of the longer of the
// two (and at least 1).
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}

	var candidates []candidate
	for _, option := range options {
		threshold := len(input) / 2
		if half := len(option) / 2; half > threshold {
			threshold = half
		}
		if threshold < 1 {
			threshold = 1
		}

		if distance := lexicalDistance(input, option); distance <= threshold {
			candidates = append(candidates, candidate{option, distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if len(candidates) == 0 {
		return nil
	}
	result := make([]string, len(candidates))
	for i := range candidates {
		result[i] = candidates[i].option
	}
	return result
}

// lexicalDistance computes the optimal string alignment distance between a and b: insertions,
// deletions, substitutions and swaps of adjacent characters each count as one edit. Strings that
// differ only in case are at distance 1.
func lexicalDistance(a, b string) int {
	if a == b {
		return 0
	}

	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}

	// Three rolling rows are enough since a swap looks back two rows.
	var (
		prevPrev = make([]int, len(b)+1)
		prev     = make([]int, len(b)+1)
		cur      = make([]int, len(b)+1)
	)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			d := prev[j] + 1
			if v := cur[j-1] + 1; v < d {
				d = v
			}
			if v := prev[j-1] + cost; v < d {
				d = v
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := prevPrev[j-2] + cost; v < d {
					d = v
				}
			}
			cur[j] = d
		}
		prevPrev, prev, cur = prev, cur, prevPrev
	}

	return prev[len(b)]
}
