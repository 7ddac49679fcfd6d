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

// Package token defines the lexical tokens of query documents.
package token

import (
	"fmt"
)

// Kind describes the different kinds of tokens that the lexer emits.
type Kind int

// Enumeration of Kind
const (
	// <SOF>
	KindSOF Kind = iota + 1
	// <EOF>
	KindEOF
	// !
	KindBang
	// $
	KindDollar
	// &
	KindAmp
	// (
	KindLeftParen
	// )
	KindRightParen
	// ...
	KindSpread
	// :
	KindColon
	// =
	KindEquals
	// @
	KindAt
	// [
	KindLeftBracket
	// ]
	KindRightBracket
	// {
	KindLeftBrace
	// |
	KindPipe
	// }
	KindRightBrace
	// Name
	KindName
	// Int
	KindInt
	// Float
	KindFloat
	// String
	KindString
)

var _ fmt.Stringer = Kind(0)

var kindNames = map[Kind]string{
	KindSOF:          "<SOF>",
	KindEOF:          "<EOF>",
	KindBang:         "!",
	KindDollar:       "$",
	KindAmp:          "&",
	KindLeftParen:    "(",
	KindRightParen:   ")",
	KindSpread:       "...",
	KindColon:        ":",
	KindEquals:       "=",
	KindAt:           "@",
	KindLeftBracket:  "[",
	KindRightBracket: "]",
	KindLeftBrace:    "{",
	KindPipe:         "|",
	KindRightBrace:   "}",
	KindName:         "Name",
	KindInt:          "Int",
	KindFloat:        "Float",
	KindString:       "String",
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	panic("unsupported token kind")
}

// Token represents a range of characters represented by a lexical token within a query source.
type Token struct {
	// The kind of Token.
	Kind Kind

	// 1-based line and column at which this Token begins in the source
	Line   uint
	Column uint

	// For punctuation tokens, this is empty. For other kinds of token, this represents the
	// interpreted value of the token (e.g., the unescaped content of a string).
	Value string
}

// Description describe a token as a string for debugging.
func (token Token) Description() string {
	if len(token.Value) > 0 {
		return fmt.Sprintf(`%s "%s"`, token.Kind.String(), token.Value)
	}
	return token.Kind.String()
}
