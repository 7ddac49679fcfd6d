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

// Package lexer splits query text into tokens.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/token"
)

// Lexer is a stateful stream generator in that every time it is advanced, it returns the next token
// in the source. Assuming the source lexes, the final Token emitted by the lexer will be of kind
// EOF, after which the lexer will repeatedly return the same EOF token whenever called.
type Lexer struct {
	body string

	// The currently focused token
	token token.Token

	// Current offset into the body
	pos int

	// Current line number (1-based) and the offset at which it starts
	line      int
	lineStart int
}

// New initializes a Lexer for the given query text.
func New(body string) *Lexer {
	return &Lexer{
		body: body,
		token: token.Token{
			Kind:   token.KindSOF,
			Line:   1,
			Column: 1,
		},
		line: 1,
	}
}

// Token returns current token.
func (lexer *Lexer) Token() token.Token {
	return lexer.token
}

// Advance the token stream to the next non-ignored token.
func (lexer *Lexer) Advance() (token.Token, error) {
	if lexer.token.Kind != token.KindEOF {
		tok, err := lexer.lexToken()
		if err != nil {
			return token.Token{}, err
		}
		lexer.token = tok
	}
	return lexer.token, nil
}

func (lexer *Lexer) column(pos int) uint {
	return uint(pos - lexer.lineStart + 1)
}

func (lexer *Lexer) newSyntaxError(pos int, description string) error {
	return graphql.NewError(
		fmt.Sprintf("Syntax Error: %s", description),
		graphql.ErrorLocation{
			Line:   uint(lexer.line),
			Column: lexer.column(pos),
		},
		graphql.ErrKindSyntax)
}

func (lexer *Lexer) makeToken(kind token.Kind, start int, value string) token.Token {
	return token.Token{
		Kind:   kind,
		Line:   uint(lexer.line),
		Column: lexer.column(start),
		Value:  value,
	}
}

// skipIgnored skips whitespace, line terminators, commas, byte order marks and comments.
func (lexer *Lexer) skipIgnored() {
	body := lexer.body
	for lexer.pos < len(body) {
		switch c := body[lexer.pos]; c {
		case ' ', '\t', ',':
			lexer.pos++

		case '\n':
			lexer.pos++
			lexer.line++
			lexer.lineStart = lexer.pos

		case '\r':
			lexer.pos++
			if lexer.pos < len(body) && body[lexer.pos] == '\n' {
				lexer.pos++
			}
			lexer.line++
			lexer.lineStart = lexer.pos

		case '#':
			for lexer.pos < len(body) && body[lexer.pos] != '\n' && body[lexer.pos] != '\r' {
				lexer.pos++
			}

		default:
			if strings.HasPrefix(body[lexer.pos:], "\ufeff") {
				lexer.pos += len("\ufeff")
				continue
			}
			return
		}
	}
}

var punctuators = map[byte]token.Kind{
	'!': token.KindBang,
	'$': token.KindDollar,
	'&': token.KindAmp,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	':': token.KindColon,
	'=': token.KindEquals,
	'@': token.KindAt,
	'[': token.KindLeftBracket,
	']': token.KindRightBracket,
	'{': token.KindLeftBrace,
	'|': token.KindPipe,
	'}': token.KindRightBrace,
}

func (lexer *Lexer) lexToken() (token.Token, error) {
	lexer.skipIgnored()

	body := lexer.body
	start := lexer.pos
	if start >= len(body) {
		return lexer.makeToken(token.KindEOF, start, ""), nil
	}

	c := body[start]
	if kind, ok := punctuators[c]; ok {
		lexer.pos++
		return lexer.makeToken(kind, start, ""), nil
	}

	switch {
	case c == '.':
		if strings.HasPrefix(body[start:], "...") {
			lexer.pos += 3
			return lexer.makeToken(token.KindSpread, start, ""), nil
		}

	case c == '_' || isLetter(c):
		return lexer.readName(), nil

	case c == '-' || isDigit(c):
		return lexer.readNumber()

	case c == '"':
		return lexer.readString()
	}

	return token.Token{}, lexer.newSyntaxError(start, fmt.Sprintf("Cannot parse the unexpected character %s.",
		printChar(body[start:])))
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func printChar(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r < 0x20 || r == utf8.RuneError {
		return fmt.Sprintf(`"\u%04X"`, r)
	}
	return strconv.Quote(string(r))
}

// readName reads an alphanumeric + underscore name.
func (lexer *Lexer) readName() token.Token {
	body := lexer.body
	start := lexer.pos
	lexer.pos++
	for lexer.pos < len(body) {
		c := body[lexer.pos]
		if c != '_' && !isLetter(c) && !isDigit(c) {
			break
		}
		lexer.pos++
	}
	return lexer.makeToken(token.KindName, start, body[start:lexer.pos])
}

// readNumber reads an Int or a Float token. Float tokens are lexed so the parser can report them
// but no field accepts them.
func (lexer *Lexer) readNumber() (token.Token, error) {
	body := lexer.body
	start := lexer.pos
	isFloat := false

	if body[lexer.pos] == '-' {
		lexer.pos++
	}

	if lexer.pos < len(body) && body[lexer.pos] == '0' {
		lexer.pos++
		if lexer.pos < len(body) && isDigit(body[lexer.pos]) {
			return token.Token{}, lexer.newSyntaxError(lexer.pos,
				fmt.Sprintf("Invalid number, unexpected digit after 0: %s.", printChar(body[lexer.pos:])))
		}
	} else if err := lexer.readDigits(); err != nil {
		return token.Token{}, err
	}

	if lexer.pos < len(body) && body[lexer.pos] == '.' {
		isFloat = true
		lexer.pos++
		if err := lexer.readDigits(); err != nil {
			return token.Token{}, err
		}
	}

	if lexer.pos < len(body) && (body[lexer.pos] == 'e' || body[lexer.pos] == 'E') {
		isFloat = true
		lexer.pos++
		if lexer.pos < len(body) && (body[lexer.pos] == '+' || body[lexer.pos] == '-') {
			lexer.pos++
		}
		if err := lexer.readDigits(); err != nil {
			return token.Token{}, err
		}
	}

	kind := token.KindInt
	if isFloat {
		kind = token.KindFloat
	}
	return lexer.makeToken(kind, start, body[start:lexer.pos]), nil
}

func (lexer *Lexer) readDigits() error {
	body := lexer.body
	if lexer.pos >= len(body) {
		return lexer.newSyntaxError(lexer.pos, "Invalid number, expected digit but got: <EOF>.")
	}
	if !isDigit(body[lexer.pos]) {
		return lexer.newSyntaxError(lexer.pos,
			fmt.Sprintf("Invalid number, expected digit but got: %s.", printChar(body[lexer.pos:])))
	}
	for lexer.pos < len(body) && isDigit(body[lexer.pos]) {
		lexer.pos++
	}
	return nil
}

// readString reads a quoted string with escapes. Block strings are not supported.
func (lexer *Lexer) readString() (token.Token, error) {
	var (
		body  = lexer.body
		start = lexer.pos
		value strings.Builder
	)

	lexer.pos++
	for lexer.pos < len(body) {
		c := body[lexer.pos]
		switch {
		case c == '"':
			lexer.pos++
			return lexer.makeToken(token.KindString, start, value.String()), nil

		case c == '\n' || c == '\r':
			return token.Token{}, lexer.newSyntaxError(lexer.pos, "Unterminated string.")

		case c < 0x20 && c != '\t':
			return token.Token{}, lexer.newSyntaxError(lexer.pos,
				fmt.Sprintf("Invalid character within String: %s.", printChar(body[lexer.pos:])))

		case c == '\\':
			if err := lexer.readEscape(&value); err != nil {
				return token.Token{}, err
			}

		default:
			value.WriteByte(c)
			lexer.pos++
		}
	}

	return token.Token{}, lexer.newSyntaxError(lexer.pos, "Unterminated string.")
}

var escapes = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

func (lexer *Lexer) readEscape(value *strings.Builder) error {
	body := lexer.body
	escapeStart := lexer.pos
	lexer.pos++
	if lexer.pos >= len(body) {
		return lexer.newSyntaxError(lexer.pos, "Unterminated string.")
	}

	c := body[lexer.pos]
	if unescaped, ok := escapes[c]; ok {
		value.WriteByte(unescaped)
		lexer.pos++
		return nil
	}

	if c == 'u' && lexer.pos+5 <= len(body) {
		code, err := strconv.ParseUint(body[lexer.pos+1:lexer.pos+5], 16, 32)
		if err == nil {
			value.WriteRune(rune(code))
			lexer.pos += 5
			return nil
		}
	}

	end := lexer.pos + 1
	if c == 'u' {
		end = lexer.pos + 5
		if end > len(body) {
			end = len(body)
		}
	}
	return lexer.newSyntaxError(escapeStart,
		fmt.Sprintf("Invalid character escape sequence: %s.", body[escapeStart:end]))
}
