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

package lexer_test

import (
	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/lexer"
	"github.com/botobag/linkboard/graphql/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func lexOne(body string) (token.Token, error) {
	return lexer.New(body).Advance()
}

func lexAll(body string) []token.Token {
	var (
		l      = lexer.New(body)
		tokens []token.Token
	)
	for {
		tok, err := l.Advance()
		Expect(err).ShouldNot(HaveOccurred())
		tokens = append(tokens, tok)
		if tok.Kind == token.KindEOF {
			return tokens
		}
	}
}

func lexErr(body string) *graphql.Error {
	var (
		l   = lexer.New(body)
		err error
	)
	for err == nil {
		var tok token.Token
		tok, err = l.Advance()
		if err == nil && tok.Kind == token.KindEOF {
			Fail("expected a syntax error")
		}
	}
	Expect(graphql.IsKind(err, graphql.ErrKindSyntax)).Should(BeTrue())
	return err.(*graphql.Error)
}

var _ = Describe("Lexer", func() {
	It("skips whitespace, commas and comments", func() {
		tok, err := lexOne("\n\n    # comment\n  ,, foo  ")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok).Should(Equal(token.Token{
			Kind:   token.KindName,
			Line:   4,
			Column: 6,
			Value:  "foo",
		}))
	})

	It("skips BOM header", func() {
		tok, err := lexOne("\ufeff foo")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Value).Should(Equal("foo"))
		Expect(tok.Column).Should(Equal(uint(5)))
	})

	It("tracks lines across \\r\\n", func() {
		tokens := lexAll("a\r\nb\rc")
		Expect(tokens[1].Line).Should(Equal(uint(2)))
		Expect(tokens[2].Line).Should(Equal(uint(3)))
		Expect(tokens[2].Column).Should(Equal(uint(1)))
	})

	It("lexes punctuation", func() {
		kinds := []token.Kind{}
		for _, tok := range lexAll("! $ ( ) ... : = @ [ ] { } | &") {
			kinds = append(kinds, tok.Kind)
		}
		Expect(kinds).Should(Equal([]token.Kind{
			token.KindBang, token.KindDollar, token.KindLeftParen, token.KindRightParen,
			token.KindSpread, token.KindColon, token.KindEquals, token.KindAt,
			token.KindLeftBracket, token.KindRightBracket, token.KindLeftBrace, token.KindRightBrace,
			token.KindPipe, token.KindAmp, token.KindEOF,
		}))
	})

	It("lexes numbers", func() {
		tokens := lexAll("4 -4 0 9 1.5 -1.5e3 2E+10")
		Expect(tokens[0]).Should(matchToken(token.KindInt, "4"))
		Expect(tokens[1]).Should(matchToken(token.KindInt, "-4"))
		Expect(tokens[2]).Should(matchToken(token.KindInt, "0"))
		Expect(tokens[3]).Should(matchToken(token.KindInt, "9"))
		Expect(tokens[4]).Should(matchToken(token.KindFloat, "1.5"))
		Expect(tokens[5]).Should(matchToken(token.KindFloat, "-1.5e3"))
		Expect(tokens[6]).Should(matchToken(token.KindFloat, "2E+10"))
	})

	It("lexes strings", func() {
		tokens := lexAll(`"simple" "" "quote \"" "escaped \n\t\\\/" "unicode é"`)
		Expect(tokens[0].Value).Should(Equal("simple"))
		Expect(tokens[1].Kind).Should(Equal(token.KindString))
		Expect(tokens[1].Value).Should(Equal(""))
		Expect(tokens[2].Value).Should(Equal(`quote "`))
		Expect(tokens[3].Value).Should(Equal("escaped \n\t\\/"))
		Expect(tokens[4].Value).Should(Equal("unicode é"))
	})

	It("reports lex errors with locations", func() {
		err := lexErr("\n  ?")
		Expect(err.Message).Should(Equal(`Syntax Error: Cannot parse the unexpected character "?".`))
		Expect(err.Locations).Should(Equal([]graphql.ErrorLocation{{Line: 2, Column: 3}}))
		Expect(err.Extensions).Should(HaveKeyWithValue("code", "SYNTAX_ERROR"))

		Expect(lexErr(`"unterminated`).Message).Should(Equal("Syntax Error: Unterminated string."))
		Expect(lexErr("\"multi\nline\"").Message).Should(Equal("Syntax Error: Unterminated string."))
		Expect(lexErr(`"bad \x esc"`).Message).Should(Equal(`Syntax Error: Invalid character escape sequence: \x.`))
		Expect(lexErr("00").Message).Should(Equal(`Syntax Error: Invalid number, unexpected digit after 0: "0".`))
		Expect(lexErr("1.").Message).Should(Equal("Syntax Error: Invalid number, expected digit but got: <EOF>."))
		Expect(lexErr("1.a").Message).Should(Equal(`Syntax Error: Invalid number, expected digit but got: "a".`))
		Expect(lexErr("..").Message).Should(Equal(`Syntax Error: Cannot parse the unexpected character ".".`))
	})

	It("keeps returning EOF", func() {
		l := lexer.New("")
		for i := 0; i < 3; i++ {
			tok, err := l.Advance()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(tok.Kind).Should(Equal(token.KindEOF))
		}
	})
})

func matchToken(kind token.Kind, value string) OmegaMatcher {
	return And(
		WithTransform(func(tok token.Token) token.Kind { return tok.Kind }, Equal(kind)),
		WithTransform(func(tok token.Token) string { return tok.Value }, Equal(value)),
	)
}
