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

// Package parser builds the query shape in package ast from query text.
//
// The accepted language is the subset of GraphQL the executor understands: query and mutation
// operations (named or anonymous, including the "{ ... }" shorthand), variable definitions on
// named scalar types with optional defaults, fields with aliases, arguments and nested selection
// sets, and Int, String, Boolean, null and variable values. Fragments, directives, list and object
// values are rejected with a syntax error.
package parser

import (
	"fmt"
	"strconv"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/graphql/ast"
	"github.com/botobag/linkboard/graphql/lexer"
	"github.com/botobag/linkboard/graphql/token"
)

// Parse parses the given query text into a Document.
func Parse(body string) (*ast.Document, error) {
	p := &parser{
		lexer: lexer.New(body),
	}
	return p.parseDocument()
}

type parser struct {
	lexer *lexer.Lexer
}

func locationOf(tok token.Token) ast.Location {
	return ast.Location{
		Line:   tok.Line,
		Column: tok.Column,
	}
}

func (p *parser) newSyntaxError(tok token.Token, description string) error {
	return graphql.NewError(
		fmt.Sprintf("Syntax Error: %s", description),
		graphql.ErrorLocation{
			Line:   tok.Line,
			Column: tok.Column,
		},
		graphql.ErrKindSyntax)
}

func (p *parser) peek() token.Token {
	return p.lexer.Token()
}

// If the next token is of the given kind, return true after advancing the lexer. Otherwise, do not
// change the parser state and return false.
func (p *parser) skip(tokenKind token.Kind) (bool, error) {
	if p.peek().Kind == tokenKind {
		_, err := p.lexer.Advance()
		return true, err
	}
	return false, nil
}

// If the next token is of the given kind, return that token after advancing the lexer. Otherwise,
// do not change the parser state and return error.
func (p *parser) expect(tokenKind token.Kind) (token.Token, error) {
	tok := p.peek()
	if tok.Kind == tokenKind {
		if _, err := p.lexer.Advance(); err != nil {
			return token.Token{}, err
		}
		return tok, nil
	}
	return token.Token{}, p.newSyntaxError(tok,
		fmt.Sprintf("Expected %v, found %s", tokenKind, tok.Description()))
}

func (p *parser) unexpected() error {
	tok := p.peek()
	return p.newSyntaxError(tok, fmt.Sprintf("Unexpected %s", tok.Description()))
}

func (p *parser) unsupported(what string) error {
	return p.newSyntaxError(p.peek(), fmt.Sprintf("%s are not supported", what))
}

// Converts a name lex token into a name string.
func (p *parser) parseName() (string, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// Document : Definition+
func (p *parser) parseDocument() (*ast.Document, error) {
	if _, err := p.expect(token.KindSOF); err != nil {
		return nil, err
	}

	document := &ast.Document{}
	for {
		operation, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		document.Operations = append(document.Operations, operation)

		if eof, err := p.skip(token.KindEOF); err != nil {
			return nil, err
		} else if eof {
			break
		}
	}

	return document, nil
}

// Definition : OperationDefinition
func (p *parser) parseDefinition() (*ast.OperationDefinition, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindLeftBrace:
		return p.parseQueryShorthand()

	case token.KindName:
		switch tok.Value {
		case "query", "mutation":
			return p.parseOperationDefinition()
		case "subscription":
			return nil, p.unsupported("Subscriptions")
		case "fragment":
			return nil, p.unsupported("Fragments")
		}
	}

	return nil, p.unexpected()
}

// OperationDefinition :
//   - SelectionSet
//   - OperationType Name? VariableDefinitions? SelectionSet
func (p *parser) parseQueryShorthand() (*ast.OperationDefinition, error) {
	loc := locationOf(p.peek())
	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.OperationDefinition{
		Loc:          loc,
		Type:         ast.OperationTypeQuery,
		SelectionSet: selectionSet,
	}, nil
}

func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return nil, err
	}

	operation := &ast.OperationDefinition{
		Loc:  locationOf(tok),
		Type: ast.OperationTypeQuery,
	}
	if tok.Value == "mutation" {
		operation.Type = ast.OperationTypeMutation
	}

	if p.peek().Kind == token.KindName {
		if operation.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if operation.VariableDefinitions, err = p.parseVariableDefinitions(); err != nil {
		return nil, err
	}

	if p.peek().Kind == token.KindAt {
		return nil, p.unsupported("Directives")
	}

	if operation.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return operation, nil
}

// VariableDefinitions : ( VariableDefinition+ )
func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if p.peek().Kind != token.KindLeftParen {
		return nil, nil
	}

	if _, err := p.expect(token.KindLeftParen); err != nil {
		return nil, err
	}

	var definitions []*ast.VariableDefinition
	for {
		definition, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)

		if done, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if done {
			return definitions, nil
		}
	}
}

// VariableDefinition : Variable : Type DefaultValue?
func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	loc := locationOf(p.peek())

	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	definition := &ast.VariableDefinition{
		Loc:  loc,
		Name: variable.Name,
		Type: t,
	}

	// DefaultValue : = Value[Const]
	if equals, err := p.skip(token.KindEquals); err != nil {
		return nil, err
	} else if equals {
		if definition.DefaultValue, err = p.parseValue(true /* isConst */); err != nil {
			return nil, err
		}
	}

	return definition, nil
}

// Type : NamedType | NamedType !
func (p *parser) parseType() (ast.TypeRef, error) {
	if p.peek().Kind == token.KindLeftBracket {
		return ast.TypeRef{}, p.unsupported("List types")
	}

	name, err := p.parseName()
	if err != nil {
		return ast.TypeRef{}, err
	}

	nonNull, err := p.skip(token.KindBang)
	if err != nil {
		return ast.TypeRef{}, err
	}

	return ast.TypeRef{
		Name:    name,
		NonNull: nonNull,
	}, nil
}

// Variable : $ Name
func (p *parser) parseVariable() (*ast.Variable, error) {
	tok, err := p.expect(token.KindDollar)
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	return &ast.Variable{
		Loc:  locationOf(tok),
		Name: name,
	}, nil
}

// SelectionSet : { Selection+ }
func (p *parser) parseSelectionSet() (ast.SelectionSet, error) {
	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var selectionSet ast.SelectionSet
	for {
		if p.peek().Kind == token.KindSpread {
			return nil, p.unsupported("Fragments")
		}

		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		selectionSet = append(selectionSet, field)

		if done, err := p.skip(token.KindRightBrace); err != nil {
			return nil, err
		} else if done {
			return selectionSet, nil
		}
	}
}

// Field : Alias? Name Arguments? SelectionSet?
//
// Alias : Name :
func (p *parser) parseField() (*ast.Field, error) {
	loc := locationOf(p.peek())

	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}

	field := &ast.Field{
		Loc:  loc,
		Name: nameOrAlias,
	}

	if colon, err := p.skip(token.KindColon); err != nil {
		return nil, err
	} else if colon {
		field.Alias = nameOrAlias
		if field.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if field.Arguments, err = p.parseArguments(); err != nil {
		return nil, err
	}

	if p.peek().Kind == token.KindAt {
		return nil, p.unsupported("Directives")
	}

	if p.peek().Kind == token.KindLeftBrace {
		if field.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}

	return field, nil
}

// Arguments : ( Argument+ )
func (p *parser) parseArguments() ([]*ast.Argument, error) {
	if p.peek().Kind != token.KindLeftParen {
		return nil, nil
	}

	if _, err := p.expect(token.KindLeftParen); err != nil {
		return nil, err
	}

	var arguments []*ast.Argument
	for {
		argument, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)

		if done, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if done {
			return arguments, nil
		}
	}
}

// Argument : Name : Value
func (p *parser) parseArgument() (*ast.Argument, error) {
	loc := locationOf(p.peek())

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue(false /* isConst */)
	if err != nil {
		return nil, err
	}

	return &ast.Argument{
		Loc:   loc,
		Name:  name,
		Value: value,
	}, nil
}

// Value[Const] :
//   - [~Const] Variable
//   - IntValue
//   - StringValue
//   - BooleanValue
//   - NullValue
func (p *parser) parseValue(isConst bool) (ast.Value, error) {
	tok := p.peek()
	loc := locationOf(tok)

	switch tok.Kind {
	case token.KindDollar:
		if !isConst {
			return p.parseVariable()
		}

	case token.KindInt:
		value, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.newSyntaxError(tok, fmt.Sprintf("Int cannot represent value: %s", tok.Value))
		}
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return &ast.IntValue{Loc: loc, Value: value}, nil

	case token.KindFloat:
		return nil, p.unsupported("Float values")

	case token.KindString:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return &ast.StringValue{Loc: loc, Value: tok.Value}, nil

	case token.KindName:
		var value ast.Value
		switch tok.Value {
		case "true", "false":
			value = &ast.BooleanValue{Loc: loc, Value: tok.Value == "true"}
		case "null":
			value = &ast.NullValue{Loc: loc}
		default:
			return nil, p.unsupported("Enum values")
		}
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return value, nil

	case token.KindLeftBracket:
		return nil, p.unsupported("List values")

	case token.KindLeftBrace:
		return nil, p.unsupported("Object values")
	}

	return nil, p.unexpected()
}
