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
	"bytes"
	_ "embed" // for the default seed
	"fmt"
	"io"

	"github.com/botobag/linkboard/graphql"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Seed is the initial content of a Store.
type Seed struct {
	Users    []User    `json:"users"`
	Links    []Link    `json:"links"`
	Comments []Comment `json:"comments"`
}

//go:embed seed.json
var defaultSeed []byte

// DefaultSeed returns the built-in data set: four users, two links and a small comment thread.
func DefaultSeed() Seed {
	seed, err := LoadSeed(bytes.NewReader(defaultSeed))
	if err != nil {
		panic(fmt.Sprintf("malformed default seed: %s", err))
	}
	return seed
}

// LoadSeed decodes a Seed from a JSON document of the form
//
//	{"users": [...], "links": [...], "comments": [...]}
//
// Unknown fields are rejected.
func LoadSeed(r io.Reader) (Seed, error) {
	const op graphql.Op = "store.LoadSeed"

	var seed Seed
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&seed); err != nil {
		return Seed{}, graphql.NewError("cannot decode seed", op, graphql.ErrKindValidation, err)
	}
	return seed, nil
}
