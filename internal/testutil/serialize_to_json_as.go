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

package testutil

import (
	"fmt"

	"github.com/json-iterator/go"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SerializeToJSONAs succeeds if actual and expected encode to equivalent JSON documents. Key order
// and formatting don't matter.
//
//		Expect(err).Should(SerializeToJSONAs(map[string]interface{}{
//			"message": "Couldn't find link with id 9",
//			"extensions": map[string]interface{}{"code": "NOT_FOUND"},
//		}))
func SerializeToJSONAs(expected interface{}) types.GomegaMatcher {
	return gomega.WithTransform(encodeJSON, gomega.MatchJSON(encodeJSON(expected)))
}

func encodeJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("SerializeToJSONAs cannot encode %#v into JSON: %s", v, err))
	}
	return data
}
