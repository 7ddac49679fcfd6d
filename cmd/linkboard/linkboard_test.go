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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/botobag/linkboard/graphql"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("linkboard", func() {
	var (
		logs   *observer.ObservedLogs
		stdin  string
		stdout *bytes.Buffer
		dir    string
	)

	run := func(args ...string) error {
		// Observe entries at the level the configured logger would write.
		cmd := newRootCommand(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			var observed zapcore.Core
			observed, logs = observer.New(zapcore.LevelOf(core))
			return observed
		}))
		cmd.SetArgs(args)
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetOut(stdout)
		cmd.SetErr(&bytes.Buffer{})
		return cmd.Execute()
	}

	writeFile := func(name string, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0600)).Should(Succeed())
		return path
	}

	BeforeEach(func() {
		stdin = ""
		stdout = &bytes.Buffer{}

		var err error
		dir, err = os.MkdirTemp("", "linkboard")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	Describe("query", func() {
		It("runs the query given as argument", func() {
			Expect(run("query", "{ link(id: 0) { id score author { username } } }")).Should(Succeed())
			Expect(stdout.String()).Should(MatchJSON(`{
				"data": {"link": {"id": 0, "score": 5, "author": {"username": "giangi"}}}
			}`))
		})

		It("reads the query from the standard input", func() {
			stdin = "{ comments { id comments { id } } }"
			Expect(run("query")).Should(Succeed())
			Expect(stdout.String()).Should(MatchJSON(`{
				"data": {"comments": [
					{"id": 0, "comments": [{"id": 1}, {"id": 3}]},
					{"id": 4, "comments": []}
				]}
			}`))
		})

		It("passes variables", func() {
			Expect(run("query", "--variables", `{"id": 1}`,
				"query ($id: Int!) { user(id: $id) { username } }")).Should(Succeed())
			Expect(stdout.String()).Should(MatchJSON(`{"data": {"user": {"username": "giangi"}}}`))
		})

		It("selects the operation by name", func() {
			Expect(run("query", "--operation", "Second",
				"query First { user(id: 0) { id } } query Second { user(id: 3) { id } }")).Should(Succeed())
			Expect(stdout.String()).Should(MatchJSON(`{"data": {"user": {"id": 3}}}`))
		})

		It("applies mutations", func() {
			Expect(run("query", "mutation { upvoteLink(id: 0) { score } }")).Should(Succeed())
			Expect(stdout.String()).Should(MatchJSON(`{"data": {"upvoteLink": {"score": 6}}}`))
			Expect(logs.FilterMessage("store populated").Len()).Should(Equal(1))
		})

		It("prints field errors next to the data", func() {
			Expect(run("query", "mutation { downvoteLink(id: 9) { score } }")).Should(Succeed())
			Expect(stdout.String()).Should(ContainSubstring(`"NOT_FOUND"`))
			Expect(stdout.String()).Should(ContainSubstring(`"downvoteLink":null`))
		})

		It("fails with errors and no data on a syntax error", func() {
			Expect(run("query", "{ link(id: 0) { id ")).Should(MatchError(errNoData))
			Expect(stdout.String()).Should(ContainSubstring(`"errors"`))
			Expect(stdout.String()).ShouldNot(ContainSubstring(`"data"`))
		})

		It("fails with errors and no data when a variable is missing", func() {
			Expect(run("query", "query ($id: Int!) { user(id: $id) { id } }")).Should(MatchError(errNoData))
			Expect(stdout.String()).ShouldNot(ContainSubstring(`"data"`))
		})

		It("rejects an empty query", func() {
			stdin = "  \n"
			err := run("query")
			Expect(err).Should(HaveOccurred())
			Expect(graphql.IsKind(err, graphql.ErrKindValidation)).Should(BeTrue())
			Expect(stdout.String()).Should(BeEmpty())
		})

		It("rejects invalid variables", func() {
			err := run("query", "--variables", `{"id":`, "{ user(id: 0) { id } }")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("variables are invalid JSON"))
		})

		It("rejects more than one argument", func() {
			Expect(run("query", "{ a }", "{ b }")).ShouldNot(Succeed())
		})
	})

	Describe("seed", func() {
		It("loads the seed file given on the command line", func() {
			path := writeFile("seed.json", `{
				"users": [{"id": 7, "username": "solo", "about": ""}],
				"links": [{"id": 3, "author": 7, "url": "https://x.example", "description": "x", "score": 1, "comments": []}],
				"comments": []
			}`)
			Expect(run("query", "--seed", path, "{ allLinks { id author { username } } }")).Should(Succeed())
			Expect(stdout.String()).Should(MatchJSON(`{"data": {"allLinks": [{"id": 3, "author": {"username": "solo"}}]}}`))
		})

		It("loads the seed file named in the config", func() {
			seedPath := writeFile("seed.json", `{"users": [], "links": [], "comments": []}`)
			configPath := writeFile("config.yaml", "seed: "+seedPath+"\n")
			Expect(run("query", "--config", configPath, "{ allLinks { id } }")).Should(Succeed())
			Expect(stdout.String()).Should(MatchJSON(`{"data": {"allLinks": []}}`))
		})

		It("logs integrity problems as warnings", func() {
			path := writeFile("seed.json", `{
				"users": [],
				"links": [{"id": 0, "author": 5, "url": "u", "description": "d", "score": 0, "comments": [8]}],
				"comments": []
			}`)
			Expect(run("query", "--seed", path, "{ allLinks { id } }")).Should(Succeed())

			warnings := logs.FilterMessage("seed integrity").FilterLevelExact(zapcore.WarnLevel).All()
			Expect(warnings).Should(HaveLen(2))
			Expect(warnings[0].ContextMap()).Should(HaveKeyWithValue("problem", "link 0 refers to unknown author 5"))
			Expect(warnings[1].ContextMap()).Should(HaveKeyWithValue("problem", "link 0 refers to unknown comment 8"))
		})

		It("fails on a missing seed file", func() {
			err := run("query", "--seed", filepath.Join(dir, "nowhere.json"), "{ allLinks { id } }")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("cannot open seed file"))
		})

		It("fails on a malformed seed file", func() {
			path := writeFile("seed.json", `{"users": [{"id": 0, "nickname": "x"}]}`)
			err := run("query", "--seed", path, "{ allLinks { id } }")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("cannot decode seed"))
		})
	})

	Describe("config", func() {
		It("rejects an invalid log level flag", func() {
			err := run("query", "--log-level", "loud", "{ allLinks { id } }")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("log.level"))
			Expect(stdout.String()).Should(BeEmpty())
		})

		It("rejects unknown keys in the config file", func() {
			path := writeFile("config.yaml", "colour: blue\n")
			Expect(run("query", "--config", path, "{ allLinks { id } }")).ShouldNot(Succeed())
		})

		It("fails on a missing config file", func() {
			err := run("query", "--config", filepath.Join(dir, "nowhere.yaml"), "{ allLinks { id } }")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("cannot open config file"))
		})

		It("validates the address given to serve before listening", func() {
			err := run("serve", "--addr", "not an address")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("server.addr"))
		})

		It("filters logs below the configured level", func() {
			Expect(run("query", "--log-level", "warn", "{ allLinks { id } }")).Should(Succeed())
			Expect(logs.FilterMessage("store populated").Len()).Should(Equal(0))
		})
	})
})
