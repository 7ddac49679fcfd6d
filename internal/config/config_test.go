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

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/internal/config"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "linkboard-config")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	writeFile := func(content string) string {
		path := filepath.Join(dir, "linkboard.yaml")
		Expect(os.WriteFile(path, []byte(content), 0600)).Should(Succeed())
		return path
	}

	It("loads defaults without a file", func() {
		cfg, err := config.Load("")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg).Should(Equal(config.Default()))
		Expect(cfg.Server.Addr).Should(Equal(":4000"))
		Expect(cfg.Log.Level).Should(Equal("info"))
	})

	It("overlays the file on defaults", func() {
		cfg, err := config.Load(writeFile(`
seed: /var/lib/linkboard/seed.json
server:
  addr: localhost:8080
  read_timeout: 3s
  cors_origins:
    - https://example.com
log:
  level: debug
`))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg.Seed).Should(Equal("/var/lib/linkboard/seed.json"))
		Expect(cfg.Server.Addr).Should(Equal("localhost:8080"))
		Expect(cfg.Server.ReadTimeout).Should(Equal(3 * time.Second))
		Expect(cfg.Server.CORSOrigins).Should(Equal([]string{"https://example.com"}))
		Expect(cfg.Log.Level).Should(Equal("debug"))

		// Untouched keys keep their defaults.
		Expect(cfg.Server.WriteTimeout).Should(Equal(10 * time.Second))
		Expect(cfg.Server.MaxBodySize).Should(Equal(uint(1 << 20)))
		Expect(cfg.Log.Format).Should(Equal("json"))
	})

	It("accepts an empty file", func() {
		cfg, err := config.Load(writeFile(""))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg).Should(Equal(config.Default()))
	})

	It("rejects unknown keys", func() {
		_, err := config.Load(writeFile("server:\n  port: 80\n"))
		Expect(err).Should(HaveOccurred())
		Expect(graphql.KindOf(err)).Should(Equal(graphql.ErrKindValidation))
		Expect(err.Error()).Should(ContainSubstring("field port not found"))
	})

	It("reports missing files", func() {
		_, err := config.Load(filepath.Join(dir, "missing.yaml"))
		Expect(err).Should(HaveOccurred())
		Expect(os.IsNotExist(errorsCause(err))).Should(BeTrue())
	})

	It("validates values", func() {
		_, err := config.Load(writeFile(`
server:
  addr: "localhost"
  max_body_size: 0
log:
  level: verbose
  format: xml
`))
		Expect(err).Should(HaveOccurred())
		Expect(graphql.KindOf(err)).Should(Equal(graphql.ErrKindValidation))

		message := err.(*graphql.Error).Message
		Expect(message).Should(HavePrefix("invalid config: "))
		Expect(strings.Split(strings.TrimPrefix(message, "invalid config: "), "; ")).Should(ConsistOf(
			`server.addr: "localhost" is not a host:port address`,
			"server.max_body_size: must be at least 1",
			`log.level: "verbose" is not one of debug, info, warn, error`,
			`log.format: "xml" is not one of json, console`,
		))
	})

	It("validates settings changed after loading", func() {
		cfg := config.Default()
		cfg.Server.Addr = ""
		cfg.Server.CORSOrigins = []string{""}
		err := cfg.Validate()
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("server.addr: is required"))
		Expect(err.Error()).Should(ContainSubstring("server.cors_origins[0]: is required"))
	})
})

// errorsCause returns the innermost error wrapped by err.
func errorsCause(err error) error {
	for {
		e, ok := err.(*graphql.Error)
		if !ok || e.Err == nil {
			return err
		}
		err = e.Err
	}
}
