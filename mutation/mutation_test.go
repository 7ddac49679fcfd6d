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

package mutation_test

import (
	"context"
	"math"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/internal/testutil"
	"github.com/botobag/linkboard/mutation"
	"github.com/botobag/linkboard/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// snapshot captures the observable state of links in s.
func snapshot(s *store.Store) []store.Link {
	links := make([]store.Link, len(s.Links()))
	for i, link := range s.Links() {
		links[i] = *link
	}
	return links
}

func expectKind(err error, kind graphql.ErrKind) {
	ExpectWithOffset(1, err).Should(HaveOccurred())
	ExpectWithOffset(1, graphql.KindOf(err)).Should(Equal(kind))
}

var _ = Describe("Executor", func() {
	var (
		ctx      context.Context
		s        *store.Store
		executor *mutation.Executor
		logs     *observer.ObservedLogs
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.InfoLevel)
		ctx = context.Background()
		s = store.MustNew(store.DefaultSeed())
		executor = mutation.NewExecutor(s, zap.New(core))
	})

	Describe("voting", func() {
		It("upvotes and downvotes", func() {
			link, err := executor.UpvoteLink(ctx, 0)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.Score).Should(Equal(6))

			stored, _ := s.Link(0)
			Expect(link).Should(BeIdenticalTo(stored))

			link, err = executor.DownvoteLink(ctx, 1)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.Score).Should(Equal(49))
		})

		It("round-trips the score", func() {
			for _, link := range s.Links() {
				original := link.Score

				_, err := executor.UpvoteLink(ctx, link.ID)
				Expect(err).ShouldNot(HaveOccurred())
				result, err := executor.DownvoteLink(ctx, link.ID)
				Expect(err).ShouldNot(HaveOccurred())

				Expect(result.Score).Should(Equal(original))
			}
		})

		It("has no floor on score", func() {
			for i := 0; i < 10; i++ {
				_, err := executor.DownvoteLink(ctx, 0)
				Expect(err).ShouldNot(HaveOccurred())
			}
			link, _ := s.Link(0)
			Expect(link.Score).Should(Equal(-5))
		})

		It("keeps the score within the Int range", func() {
			link, _ := s.Link(0)
			link.Score = math.MaxInt32

			_, err := executor.UpvoteLink(ctx, 0)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("score of link 0 cannot go beyond 2147483647"),
				testutil.KindIs(graphql.ErrKindValidation),
			))
			Expect(link.Score).Should(Equal(math.MaxInt32))

			link.Score = math.MinInt32
			_, err = executor.DownvoteLink(ctx, 0)
			expectKind(err, graphql.ErrKindValidation)
			Expect(link.Score).Should(Equal(math.MinInt32))

			_, err = executor.UpvoteLink(ctx, 0)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.Score).Should(Equal(math.MinInt32 + 1))
		})

		It("fails with NotFoundError on unknown links and leaves the store unchanged", func() {
			before := snapshot(s)

			_, err := executor.UpvoteLink(ctx, 999)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Couldn't find link with id 999"),
				testutil.KindIs(graphql.ErrKindNotFound),
				testutil.CodeIs("NOT_FOUND"),
			))

			_, err = executor.DownvoteLink(ctx, 999)
			expectKind(err, graphql.ErrKindNotFound)

			Expect(snapshot(s)).Should(Equal(before))
		})

		It("logs applied votes", func() {
			executor.UpvoteLink(ctx, 0)

			entries := logs.FilterMessage("applied mutation").All()
			Expect(entries).Should(HaveLen(1))
			Expect(entries[0].ContextMap()).Should(And(
				HaveKeyWithValue("op", "mutation.upvoteLink"),
				HaveKeyWithValue("link", int64(0)),
				HaveKeyWithValue("score", int64(6)),
			))
		})
	})

	Describe("CreateLink", func() {
		It("creates a link after the largest id", func() {
			numLinks := s.NumLinks()

			link, err := executor.CreateLink(ctx, mutation.CreateLinkInput{
				Author:      intPtr(1),
				Description: "d",
				URL:         "u",
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(*link).Should(Equal(store.Link{
				ID:          2,
				Author:      1,
				URL:         "u",
				Description: "d",
				Score:       0,
				Comments:    []int{},
			}))
			Expect(s.NumLinks()).Should(Equal(numLinks + 1))

			stored, ok := s.Link(2)
			Expect(ok).Should(BeTrue())
			Expect(stored).Should(BeIdenticalTo(link))
		})

		It("doesn't reuse ids below the largest", func() {
			s = store.MustNew(store.Seed{
				Users: []store.User{{ID: 0}},
				Links: []store.Link{{ID: 7}, {ID: 3}},
			})
			executor = mutation.NewExecutor(s, nil)

			link, err := executor.CreateLink(ctx, mutation.CreateLinkInput{
				Author:      intPtr(0),
				Description: "d",
				URL:         "u",
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.ID).Should(Equal(8))
		})

		It("starts at 0 in an empty store", func() {
			s = store.MustNew(store.Seed{Users: []store.User{{ID: 0}}})
			executor = mutation.NewExecutor(s, nil)

			link, err := executor.CreateLink(ctx, mutation.CreateLinkInput{
				Author:      intPtr(0),
				Description: "d",
				URL:         "u",
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.ID).Should(Equal(0))
		})

		It("validates input before writing", func() {
			before := snapshot(s)

			_, err := executor.CreateLink(ctx, mutation.CreateLinkInput{})
			expectKind(err, graphql.ErrKindValidation)
			Expect(err.(*graphql.Error).Message).Should(Equal(
				`argument "author" is required; argument "description" is required; argument "url" is required`))

			_, err = executor.CreateLink(ctx, mutation.CreateLinkInput{
				Author: intPtr(0),
				URL:    "u",
			})
			expectKind(err, graphql.ErrKindValidation)
			Expect(err.(*graphql.Error).Message).Should(Equal(`argument "description" is required`))

			_, err = executor.CreateLink(ctx, mutation.CreateLinkInput{
				Author:      intPtr(42),
				Description: "d",
				URL:         "u",
			})
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("author 42 does not exist"),
				testutil.KindIs(graphql.ErrKindValidation),
				testutil.CodeIs("VALIDATION_FAILED"),
			))

			Expect(snapshot(s)).Should(Equal(before))
		})
	})

	Describe("Execute", func() {
		It("dispatches by name", func() {
			link, err := executor.Execute(ctx, "upvoteLink", map[string]interface{}{"id": 1})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.Score).Should(Equal(51))

			// As decoded from JSON
			link, err = executor.Execute(ctx, "downvoteLink", map[string]interface{}{"id": float64(1)})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.Score).Should(Equal(50))

			link, err = executor.Execute(ctx, "createLink", map[string]interface{}{
				"author":      int64(3),
				"description": "third",
				"url":         "https://example3.com",
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.ID).Should(Equal(2))
			Expect(link.Author).Should(Equal(3))
			Expect(link.URL).Should(Equal("https://example3.com"))
		})

		It("rejects unknown operations", func() {
			_, err := executor.Execute(ctx, "deleteLink", map[string]interface{}{"id": 0})
			expectKind(err, graphql.ErrKindValidation)
			Expect(err.(*graphql.Error).Message).Should(Equal(`unknown mutation "deleteLink"`))
		})

		It("rejects missing or ill-typed arguments", func() {
			before := snapshot(s)

			_, err := executor.Execute(ctx, "upvoteLink", map[string]interface{}{})
			expectKind(err, graphql.ErrKindValidation)
			Expect(err.(*graphql.Error).Message).Should(Equal(`argument "id" is required`))

			_, err = executor.Execute(ctx, "upvoteLink", map[string]interface{}{"id": "0"})
			expectKind(err, graphql.ErrKindValidation)

			_, err = executor.Execute(ctx, "createLink", map[string]interface{}{
				"author":      0,
				"description": 5,
				"url":         "u",
			})
			expectKind(err, graphql.ErrKindValidation)

			_, err = executor.Execute(ctx, "createLink", map[string]interface{}{
				"description": "d",
				"url":         "u",
			})
			expectKind(err, graphql.ErrKindValidation)
			Expect(err.(*graphql.Error).Message).Should(Equal(`argument "author" is required`))

			Expect(snapshot(s)).Should(Equal(before))
		})

		It("accepts author 0", func() {
			link, err := executor.Execute(ctx, "createLink", map[string]interface{}{
				"author":      0,
				"description": "d",
				"url":         "u",
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(link.Author).Should(Equal(0))
		})
	})

	It("lists operation names", func() {
		Expect(mutation.Names()).Should(Equal([]string{"createLink", "downvoteLink", "upvoteLink"}))
	})
})
