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

// Package mutation applies the operations that change a store.Store: voting on links and creating
// new ones.
//
// Each operation checks all of its preconditions before touching the store so a failed operation
// leaves the store as it was. Failures are reported as a single error of kind
// graphql.ErrKindNotFound (the link to vote on doesn't exist) or graphql.ErrKindValidation
// (arguments are missing or malformed).
package mutation

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/store"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Names of the supported operations
const (
	UpvoteLink   = "upvoteLink"
	DownvoteLink = "downvoteLink"
	CreateLink   = "createLink"
)

// Names returns the names of the supported operations in sorted order.
func Names() []string {
	names := []string{UpvoteLink, DownvoteLink, CreateLink}
	sort.Strings(names)
	return names
}

// CreateLinkInput is the argument of CreateLink.
type CreateLinkInput struct {
	Author      *int   `json:"author" validate:"required"`
	Description string `json:"description" validate:"required"`
	URL         string `json:"url" validate:"required"`
}

// Executor applies mutations to a store.
type Executor struct {
	store    *store.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewExecutor creates an Executor over s. A nil logger discards logs.
func NewExecutor(s *store.Store, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}

	validate := validator.New()
	// Report fields by their argument names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Executor{
		store:    s,
		validate: validate,
		logger:   logger.Named("mutation"),
	}
}

// Execute dispatches the operation with the given name. args holds the arguments by name; Int
// arguments can be any Go integer (or an integral float64, as decoded from JSON).
func (e *Executor) Execute(ctx context.Context, name string, args map[string]interface{}) (*store.Link, error) {
	op := graphql.Op("mutation." + name)

	switch name {
	case UpvoteLink, DownvoteLink:
		id, err := intArg(op, args, "id")
		if err != nil {
			return nil, err
		}
		if name == UpvoteLink {
			return e.UpvoteLink(ctx, id)
		}
		return e.DownvoteLink(ctx, id)

	case CreateLink:
		var input CreateLinkInput
		if _, provided := args["author"]; provided {
			author, err := intArg(op, args, "author")
			if err != nil {
				return nil, err
			}
			input.Author = &author
		}

		var err error
		if input.Description, err = stringArg(op, args, "description"); err != nil {
			return nil, err
		}
		if input.URL, err = stringArg(op, args, "url"); err != nil {
			return nil, err
		}
		return e.CreateLink(ctx, input)
	}

	return nil, graphql.NewError(fmt.Sprintf(`unknown mutation "%s"`, name), op, graphql.ErrKindValidation)
}

func intArg(op graphql.Op, args map[string]interface{}, name string) (int, error) {
	value, ok := args[name]
	if !ok || value == nil {
		return 0, graphql.NewError(fmt.Sprintf(`argument "%s" is required`, name), op, graphql.ErrKindValidation)
	}

	coerced, err := graphql.ScalarInt.CoerceVariableValue(value)
	if err != nil {
		return 0, graphql.NewError(fmt.Sprintf(`argument "%s" must be an Int`, name), op,
			graphql.ErrKindValidation, err)
	}
	return coerced.(int), nil
}

// stringArg returns the string argument or "" if absent; CreateLink rejects empty values.
func stringArg(op graphql.Op, args map[string]interface{}, name string) (string, error) {
	value, ok := args[name]
	if !ok || value == nil {
		return "", nil
	}

	s, ok := value.(string)
	if !ok {
		return "", graphql.NewError(fmt.Sprintf(`argument "%s" must be a String, got %s`, name, graphql.Inspect(value)),
			op, graphql.ErrKindValidation)
	}
	return s, nil
}

func (e *Executor) vote(op graphql.Op, id int, delta int) (*store.Link, error) {
	link, ok := e.store.Link(id)
	if !ok {
		return nil, graphql.NewError(fmt.Sprintf("Couldn't find link with id %d", id), op, graphql.ErrKindNotFound)
	}

	// Scores are served as Int, so they stay within 32 bits.
	score := link.Score + delta
	if score < math.MinInt32 || score > math.MaxInt32 {
		return nil, graphql.NewError(fmt.Sprintf("score of link %d cannot go beyond %d", id, link.Score), op,
			graphql.ErrKindValidation)
	}
	link.Score = score

	e.logger.Info("applied mutation",
		zap.String("op", string(op)),
		zap.Int("link", link.ID),
		zap.Int("score", link.Score))

	return link, nil
}

// UpvoteLink adds one to the score of the link with the given id and returns the link.
func (e *Executor) UpvoteLink(ctx context.Context, id int) (*store.Link, error) {
	return e.vote("mutation.upvoteLink", id, 1)
}

// DownvoteLink subtracts one from the score of the link with the given id and returns the link.
func (e *Executor) DownvoteLink(ctx context.Context, id int) (*store.Link, error) {
	return e.vote("mutation.downvoteLink", id, -1)
}

// CreateLink appends a link by an existing author with a score of 0 and no comments. The new link
// gets the id following the largest link id in the store (0 for an empty store). Ids are never
// reused.
func (e *Executor) CreateLink(ctx context.Context, input CreateLinkInput) (*store.Link, error) {
	const op graphql.Op = "mutation.createLink"

	if err := e.validate.StructCtx(ctx, &input); err != nil {
		return nil, validationError(op, err)
	}

	if _, ok := e.store.User(*input.Author); !ok {
		return nil, graphql.NewError(fmt.Sprintf("author %d does not exist", *input.Author), op,
			graphql.ErrKindValidation)
	}

	nextID := 0
	if maxID, ok := e.store.MaxLinkID(); ok {
		nextID = maxID + 1
	}

	link := &store.Link{
		ID:          nextID,
		Author:      *input.Author,
		URL:         input.URL,
		Description: input.Description,
		Score:       0,
		Comments:    []int{},
	}
	if err := e.store.AppendLink(link); err != nil {
		return nil, graphql.NewError("cannot create link", op, err)
	}

	e.logger.Info("applied mutation",
		zap.String("op", string(op)),
		zap.Int("link", link.ID),
		zap.Int("author", link.Author))

	return link, nil
}

// validationError converts the error from validator into a ValidationError listing the fields that
// failed.
func validationError(op graphql.Op, err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return graphql.NewError("invalid input", op, graphql.ErrKindValidation, err)
	}

	messages := make([]string, len(fieldErrors))
	for i, fieldError := range fieldErrors {
		switch fieldError.Tag() {
		case "required":
			messages[i] = fmt.Sprintf(`argument "%s" is required`, fieldError.Field())
		default:
			messages[i] = fmt.Sprintf(`argument "%s" failed on "%s"`, fieldError.Field(), fieldError.Tag())
		}
	}
	return graphql.NewError(strings.Join(messages, "; "), op, graphql.ErrKindValidation)
}
