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

package schema

import (
	"context"
	"fmt"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/mutation"
	"github.com/botobag/linkboard/resolver"
	"github.com/botobag/linkboard/store"
)

type types struct {
	resolver *resolver.Resolver
	mutator  *mutation.Executor

	query    *graphql.Object
	mutation *graphql.Object
	link     *graphql.Object
	user     *graphql.Object
	comment  *graphql.Object
}

func newTypes(r *resolver.Resolver, m *mutation.Executor) *types {
	t := &types{
		resolver: r,
		mutator:  m,
	}

	t.user = graphql.MustNewObject(&graphql.ObjectConfig{
		Name:        "User",
		Description: "An account that submits links and writes comments.",
		Fields: func() graphql.Fields {
			return graphql.Fields{
				"id":       intField(),
				"username": stringField(),
				"about":    stringField(),
			}
		},
	})

	t.link = graphql.MustNewObject(&graphql.ObjectConfig{
		Name:        "Link",
		Description: "A submitted URL with a score and a discussion.",
		Fields: func() graphql.Fields {
			return graphql.Fields{
				"id":          intField(),
				"url":         stringField(),
				"description": stringField(),
				"score":       intField(),
				"author":      t.authorField(),
				"comments": {
					Description: "Top-level comments of the link in listed order.",
					Kind:        graphql.FieldKindReferenceList,
					Type:        t.comment,
					NonNull:     true,
					Resolver:    graphql.FieldResolverFunc(t.resolveLinkComments),
				},
			}
		},
	})

	t.comment = graphql.MustNewObject(&graphql.ObjectConfig{
		Name:        "Comment",
		Description: "A message in a discussion, possibly replying to another comment.",
		Fields: func() graphql.Fields {
			return graphql.Fields{
				"id":      intField(),
				"content": stringField(),
				"author":  t.authorField(),
				"parent": {
					Description: "The comment this one replies to; null for top-level comments.",
					Kind:        graphql.FieldKindSingleReference,
					Type:        t.comment,
					Resolver:    graphql.FieldResolverFunc(t.resolveCommentParent),
				},
				"comments": t.childrenField(
					"Replies to the comment, or to the comment with the given id (top-level comments "+
						"for null).",
					graphql.FieldResolverFunc(t.resolveCommentChildren)),
			}
		},
	})

	t.query = graphql.MustNewObject(&graphql.ObjectConfig{
		Name: "Query",
		Fields: func() graphql.Fields {
			return graphql.Fields{
				"allLinks": {
					Kind:           graphql.FieldKindReferenceList,
					Type:           t.link,
					NonNull:        true,
					ElementNonNull: true,
					Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return t.resolver.Store().Links(), nil
					}),
				},
				"link": t.lookupField(t.link, func(id int) interface{} {
					if link, ok := t.resolver.Store().Link(id); ok {
						return link
					}
					return nil
				}),
				"allUsers": {
					Kind: graphql.FieldKindReferenceList,
					Type: t.user,
					Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return t.resolver.Store().Users(), nil
					}),
				},
				"user": t.lookupField(t.user, func(id int) interface{} {
					if user, ok := t.resolver.Store().User(id); ok {
						return user
					}
					return nil
				}),
				"allComments": {
					Kind:           graphql.FieldKindReferenceList,
					Type:           t.comment,
					NonNull:        true,
					ElementNonNull: true,
					Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return t.resolver.Store().Comments(), nil
					}),
				},
				"comment": t.lookupField(t.comment, func(id int) interface{} {
					if comment, ok := t.resolver.Store().Comment(id); ok {
						return comment
					}
					return nil
				}),
				"comments": t.childrenField(
					"Replies to the comment with the given id; top-level comments if id is null or "+
						"omitted.",
					graphql.FieldResolverFunc(t.resolveCommentChildren)),
			}
		},
	})

	t.mutation = graphql.MustNewObject(&graphql.ObjectConfig{
		Name: "Mutation",
		Fields: func() graphql.Fields {
			return graphql.Fields{
				mutation.UpvoteLink: t.mutationField(graphql.ArgumentConfigMap{
					"id": {Type: graphql.ScalarInt, NonNull: true},
				}),
				mutation.DownvoteLink: t.mutationField(graphql.ArgumentConfigMap{
					"id": {Type: graphql.ScalarInt, NonNull: true},
				}),
				mutation.CreateLink: t.mutationField(graphql.ArgumentConfigMap{
					"author":      {Type: graphql.ScalarInt, NonNull: true},
					"description": {Type: graphql.ScalarString, NonNull: true},
					"url":         {Type: graphql.ScalarString, NonNull: true},
				}),
			}
		},
	})

	return t
}

func intField() *graphql.FieldConfig {
	return &graphql.FieldConfig{
		Kind:    graphql.FieldKindScalar,
		Scalar:  graphql.ScalarInt,
		NonNull: true,
	}
}

func stringField() *graphql.FieldConfig {
	return &graphql.FieldConfig{
		Kind:    graphql.FieldKindScalar,
		Scalar:  graphql.ScalarString,
		NonNull: true,
	}
}

// lookupField defines a root field returning the record with the given id or null.
func (t *types) lookupField(object *graphql.Object, lookup func(id int) interface{}) *graphql.FieldConfig {
	return &graphql.FieldConfig{
		Kind: graphql.FieldKindSingleReference,
		Type: object,
		Args: graphql.ArgumentConfigMap{
			"id": {Type: graphql.ScalarInt, NonNull: true},
		},
		Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			return lookup(info.Args().Get("id").(int)), nil
		}),
	}
}

// authorField defines Link.author and Comment.author.
func (t *types) authorField() *graphql.FieldConfig {
	return &graphql.FieldConfig{
		Description: "The author, or the user with the given id.",
		Kind:        graphql.FieldKindSingleReference,
		Type:        t.user,
		NonNull:     true,
		Args: graphql.ArgumentConfigMap{
			"author": {Type: graphql.ScalarInt},
		},
		Resolver: graphql.FieldResolverFunc(t.resolveAuthor),
	}
}

func (t *types) childrenField(description string, resolver graphql.FieldResolver) *graphql.FieldConfig {
	return &graphql.FieldConfig{
		Description:    description,
		Kind:           graphql.FieldKindComputedChildren,
		Type:           t.comment,
		NonNull:        true,
		ElementNonNull: true,
		Args: graphql.ArgumentConfigMap{
			"id": {Type: graphql.ScalarInt},
		},
		Resolver: resolver,
	}
}

func (t *types) mutationField(args graphql.ArgumentConfigMap) *graphql.FieldConfig {
	return &graphql.FieldConfig{
		Kind: graphql.FieldKindSingleReference,
		Type: t.link,
		Args: args,
		Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			link, err := t.mutator.Execute(ctx, info.Field().Name(), info.Args().Map())
			if err != nil {
				return nil, err
			}
			return link, nil
		}),
	}
}

// overrideID returns the value of the named Int argument if the caller gave a non-null one.
func overrideID(info graphql.ResolveInfo, name string) (int, bool) {
	value, ok := info.Args().Lookup(name)
	if !ok || value == nil {
		return 0, false
	}
	return value.(int), true
}

func (t *types) resolveAuthor(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	if id, ok := overrideID(info, "author"); ok {
		user, found := t.resolver.Store().User(id)
		if !found {
			return nil, graphql.NewError(fmt.Sprintf("Couldn't find user with id %d", id), graphql.ErrKindNotFound)
		}
		return user, nil
	}

	switch source := source.(type) {
	case *store.Link:
		return t.resolver.LinkAuthor(source)
	case *store.Comment:
		return t.resolver.CommentAuthor(source)
	}
	return nil, unexpectedSource(info, source)
}

func (t *types) resolveLinkComments(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	link, ok := source.(*store.Link)
	if !ok {
		return nil, unexpectedSource(info, source)
	}

	refs := t.resolver.LinkComments(link)
	values := make([]interface{}, len(refs))
	for i, ref := range refs {
		if ref.Err != nil {
			values[i] = ref.Err
		} else {
			values[i] = ref.Comment
		}
	}
	return values, nil
}

func (t *types) resolveCommentParent(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	comment, ok := source.(*store.Comment)
	if !ok {
		return nil, unexpectedSource(info, source)
	}

	parent, err := t.resolver.CommentParent(comment)
	if err != nil || parent == nil {
		return nil, err
	}
	return parent, nil
}

func (t *types) resolveCommentChildren(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	if value, ok := info.Args().Lookup("id"); ok {
		if value == nil {
			return t.children(nil)
		}
		id := value.(int)
		return t.children(&id)
	}

	if comment, ok := source.(*store.Comment); ok {
		return t.children(&comment.ID)
	}
	// Query.comments
	return t.children(nil)
}

// children returns the replies of parentID as a graphql.Iterable.
func (t *types) children(parentID *int) (interface{}, error) {
	iter, err := t.resolver.ChildrenOf(parentID)
	if err != nil {
		return nil, err
	}
	return childList{iter}, nil
}

type childList struct {
	iter *resolver.ChildIterator
}

var (
	_ graphql.Iterable = childList{}
	_ graphql.Iterator = childIterator{}
)

// Iterator implements graphql.Iterable.
func (list childList) Iterator() graphql.Iterator {
	return childIterator(list)
}

type childIterator struct {
	iter *resolver.ChildIterator
}

// Next implements graphql.Iterator.
func (iter childIterator) Next() (interface{}, error) {
	comment, err := iter.iter.Next()
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func unexpectedSource(info graphql.ResolveInfo, source interface{}) error {
	return graphql.NewError(fmt.Sprintf("unexpected source %T for %s.%s", source, info.Object().Name(),
		info.Field().Name()), graphql.ErrKindInternal)
}
