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
	"fmt"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/iterator"
)

// Store holds records of each collection in insertion order, indexed by id. Ids are unique within
// a collection; the collections have independent id spaces.
type Store struct {
	users     []*User
	userIndex map[int]*User

	links     []*Link
	linkIndex map[int]*Link

	comments     []*Comment
	commentIndex map[int]*Comment
}

// New creates a Store populated with the records in seed. Records are copied so later changes to
// seed don't affect the store. It fails if ids are duplicated within a collection. Dangling
// references are accepted; see CheckIntegrity.
func New(seed Seed) (*Store, error) {
	const op graphql.Op = "store.New"

	s := &Store{
		users:        make([]*User, 0, len(seed.Users)),
		userIndex:    make(map[int]*User, len(seed.Users)),
		links:        make([]*Link, 0, len(seed.Links)),
		linkIndex:    make(map[int]*Link, len(seed.Links)),
		comments:     make([]*Comment, 0, len(seed.Comments)),
		commentIndex: make(map[int]*Comment, len(seed.Comments)),
	}

	for i := range seed.Users {
		user := seed.Users[i]
		if _, exists := s.userIndex[user.ID]; exists {
			return nil, graphql.NewError(fmt.Sprintf("duplicate user id %d", user.ID), op, graphql.ErrKindValidation)
		}
		s.users = append(s.users, &user)
		s.userIndex[user.ID] = &user
	}

	for i := range seed.Links {
		link := seed.Links[i]
		link.Comments = append([]int{}, link.Comments...)
		if err := s.AppendLink(&link); err != nil {
			return nil, graphql.NewError("cannot load links", op, err)
		}
	}

	for i := range seed.Comments {
		comment := seed.Comments[i]
		if _, exists := s.commentIndex[comment.ID]; exists {
			return nil, graphql.NewError(fmt.Sprintf("duplicate comment id %d", comment.ID), op, graphql.ErrKindValidation)
		}
		if comment.Parent != nil {
			parent := *comment.Parent
			comment.Parent = &parent
		}
		s.comments = append(s.comments, &comment)
		s.commentIndex[comment.ID] = &comment
	}

	return s, nil
}

// MustNew is a convenience function equivalent to New but panics on failure instead of returning
// an error.
func MustNew(seed Seed) *Store {
	s, err := New(seed)
	if err != nil {
		panic(err)
	}
	return s
}

// User returns the user with the given id.
func (s *Store) User(id int) (*User, bool) {
	user, ok := s.userIndex[id]
	return user, ok
}

// Link returns the link with the given id.
func (s *Store) Link(id int) (*Link, bool) {
	link, ok := s.linkIndex[id]
	return link, ok
}

// Comment returns the comment with the given id.
func (s *Store) Comment(id int) (*Comment, bool) {
	comment, ok := s.commentIndex[id]
	return comment, ok
}

// Users returns all users in insertion order. The returned slice must not be modified.
func (s *Store) Users() []*User {
	return s.users
}

// Links returns all links in insertion order. The returned slice must not be modified.
func (s *Store) Links() []*Link {
	return s.links
}

// Comments returns all comments in insertion order. The returned slice must not be modified.
func (s *Store) Comments() []*Comment {
	return s.comments
}

// FindUsers returns the users satisfying pred in insertion order.
func (s *Store) FindUsers(pred func(*User) bool) []*User {
	var result []*User
	for _, user := range s.users {
		if pred(user) {
			result = append(result, user)
		}
	}
	return result
}

// FindLinks returns the links satisfying pred in insertion order.
func (s *Store) FindLinks(pred func(*Link) bool) []*Link {
	var result []*Link
	for _, link := range s.links {
		if pred(link) {
			result = append(result, link)
		}
	}
	return result
}

// FindComments returns the comments satisfying pred in insertion order.
func (s *Store) FindComments(pred func(*Comment) bool) []*Comment {
	// CommentIterator never fails.
	comments, _ := iterator.Collect(s.CommentsWhere(pred).Next)
	return comments
}

// CommentsWhere returns an iterator over the comments satisfying pred in insertion order. pred is
// evaluated as the iterator advances.
func (s *Store) CommentsWhere(pred func(*Comment) bool) *CommentIterator {
	return &CommentIterator{
		comments: s.comments,
		pred:     pred,
	}
}

// AppendLink adds link to the end of links. The store keeps link (not a copy). It fails if a link
// with the same id exists.
func (s *Store) AppendLink(link *Link) error {
	if _, exists := s.linkIndex[link.ID]; exists {
		return graphql.NewError(fmt.Sprintf("duplicate link id %d", link.ID),
			graphql.Op("store.AppendLink"), graphql.ErrKindValidation)
	}
	s.links = append(s.links, link)
	s.linkIndex[link.ID] = link
	return nil
}

// MaxLinkID returns the largest link id. ok is false if there are no links.
func (s *Store) MaxLinkID() (id int, ok bool) {
	for i, link := range s.links {
		if i == 0 || link.ID > id {
			id = link.ID
		}
	}
	return id, len(s.links) > 0
}

// NumLinks returns the number of links.
func (s *Store) NumLinks() int {
	return len(s.links)
}
