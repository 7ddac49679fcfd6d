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

package handler

import (
	"container/list"
	"errors"
	"sync"

	"github.com/botobag/linkboard/graphql/ast"
)

// DocumentCache caches documents parsed from query text so that repeated queries skip the parser.
// Documents are immutable once parsed, so they can be shared by concurrent requests.
type DocumentCache interface {
	// Get looks up the document parsed from the given query.
	Get(query string) (document *ast.Document, ok bool)

	// Add adds a document parsed from the query to the cache.
	Add(query string, document *ast.Document)
}

type lruEntry struct {
	query    string
	document *ast.Document
}

// LRUDocumentCache is a thread-safe LRU cache that implements DocumentCache. It serves as default
// document cache for LLHandler. The implementation follows groupcache/lru with a mutex added to
// make it safe for concurrent access.
type LRUDocumentCache struct {
	// The maximum number of documents in the cache before an item is evicted. It must be greater
	// than 0.
	maxEntries int

	// m guards cache and evictList.
	m         sync.Mutex
	cache     map[string]*list.Element
	evictList *list.List
}

var _ DocumentCache = (*LRUDocumentCache)(nil)

var errZeroCacheSize = errors.New("LRUDocumentCache: must specified a non-zero cache size")

// NewLRUDocumentCache creates a new LRUDocumentCache with given size.
func NewLRUDocumentCache(maxEntries int) (*LRUDocumentCache, error) {
	if maxEntries <= 0 {
		return nil, errZeroCacheSize
	}

	return &LRUDocumentCache{
		maxEntries: maxEntries,
		cache:      make(map[string]*list.Element, maxEntries),
		evictList:  list.New(),
	}, nil
}

// Get implements DocumentCache.
func (c *LRUDocumentCache) Get(query string) (document *ast.Document, ok bool) {
	c.m.Lock()
	defer c.m.Unlock()

	if element, hit := c.cache[query]; hit {
		c.evictList.MoveToFront(element)
		return element.Value.(*lruEntry).document, true
	}
	return nil, false
}

// Add implements DocumentCache.
func (c *LRUDocumentCache) Add(query string, document *ast.Document) {
	c.m.Lock()
	defer c.m.Unlock()

	if element, ok := c.cache[query]; ok {
		c.evictList.MoveToFront(element)
		element.Value.(*lruEntry).document = document
		return
	}

	if c.evictList.Len() >= c.maxEntries {
		c.removeOldest()
	}
	c.cache[query] = c.evictList.PushFront(&lruEntry{query, document})
}

// Len returns the number of cached documents.
func (c *LRUDocumentCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.evictList.Len()
}

// removeOldest removes the oldest entry from the cache. c.m must be held.
func (c *LRUDocumentCache) removeOldest() {
	if element := c.evictList.Back(); element != nil {
		c.evictList.Remove(element)
		delete(c.cache, element.Value.(*lruEntry).query)
	}
}

// NopDocumentCache does nothing.
type NopDocumentCache struct{}

var _ DocumentCache = NopDocumentCache{}

// Get implements DocumentCache.
func (NopDocumentCache) Get(query string) (document *ast.Document, ok bool) {
	return
}

// Add implements DocumentCache.
func (NopDocumentCache) Add(query string, document *ast.Document) {}
