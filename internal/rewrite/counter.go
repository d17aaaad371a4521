// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

// BookmarkCounter hands out synthetic bookmark ids. It is a plain value:
// Next returns the allocated id together with the advanced counter, so the
// caller threads it through one conversion and no state outlives the run.
type BookmarkCounter struct {
	next int
}

// NewBookmarkCounter returns a counter starting at base, or just above
// maxExisting when the document already uses ids at or above base.
func NewBookmarkCounter(base, maxExisting int) BookmarkCounter {
	start := base
	if maxExisting >= start {
		start = maxExisting + 1
	}
	return BookmarkCounter{next: start}
}

// Next returns the next id and the counter that follows it.
func (c BookmarkCounter) Next() (int, BookmarkCounter) {
	return c.next, BookmarkCounter{next: c.next + 1}
}

// Peek returns the id Next would hand out.
func (c BookmarkCounter) Peek() int { return c.next }
