// Package query holds the pure selection logic of the question bank:
// pagination, text search, category filtering and the quiz draw. Nothing in
// here touches storage; every function works on a snapshot handed in by the
// caller.
package query

import "trivia-api/internal/data"

// DefaultPageSize is the number of questions per page when none is configured.
const DefaultPageSize = 10

// Paginate returns the 1-based page of items of the given size. Pages past
// the end, page numbers below one and non-positive sizes all yield an empty
// slice; deciding whether that is "not found" is up to the caller.
func Paginate(items []data.Question, page, size int) []data.Question {
	if page < 1 || size <= 0 {
		return []data.Question{}
	}
	offset := (page - 1) * size
	if offset >= len(items) {
		return []data.Question{}
	}
	end := min(offset+size, len(items))

	out := make([]data.Question, end-offset)
	copy(out, items[offset:end])
	return out
}

// PageCount returns how many pages of the given size cover n items.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
