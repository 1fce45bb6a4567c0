package query

import (
	"cmp"
	"slices"
	"strings"

	"trivia-api/internal/data"
)

// Search returns the questions whose text contains term, ignoring case,
// ordered by category and then by id. The second result holds the category
// of each match in the same order, duplicates included.
//
// An empty term matches nothing.
func Search(questions []data.Question, term string) ([]data.Question, []int64) {
	matches := []data.Question{}
	if term == "" {
		return matches, []int64{}
	}

	needle := strings.ToLower(term)
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			matches = append(matches, q)
		}
	}

	slices.SortStableFunc(matches, func(a, b data.Question) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	categories := make([]int64, len(matches))
	for i, q := range matches {
		categories[i] = q.Category
	}
	return matches, categories
}
