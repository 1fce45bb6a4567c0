package query

import (
	"cmp"
	"fmt"
	"slices"

	"trivia-api/internal/data"
	"trivia-api/internal/errs"
)

// CategoryRange is the inclusive span of category ids a filter accepts.
type CategoryRange struct {
	Min int64
	Max int64
}

// Contains reports whether id lies within the range.
func (r CategoryRange) Contains(id int64) bool {
	return id >= r.Min && id <= r.Max
}

// Check fails with errs.ErrOutOfRange when id is outside the range.
func (r CategoryRange) Check(id int64) error {
	if !r.Contains(id) {
		return fmt.Errorf("category %d not in [%d, %d]: %w", id, r.Min, r.Max, errs.ErrOutOfRange)
	}
	return nil
}

// RangeOf derives the range spanned by the given categories. An empty set
// yields a range that contains nothing.
func RangeOf(categories []data.Category) CategoryRange {
	if len(categories) == 0 {
		return CategoryRange{Min: 1, Max: 0}
	}
	r := CategoryRange{Min: categories[0].ID, Max: categories[0].ID}
	for _, c := range categories[1:] {
		r.Min = min(r.Min, c.ID)
		r.Max = max(r.Max, c.ID)
	}
	return r
}

// ByCategory returns the questions in the given category ordered by id.
// Ids outside bounds fail with errs.ErrOutOfRange; an in-range category with
// no questions yields an empty slice.
func ByCategory(questions []data.Question, categoryID int64, bounds CategoryRange) ([]data.Question, error) {
	if err := bounds.Check(categoryID); err != nil {
		return nil, err
	}

	out := []data.Question{}
	for _, q := range questions {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	slices.SortStableFunc(out, func(a, b data.Question) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
