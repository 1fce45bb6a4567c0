package query

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"trivia-api/internal/data"
	"trivia-api/internal/errs"
)

// Mode selects which questions are eligible for a quiz draw.
type Mode int

const (
	// ModeAll draws from every category.
	ModeAll Mode = iota + 1
	// ModeCategory draws from a single category.
	ModeCategory
)

// Selector is the category scope of a quiz request.
type Selector struct {
	Mode       Mode
	CategoryID int64
}

// AllCategories returns a selector spanning every category.
func AllCategories() Selector {
	return Selector{Mode: ModeAll}
}

// InCategory returns a selector limited to one category.
func InCategory(id int64) Selector {
	return Selector{Mode: ModeCategory, CategoryID: id}
}

func (s Selector) matches(q data.Question) bool {
	return s.Mode == ModeAll || q.Category == s.CategoryID
}

// Rand is the source of randomness used for quiz draws. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// QuizSelector draws quiz questions uniformly at random.
type QuizSelector struct {
	mu  sync.Mutex
	rng Rand
}

// NewQuizSelector creates a QuizSelector over rng. A nil rng is replaced by
// a generator seeded from the runtime.
func NewQuizSelector(rng Rand) *QuizSelector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QuizSelector{rng: rng}
}

// Pool returns the questions eligible under sel, minus any whose id is in previous.
func Pool(questions []data.Question, sel Selector, previous map[int64]struct{}) []data.Question {
	pool := make([]data.Question, 0, len(questions))
	for _, q := range questions {
		if !sel.matches(q) {
			continue
		}
		if _, seen := previous[q.ID]; seen {
			continue
		}
		pool = append(pool, q)
	}
	return pool
}

// DrawNext picks one question from the candidate pool. It returns nil when
// the pool is empty, meaning the quiz is exhausted. Unknown selector modes
// fail with errs.ErrInvalidInput.
func (s *QuizSelector) DrawNext(questions []data.Question, sel Selector, previous map[int64]struct{}) (*data.Question, error) {
	if sel.Mode != ModeAll && sel.Mode != ModeCategory {
		return nil, fmt.Errorf("unknown selector mode %d: %w", sel.Mode, errs.ErrInvalidInput)
	}

	pool := Pool(questions, sel, previous)
	if len(pool) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	i := s.rng.IntN(len(pool))
	s.mu.Unlock()

	picked := pool[i]
	return &picked, nil
}

// IDSet builds a lookup set from a list of question ids.
func IDSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
