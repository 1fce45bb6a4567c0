package data

import "github.com/jmoiron/sqlx"

// Store combines the question and category repositories behind a single
// value that satisfies the service layer's storage contract.
type Store struct {
	*SQLQuestionRepository
	*CategoryRepository
}

// NewStore creates a Store over db.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		SQLQuestionRepository: NewSQLQuestionRepository(db),
		CategoryRepository:    NewCategoryRepository(db),
	}
}
