package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"trivia-api/internal/errs"
)

// SQLQuestionRepository is a concrete implementation of the question store using sqlx.
type SQLQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLQuestionRepository creates a new SQLQuestionRepository.
func NewSQLQuestionRepository(db *sqlx.DB) *SQLQuestionRepository {
	return &SQLQuestionRepository{db: db}
}

const questionColumns = `id, question, answer, category, difficulty`

// AllQuestions retrieves all questions ordered by id.
func (r *SQLQuestionRepository) AllQuestions(ctx context.Context) ([]Question, error) {
	questions := []Question{}
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id`
	if err := r.db.SelectContext(ctx, &questions, query); err != nil {
		return nil, fmt.Errorf("%w: failed to get all questions: %w", errs.ErrStorageUnavailable, err)
	}
	return questions, nil
}

// Insert stores a new question and returns it with the id assigned by the database.
func (r *SQLQuestionRepository) Insert(ctx context.Context, q Question) (Question, error) {
	id, err := insertReturningID(ctx, r.db,
		`INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		q.Question, q.Answer, q.Category, q.Difficulty)
	if err != nil {
		return Question{}, fmt.Errorf("%w: failed to insert question: %w", errs.ErrWriteFailed, err)
	}
	q.ID = id
	return q, nil
}

// DeleteByID removes a question by its ID. It reports false when no row matched.
func (r *SQLQuestionRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete question: %w", errs.ErrWriteFailed, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: failed to get rows affected: %w", errs.ErrWriteFailed, err)
	}
	return rowsAffected > 0, nil
}

// insertReturningID runs an INSERT and returns the generated id. PostgreSQL
// has no LastInsertId, so dollar-bind drivers use RETURNING instead.
func insertReturningID(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (int64, error) {
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		var id int64
		if err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
