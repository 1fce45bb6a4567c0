package data

// Question represents a single trivia question in the database.
type Question struct {
	ID         int64  `db:"id" json:"id"`
	Question   string `db:"question" json:"question"`
	Answer     string `db:"answer" json:"answer"`
	Category   int64  `db:"category" json:"category"`
	Difficulty int    `db:"difficulty" json:"difficulty"`
}

// Category represents a question category. Categories are seeded by
// migrations and are read-only at runtime.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Type string `db:"type" json:"type"`
}
