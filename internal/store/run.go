package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Run represents one evaluation of a dataset stored in the database.
type Run struct {
	ID            string
	Input         string
	TrainFraction float64
	Strategy      string
	TrainCount    int
	TestCount     int
	Correct       int
	Accuracy      float64
	CreatedAt     time.Time
}

// RunRepository provides access to stored runs.
type RunRepository struct {
	db *sql.DB
}

// Runs returns the run repository for this store.
func (s *Store) Runs() *RunRepository {
	return &RunRepository{db: s.db}
}

// Create inserts a new run. An empty ID is replaced with a random UUID.
func (r *RunRepository) Create(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO runs (id, input, train_fraction, strategy, train_count, test_count, correct, accuracy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.TrainFraction, run.Strategy, run.TrainCount, run.TestCount,
		run.Correct, run.Accuracy, run.CreatedAt,
	)
	return err
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(id string) (*Run, error) {
	run := &Run{}

	err := r.db.QueryRow(
		`SELECT id, input, train_fraction, strategy, train_count, test_count, correct, accuracy, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Input, &run.TrainFraction, &run.Strategy, &run.TrainCount,
		&run.TestCount, &run.Correct, &run.Accuracy, &run.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return run, nil
}

// List retrieves all runs, newest first.
func (r *RunRepository) List() ([]*Run, error) {
	rows, err := r.db.Query(
		`SELECT id, input, train_fraction, strategy, train_count, test_count, correct, accuracy, created_at
		 FROM runs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		err := rows.Scan(&run.ID, &run.Input, &run.TrainFraction, &run.Strategy, &run.TrainCount,
			&run.TestCount, &run.Correct, &run.Accuracy, &run.CreatedAt)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// Delete removes a run and its predictions.
func (r *RunRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
