package store

import "database/sql"

// Prediction is the stored classification of one test record.
type Prediction struct {
	RecordID  int
	Gesture   int
	Predicted int
	Cost      float64
}

// PredictionRepository provides access to stored predictions.
type PredictionRepository struct {
	db *sql.DB
}

// Predictions returns the prediction repository for this store.
func (s *Store) Predictions() *PredictionRepository {
	return &PredictionRepository{db: s.db}
}

// CreateBatch inserts the predictions of a run in a single transaction,
// preserving their order.
func (r *PredictionRepository) CreateBatch(runID string, predictions []Prediction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO predictions (run_id, seq, record_id, gesture, predicted, cost) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range predictions {
		if _, err := stmt.Exec(runID, i, p.RecordID, p.Gesture, p.Predicted, p.Cost); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByRun retrieves the predictions of a run in insertion order.
func (r *PredictionRepository) ListByRun(runID string) ([]Prediction, error) {
	rows, err := r.db.Query(
		`SELECT record_id, gesture, predicted, cost
		 FROM predictions
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var predictions []Prediction
	for rows.Next() {
		var p Prediction
		if err := rows.Scan(&p.RecordID, &p.Gesture, &p.Predicted, &p.Cost); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return predictions, nil
}
