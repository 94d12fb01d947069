package store

import (
	"database/sql"
	"time"
)

// Trigger represents a confirmed trigger event stored in the database.
type Trigger struct {
	ID          string    `json:"id"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// TriggerRepository provides persistence for trigger events.
type TriggerRepository struct {
	db *sql.DB
}

// Triggers returns the trigger repository for this store.
func (s *Store) Triggers() *TriggerRepository {
	return &TriggerRepository{db: s.db}
}

// Insert stores a single trigger.
func (r *TriggerRepository) Insert(t Trigger) error {
	_, err := r.db.Exec(
		`INSERT INTO triggers (id, triggered_at) VALUES (?, ?)`,
		t.ID, t.TriggeredAt.UnixMilli(),
	)
	return err
}

// InsertBatch stores multiple triggers in a single transaction.
func (r *TriggerRepository) InsertBatch(triggers []Trigger) error {
	if len(triggers) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO triggers (id, triggered_at) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range triggers {
		if _, err := stmt.Exec(t.ID, t.TriggeredAt.UnixMilli()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List retrieves all triggers in chronological order.
func (r *TriggerRepository) List() ([]Trigger, error) {
	rows, err := r.db.Query(
		`SELECT id, triggered_at FROM triggers ORDER BY triggered_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triggers []Trigger
	for rows.Next() {
		var t Trigger
		var ms int64
		if err := rows.Scan(&t.ID, &ms); err != nil {
			return nil, err
		}
		t.TriggeredAt = time.UnixMilli(ms)
		triggers = append(triggers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return triggers, nil
}

// CountSince returns the number of triggers at or after the given time.
func (r *TriggerRepository) CountSince(since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM triggers WHERE triggered_at >= ?`,
		since.UnixMilli(),
	).Scan(&n)
	return n, err
}
