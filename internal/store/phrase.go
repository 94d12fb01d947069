package store

import "database/sql"

// PhraseRepository provides persistence for the motivational phrase pool.
type PhraseRepository struct {
	db *sql.DB
}

// Phrases returns the phrase repository for this store.
func (s *Store) Phrases() *PhraseRepository {
	return &PhraseRepository{db: s.db}
}

// List retrieves all phrases in insertion order.
func (r *PhraseRepository) List() ([]string, error) {
	rows, err := r.db.Query(`SELECT text FROM phrases ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phrases []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		phrases = append(phrases, text)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return phrases, nil
}

// Replace swaps the entire phrase pool for the given list in one
// transaction. Empty strings are skipped.
func (r *PhraseRepository) Replace(phrases []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM phrases`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO phrases (text) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range phrases {
		if p == "" {
			continue
		}
		if _, err := stmt.Exec(p); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SeedDefaults inserts the given phrases only when the pool is empty.
func (r *PhraseRepository) SeedDefaults(defaults []string) error {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM phrases`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.Replace(defaults)
}
