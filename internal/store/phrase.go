package store

import (
	"database/sql"
	"errors"
	"time"
)

// Phrase maps a gesture label to the phrase spoken when it is accepted.
type Phrase struct {
	ID        string
	Label     string
	Text      string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhraseRepository provides CRUD operations for phrases.
type PhraseRepository struct {
	db *sql.DB
}

// Phrases returns the phrase repository for this store.
func (s *Store) Phrases() *PhraseRepository {
	return &PhraseRepository{db: s.db}
}

// Create inserts a new phrase into the database.
func (r *PhraseRepository) Create(p *Phrase) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	enabled := 0
	if p.Enabled {
		enabled = 1
	}

	_, err := r.db.Exec(
		`INSERT INTO phrases (id, label, text, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Label, p.Text, enabled, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a phrase by its ID.
func (r *PhraseRepository) GetByID(id string) (*Phrase, error) {
	return r.getBy(`SELECT id, label, text, enabled, created_at, updated_at
		 FROM phrases WHERE id = ?`, id)
}

// GetByLabel retrieves the phrase bound to a gesture label.
func (r *PhraseRepository) GetByLabel(label string) (*Phrase, error) {
	return r.getBy(`SELECT id, label, text, enabled, created_at, updated_at
		 FROM phrases WHERE label = ?`, label)
}

func (r *PhraseRepository) getBy(query string, arg any) (*Phrase, error) {
	p := &Phrase{}
	var enabled int

	err := r.db.QueryRow(query, arg).
		Scan(&p.ID, &p.Label, &p.Text, &enabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Enabled = enabled != 0
	return p, nil
}

// List retrieves all phrases ordered by label.
func (r *PhraseRepository) List() ([]*Phrase, error) {
	rows, err := r.db.Query(
		`SELECT id, label, text, enabled, created_at, updated_at
		 FROM phrases ORDER BY label`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phrases []*Phrase
	for rows.Next() {
		p := &Phrase{}
		var enabled int

		if err := rows.Scan(&p.ID, &p.Label, &p.Text, &enabled, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}

		p.Enabled = enabled != 0
		phrases = append(phrases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return phrases, nil
}

// Update updates an existing phrase in the database.
func (r *PhraseRepository) Update(p *Phrase) error {
	p.UpdatedAt = time.Now()

	enabled := 0
	if p.Enabled {
		enabled = 1
	}

	result, err := r.db.Exec(
		`UPDATE phrases SET label = ?, text = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		p.Label, p.Text, enabled, p.UpdatedAt, p.ID,
	)
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

// Delete removes a phrase from the database by its ID.
func (r *PhraseRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM phrases WHERE id = ?`, id)
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
