package store

import (
	"database/sql"
	"time"
)

// Event is one accepted gesture as recorded in the log.
type Event struct {
	ID         int64
	Label      string
	Reason     string
	Phrase     string
	AcceptedAt time.Time
}

// EventRepository provides append and query operations for the event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append records an accepted gesture. The log is append-only.
func (r *EventRepository) Append(e *Event) error {
	if e.AcceptedAt.IsZero() {
		e.AcceptedAt = time.Now()
	}

	result, err := r.db.Exec(
		`INSERT INTO events (label, reason, phrase, accepted_at)
		 VALUES (?, ?, ?, ?)`,
		e.Label, e.Reason, e.Phrase, e.AcceptedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	e.ID = id
	return nil
}

// ListRecent retrieves the most recent events, newest first.
// Limits of zero or less default to 50.
func (r *EventRepository) ListRecent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, label, reason, phrase, accepted_at
		 FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Label, &e.Reason, &e.Phrase, &e.AcceptedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// PruneBefore deletes events accepted before the cutoff and returns how many
// rows were removed.
func (r *EventRepository) PruneBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE accepted_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
