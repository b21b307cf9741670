// Package repository contains data access logic for the travel catalog.
// This file defines the Event model and repository.  An Event is the root
// of the selection cascade: packages, flights and lounge passes all hang off
// an event.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
)

// Event mirrors the 'events' table.
type Event struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	VenueID   *uint64 `json:"venue_id"` // nullable
	CreatedAt string  `json:"created_at"` // "YYYY-MM-DD HH:MM:SS" UTC
	UpdatedAt string  `json:"updated_at"`
}

// ErrEventNotFound indicates that an event was not located in the DB.
var ErrEventNotFound = errors.New("event not found")

// EventRepo manages persistence for events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need transactions
// spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new event and assigns the generated ID back to the
// struct, then re-reads the row to populate DB-default fields.
func (r *EventRepo) Create(ctx context.Context, e *Event) error {
	const q = `INSERT INTO events (name, venue_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.VenueID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	const sel = `SELECT id, name, venue_id, created_at, updated_at FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(&e.ID, &e.Name, &e.VenueID, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID retrieves an event by its ID.  It returns ErrEventNotFound if
// there is no matching row.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*Event, error) {
	const q = `SELECT id, name, venue_id, created_at, updated_at FROM events WHERE id = ?`
	var e Event
	err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name, &e.VenueID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns all events ordered by name.  When no events exist it
// returns an empty slice and nil error.
func (r *EventRepo) List(ctx context.Context) ([]Event, error) {
	const q = `SELECT id, name, venue_id, created_at, updated_at FROM events ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.VenueID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update changes an event's attributes.  It only performs the UPDATE when
// at least one field differs; otherwise it returns ErrNoChange.  When the
// row doesn't exist it returns ErrEventNotFound.
func (r *EventRepo) Update(ctx context.Context, e *Event) error {
	const q = `UPDATE events
               SET name = ?, venue_id = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND (name <> ? OR NOT (venue_id <=> ?))`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.VenueID, e.ID, e.Name, e.VenueID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Determine if it's "not found" or simply "no change".
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ? LIMIT 1`, e.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes an event.  The deletion is refused with ErrConflict while
// dependent packages, flights or lounge passes still reference the event,
// so a catalog mistake never cascades silently.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrEventNotFound
		}
		return err
	}
	var deps int
	err = tx.QueryRowContext(ctx, `
        SELECT (SELECT COUNT(*) FROM packages WHERE event_id = ?)
             + (SELECT COUNT(*) FROM flights WHERE event_id = ?)
             + (SELECT COUNT(*) FROM lounge_passes WHERE event_id = ?)`,
		id, id, id).Scan(&deps)
	if err != nil {
		return err
	}
	if deps > 0 {
		err = ErrConflict
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}
