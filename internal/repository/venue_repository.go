package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Venue mirrors the 'venues' table.
type Venue struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// ErrVenueNotFound indicates that a venue was not located in the DB.
var ErrVenueNotFound = errors.New("venue not found")

type VenueRepo struct{ db *sql.DB }

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// Create inserts a venue and assigns the generated ID.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO venues (name, city, country) VALUES (?, ?, ?)`,
		v.Name, v.City, v.Country)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by id.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	var v Venue
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, city, country FROM venues WHERE id = ?`, id).
		Scan(&v.ID, &v.Name, &v.City, &v.Country)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by name.
func (r *VenueRepo) List(ctx context.Context) ([]Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, city, country FROM venues ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Venue
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.Country); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// Update rewrites a venue's attributes; ErrNoChange when identical.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE venues SET name = ?, city = ?, country = ?
         WHERE id = ? AND (name <> ? OR city <> ? OR country <> ?)`,
		v.Name, v.City, v.Country, v.ID, v.Name, v.City, v.Country)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a venue unless an event still points at it.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	var deps int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE venue_id = ?`, id).Scan(&deps); err != nil {
		return err
	}
	if deps > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}
