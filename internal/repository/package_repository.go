package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Package mirrors the 'packages' table.  Type is GRANDSTAND or VIP and
// determines which tier vocabulary applies.
type Package struct {
	ID      uint64 `json:"id"`
	EventID uint64 `json:"event_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

// ErrPackageNotFound indicates that a package was not located in the DB.
var ErrPackageNotFound = errors.New("package not found")

type PackageRepo struct{ db *sql.DB }

func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{db: db} }

// Create inserts a package and assigns the generated ID.
func (r *PackageRepo) Create(ctx context.Context, p *Package) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO packages (event_id, name, type) VALUES (?, ?, ?)`,
		p.EventID, p.Name, p.Type)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a package by id.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (*Package, error) {
	var p Package
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, name, type FROM packages WHERE id = ?`, id).
		Scan(&p.ID, &p.EventID, &p.Name, &p.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByEvent returns the packages offered for an event.
func (r *PackageRepo) ListByEvent(ctx context.Context, eventID uint64) ([]Package, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, name, type FROM packages WHERE event_id = ? ORDER BY name ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Package
	for rows.Next() {
		var p Package
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Type); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Update rewrites a package; ErrNoChange when every field matches.
func (r *PackageRepo) Update(ctx context.Context, p *Package) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE packages SET event_id = ?, name = ?, type = ?
         WHERE id = ? AND (event_id <> ? OR name <> ? OR type <> ?)`,
		p.EventID, p.Name, p.Type, p.ID, p.EventID, p.Name, p.Type)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM packages WHERE id = ? LIMIT 1`, p.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPackageNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a package once it has no hotels, tickets or tiers left.
func (r *PackageRepo) Delete(ctx context.Context, id uint64) error {
	var deps int
	if err := r.db.QueryRowContext(ctx, `
        SELECT (SELECT COUNT(*) FROM hotels WHERE package_id = ?)
             + (SELECT COUNT(*) FROM tickets WHERE package_id = ?)
             + (SELECT COUNT(*) FROM package_tiers WHERE package_id = ?)`,
		id, id, id).Scan(&deps); err != nil {
		return err
	}
	if deps > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPackageNotFound
	}
	return nil
}
