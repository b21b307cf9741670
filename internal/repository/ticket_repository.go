package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Ticket mirrors the 'tickets' table.
type Ticket struct {
	ID        uint64  `json:"id"`
	PackageID uint64  `json:"package_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Remaining int     `json:"remaining"`
}

// ErrTicketNotFound indicates that a ticket was not located in the DB.
var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepo struct{ db *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// Create inserts a ticket and assigns the generated ID.
func (r *TicketRepo) Create(ctx context.Context, t *Ticket) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (package_id, name, price, remaining) VALUES (?, ?, ?, ?)`,
		t.PackageID, t.Name, t.Price, t.Remaining)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a ticket by id.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*Ticket, error) {
	var t Ticket
	err := r.db.QueryRowContext(ctx,
		`SELECT id, package_id, name, price, remaining FROM tickets WHERE id = ?`, id).
		Scan(&t.ID, &t.PackageID, &t.Name, &t.Price, &t.Remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByPackage returns tickets sold under a package.
func (r *TicketRepo) ListByPackage(ctx context.Context, packageID uint64) ([]Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, package_id, name, price, remaining FROM tickets WHERE package_id = ? ORDER BY price ASC`,
		packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.PackageID, &t.Name, &t.Price, &t.Remaining); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Update rewrites a ticket; ErrNoChange when every field matches.
func (r *TicketRepo) Update(ctx context.Context, t *Ticket) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET package_id = ?, name = ?, price = ?, remaining = ?
         WHERE id = ? AND (package_id <> ? OR name <> ? OR price <> ? OR remaining <> ?)`,
		t.PackageID, t.Name, t.Price, t.Remaining,
		t.ID,
		t.PackageID, t.Name, t.Price, t.Remaining)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tickets WHERE id = ? LIMIT 1`, t.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTicketNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a ticket.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}
