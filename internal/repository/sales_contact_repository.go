package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// SalesContact mirrors the 'sales_contacts' table.  A contact is the
// recipient of booking request emails, optionally scoped to a region.
type SalesContact struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Region string `json:"region"`
}

// ErrSalesContactNotFound indicates no usable sales contact exists.
var ErrSalesContactNotFound = errors.New("sales contact not found")

type SalesContactRepo struct{ db *sql.DB }

func NewSalesContactRepo(db *sql.DB) *SalesContactRepo { return &SalesContactRepo{db: db} }

// Create inserts a contact and assigns the generated ID.
func (r *SalesContactRepo) Create(ctx context.Context, c *SalesContact) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sales_contacts (name, email, region) VALUES (?, ?, ?)`,
		c.Name, strings.ToLower(strings.TrimSpace(c.Email)), c.Region)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// List returns all contacts ordered by region then name.
func (r *SalesContactRepo) List(ctx context.Context) ([]SalesContact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, region FROM sales_contacts ORDER BY region ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []SalesContact
	for rows.Next() {
		var c SalesContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Region); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// Resolve picks the contact for a region, falling back to the lowest-id
// contact when the region has no dedicated owner.
func (r *SalesContactRepo) Resolve(ctx context.Context, region string) (*SalesContact, error) {
	var c SalesContact
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, region FROM sales_contacts
         WHERE region = ? ORDER BY id ASC LIMIT 1`, region).
		Scan(&c.ID, &c.Name, &c.Email, &c.Region)
	if errors.Is(err, sql.ErrNoRows) {
		err = r.db.QueryRowContext(ctx,
			`SELECT id, name, email, region FROM sales_contacts ORDER BY id ASC LIMIT 1`).
			Scan(&c.ID, &c.Name, &c.Email, &c.Region)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSalesContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a contact.
func (r *SalesContactRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales_contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSalesContactNotFound
	}
	return nil
}
