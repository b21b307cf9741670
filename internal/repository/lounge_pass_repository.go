package repository

import (
	"context"
	"database/sql"
	"errors"
)

// LoungePass mirrors the 'lounge_passes' table.
type LoungePass struct {
	ID      uint64  `json:"id"`
	EventID uint64  `json:"event_id"`
	Variant string  `json:"variant"`
	Price   float64 `json:"price"`
}

// ErrLoungePassNotFound indicates that a lounge pass was not located in the DB.
var ErrLoungePassNotFound = errors.New("lounge pass not found")

type LoungePassRepo struct{ db *sql.DB }

func NewLoungePassRepo(db *sql.DB) *LoungePassRepo { return &LoungePassRepo{db: db} }

// Create inserts a lounge pass and assigns the generated ID.
func (r *LoungePassRepo) Create(ctx context.Context, lp *LoungePass) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lounge_passes (event_id, variant, price) VALUES (?, ?, ?)`,
		lp.EventID, lp.Variant, lp.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	lp.ID = uint64(id)
	return nil
}

// ListByEvent returns the lounge passes offered for an event.
func (r *LoungePassRepo) ListByEvent(ctx context.Context, eventID uint64) ([]LoungePass, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, variant, price FROM lounge_passes WHERE event_id = ? ORDER BY price ASC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []LoungePass
	for rows.Next() {
		var lp LoungePass
		if err := rows.Scan(&lp.ID, &lp.EventID, &lp.Variant, &lp.Price); err != nil {
			return nil, err
		}
		result = append(result, lp)
	}
	return result, rows.Err()
}

// Update rewrites a lounge pass; ErrNoChange when identical.
func (r *LoungePassRepo) Update(ctx context.Context, lp *LoungePass) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE lounge_passes SET event_id = ?, variant = ?, price = ?
         WHERE id = ? AND (event_id <> ? OR variant <> ? OR price <> ?)`,
		lp.EventID, lp.Variant, lp.Price, lp.ID, lp.EventID, lp.Variant, lp.Price)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM lounge_passes WHERE id = ? LIMIT 1`, lp.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLoungePassNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a lounge pass.
func (r *LoungePassRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lounge_passes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLoungePassNotFound
	}
	return nil
}
