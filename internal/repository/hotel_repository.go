package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Hotel mirrors the 'hotels' table.
type Hotel struct {
	ID        uint64 `json:"id"`
	PackageID uint64 `json:"package_id"`
	Name      string `json:"name"`
	Stars     int    `json:"stars"`
}

// ErrHotelNotFound indicates that a hotel was not located in the DB.
var ErrHotelNotFound = errors.New("hotel not found")

type HotelRepo struct{ db *sql.DB }

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// Create inserts a hotel and assigns the generated ID.
func (r *HotelRepo) Create(ctx context.Context, h *Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotels (package_id, name, stars) VALUES (?, ?, ?)`,
		h.PackageID, h.Name, h.Stars)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID fetches a hotel by id.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*Hotel, error) {
	var h Hotel
	err := r.db.QueryRowContext(ctx,
		`SELECT id, package_id, name, stars FROM hotels WHERE id = ?`, id).
		Scan(&h.ID, &h.PackageID, &h.Name, &h.Stars)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListByPackage returns hotels offered under a package, best rated first.
func (r *HotelRepo) ListByPackage(ctx context.Context, packageID uint64) ([]Hotel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, package_id, name, stars FROM hotels WHERE package_id = ? ORDER BY stars DESC, name ASC`,
		packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Hotel
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.PackageID, &h.Name, &h.Stars); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// Update rewrites a hotel; ErrNoChange when every field matches.
func (r *HotelRepo) Update(ctx context.Context, h *Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hotels SET package_id = ?, name = ?, stars = ?
         WHERE id = ? AND (package_id <> ? OR name <> ? OR stars <> ?)`,
		h.PackageID, h.Name, h.Stars, h.ID, h.PackageID, h.Name, h.Stars)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM hotels WHERE id = ? LIMIT 1`, h.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHotelNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a hotel once no rooms or transfers reference it.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
	var deps int
	if err := r.db.QueryRowContext(ctx, `
        SELECT (SELECT COUNT(*) FROM rooms WHERE hotel_id = ?)
             + (SELECT COUNT(*) FROM circuit_transfers WHERE hotel_id = ?)
             + (SELECT COUNT(*) FROM airport_transfers WHERE hotel_id = ?)`,
		id, id, id).Scan(&deps); err != nil {
		return err
	}
	if deps > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHotelNotFound
	}
	return nil
}
