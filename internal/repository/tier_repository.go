package repository

import (
	"context"
	"database/sql"
	"errors"
)

// PackageTier mirrors the 'package_tiers' table.  A tier is a named
// bundling (Bronze/Silver/Gold for grandstand packages, Platinum/Diamond/
// VIP for VIP packages) defined under a package.
type PackageTier struct {
	ID        uint64 `json:"id"`
	PackageID uint64 `json:"package_id"`
	Name      string `json:"name"`
}

// ErrTierNotFound indicates that a tier was not located in the DB.
var ErrTierNotFound = errors.New("tier not found")

type TierRepo struct{ db *sql.DB }

func NewTierRepo(db *sql.DB) *TierRepo { return &TierRepo{db: db} }

// Create inserts a tier and assigns the generated ID.  Duplicate names
// within a package are rejected with ErrConflict.
func (r *TierRepo) Create(ctx context.Context, t *PackageTier) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO package_tiers (package_id, name) VALUES (?, ?)`,
		t.PackageID, t.Name)
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
	t.ID = uint64(id)
	return nil
}

// ListByPackage returns the tiers defined for a package.
func (r *TierRepo) ListByPackage(ctx context.Context, packageID uint64) ([]PackageTier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, package_id, name FROM package_tiers WHERE package_id = ? ORDER BY id ASC`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []PackageTier
	for rows.Next() {
		var t PackageTier
		if err := rows.Scan(&t.ID, &t.PackageID, &t.Name); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Delete removes a tier.
func (r *TierRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM package_tiers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTierNotFound
	}
	return nil
}
