package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// APIKey mirrors the 'api_keys' table.  The raw key is shown once at
// creation; only its hash is stored.
type APIKey struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	KeyHash   string    `json:"-"` // never serialized
	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrAPIKeyNotFound indicates that an API key was not located in the DB.
var ErrAPIKeyNotFound = errors.New("api key not found")

type APIKeyRepo struct{ DB *sql.DB }

func NewAPIKeyRepo(db *sql.DB) *APIKeyRepo { return &APIKeyRepo{DB: db} }

// Create inserts a key row and assigns the generated ID.
func (r *APIKeyRepo) Create(ctx context.Context, k *APIKey) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO api_keys (name, key_hash, created_by) VALUES (?,?,?)",
		k.Name, k.KeyHash, k.CreatedBy)
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
	k.ID = uint64(id)
	return nil
}

// List returns every key (hashes only) for the API key admin table.
func (r *APIKeyRepo) List(ctx context.Context) ([]APIKey, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, key_hash, created_by, created_at FROM api_keys ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []APIKey
	for rows.Next() {
		var k APIKey
		if err := rows.Scan(&k.ID, &k.Name, &k.KeyHash, &k.CreatedBy, &k.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, k)
	}
	return result, rows.Err()
}

// FindByHash looks up a key row by the SHA-256 hash of the presented key.
func (r *APIKeyRepo) FindByHash(ctx context.Context, keyHash string) (*APIKey, error) {
	var k APIKey
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, key_hash, created_by, created_at FROM api_keys WHERE key_hash=? LIMIT 1",
		keyHash).Scan(&k.ID, &k.Name, &k.KeyHash, &k.CreatedBy, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAPIKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// Delete revokes a key by removing its row.
func (r *APIKeyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM api_keys WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAPIKeyNotFound
	}
	return nil
}
