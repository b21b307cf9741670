package repository

// This file holds both ground-transport repositories.  Circuit transfers
// are priced per unit with a caller-chosen quantity; airport transfers are
// priced per vehicle, with the vehicle count derived from the adult head
// count and max_capacity at quote time.

import (
	"context"
	"database/sql"
	"errors"
)

// CircuitTransfer mirrors the 'circuit_transfers' table.
type CircuitTransfer struct {
	ID            uint64  `json:"id"`
	HotelID       uint64  `json:"hotel_id"`
	TransportType string  `json:"transport_type"`
	Price         float64 `json:"price"`
}

// AirportTransfer mirrors the 'airport_transfers' table.
type AirportTransfer struct {
	ID            uint64  `json:"id"`
	HotelID       uint64  `json:"hotel_id"`
	TransportType string  `json:"transport_type"`
	Price         float64 `json:"price"`
	MaxCapacity   int     `json:"max_capacity"`
}

// ErrTransferNotFound indicates that a transfer was not located in the DB.
var ErrTransferNotFound = errors.New("transfer not found")

type CircuitTransferRepo struct{ db *sql.DB }

func NewCircuitTransferRepo(db *sql.DB) *CircuitTransferRepo { return &CircuitTransferRepo{db: db} }

// Create inserts a circuit transfer and assigns the generated ID.
func (r *CircuitTransferRepo) Create(ctx context.Context, t *CircuitTransfer) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO circuit_transfers (hotel_id, transport_type, price) VALUES (?, ?, ?)`,
		t.HotelID, t.TransportType, t.Price)
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

// ListByHotel returns the circuit transfers offered from a hotel.
func (r *CircuitTransferRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]CircuitTransfer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, hotel_id, transport_type, price FROM circuit_transfers WHERE hotel_id = ? ORDER BY price ASC`,
		hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []CircuitTransfer
	for rows.Next() {
		var t CircuitTransfer
		if err := rows.Scan(&t.ID, &t.HotelID, &t.TransportType, &t.Price); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Update rewrites a circuit transfer; ErrNoChange when identical.
func (r *CircuitTransferRepo) Update(ctx context.Context, t *CircuitTransfer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE circuit_transfers SET hotel_id = ?, transport_type = ?, price = ?
         WHERE id = ? AND (hotel_id <> ? OR transport_type <> ? OR price <> ?)`,
		t.HotelID, t.TransportType, t.Price, t.ID, t.HotelID, t.TransportType, t.Price)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM circuit_transfers WHERE id = ? LIMIT 1`, t.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransferNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a circuit transfer.
func (r *CircuitTransferRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM circuit_transfers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTransferNotFound
	}
	return nil
}

type AirportTransferRepo struct{ db *sql.DB }

func NewAirportTransferRepo(db *sql.DB) *AirportTransferRepo { return &AirportTransferRepo{db: db} }

// Create inserts an airport transfer and assigns the generated ID.
func (r *AirportTransferRepo) Create(ctx context.Context, t *AirportTransfer) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO airport_transfers (hotel_id, transport_type, price, max_capacity) VALUES (?, ?, ?, ?)`,
		t.HotelID, t.TransportType, t.Price, t.MaxCapacity)
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

// ListByHotel returns the airport transfers offered from a hotel.
func (r *AirportTransferRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]AirportTransfer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, hotel_id, transport_type, price, max_capacity FROM airport_transfers WHERE hotel_id = ? ORDER BY price ASC`,
		hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []AirportTransfer
	for rows.Next() {
		var t AirportTransfer
		if err := rows.Scan(&t.ID, &t.HotelID, &t.TransportType, &t.Price, &t.MaxCapacity); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Update rewrites an airport transfer; ErrNoChange when identical.
func (r *AirportTransferRepo) Update(ctx context.Context, t *AirportTransfer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE airport_transfers SET hotel_id = ?, transport_type = ?, price = ?, max_capacity = ?
         WHERE id = ? AND (hotel_id <> ? OR transport_type <> ? OR price <> ? OR max_capacity <> ?)`,
		t.HotelID, t.TransportType, t.Price, t.MaxCapacity,
		t.ID,
		t.HotelID, t.TransportType, t.Price, t.MaxCapacity)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM airport_transfers WHERE id = ? LIMIT 1`, t.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransferNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes an airport transfer.
func (r *AirportTransferRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM airport_transfers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTransferNotFound
	}
	return nil
}
