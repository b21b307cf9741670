package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Room mirrors the 'rooms' table.  Price covers the originally quoted stay
// of Nights nights; longer stays are billed per night at ExtraNightPrice.
// NOTE: Check-in/check-out are stored as DD/MM/YYYY strings, the format the
// console and the pricing core exchange.
type Room struct {
	ID              uint64  `json:"id"`
	HotelID         uint64  `json:"hotel_id"`
	Category        string  `json:"category"` // e.g. Deluxe, Suite
	Type            string  `json:"type"`     // e.g. Double, Twin
	Price           float64 `json:"price"`
	ExtraNightPrice float64 `json:"extra_night_price"`
	Nights          int     `json:"nights"`
	Remaining       int     `json:"remaining"`
	CheckInDate     string  `json:"check_in_date"`  // "DD/MM/YYYY"
	CheckOutDate    string  `json:"check_out_date"` // "DD/MM/YYYY"
}

// ErrRoomNotFound indicates that a room was not located in the DB.
var ErrRoomNotFound = errors.New("room not found")

type RoomRepo struct{ db *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a room and assigns the generated ID.
func (r *RoomRepo) Create(ctx context.Context, m *Room) error {
	const q = `INSERT INTO rooms
        (hotel_id, category, type, price, extra_night_price, nights, remaining, check_in_date, check_out_date)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.HotelID, m.Category, m.Type, m.Price, m.ExtraNightPrice, m.Nights, m.Remaining, m.CheckInDate, m.CheckOutDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a room by id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*Room, error) {
	const q = `SELECT id, hotel_id, category, type, price, extra_night_price, nights, remaining, check_in_date, check_out_date
               FROM rooms WHERE id = ?`
	var m Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.HotelID, &m.Category, &m.Type, &m.Price, &m.ExtraNightPrice,
		&m.Nights, &m.Remaining, &m.CheckInDate, &m.CheckOutDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByHotel returns the rooms of a hotel, cheapest first.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]Room, error) {
	const q = `SELECT id, hotel_id, category, type, price, extra_night_price, nights, remaining, check_in_date, check_out_date
               FROM rooms WHERE hotel_id = ? ORDER BY price ASC`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Room
	for rows.Next() {
		var m Room
		if err := rows.Scan(
			&m.ID, &m.HotelID, &m.Category, &m.Type, &m.Price, &m.ExtraNightPrice,
			&m.Nights, &m.Remaining, &m.CheckInDate, &m.CheckOutDate); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// Update rewrites a room; ErrNoChange when every field matches.
func (r *RoomRepo) Update(ctx context.Context, m *Room) error {
	const q = `UPDATE rooms
               SET hotel_id = ?, category = ?, type = ?, price = ?, extra_night_price = ?,
                   nights = ?, remaining = ?, check_in_date = ?, check_out_date = ?
               WHERE id = ? AND (hotel_id <> ? OR category <> ? OR type <> ? OR price <> ? OR extra_night_price <> ?
                   OR nights <> ? OR remaining <> ? OR check_in_date <> ? OR check_out_date <> ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.HotelID, m.Category, m.Type, m.Price, m.ExtraNightPrice, m.Nights, m.Remaining, m.CheckInDate, m.CheckOutDate,
		m.ID,
		m.HotelID, m.Category, m.Type, m.Price, m.ExtraNightPrice, m.Nights, m.Remaining, m.CheckInDate, m.CheckOutDate)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ? LIMIT 1`, m.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a room.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
