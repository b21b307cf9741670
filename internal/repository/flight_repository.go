package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Flight mirrors the 'flights' table.  Flights are priced per adult.
type Flight struct {
	ID      uint64  `json:"id"`
	EventID uint64  `json:"event_id"`
	Airline string  `json:"airline"`
	Class   string  `json:"class"`
	Price   float64 `json:"price"`
}

// ErrFlightNotFound indicates that a flight was not located in the DB.
var ErrFlightNotFound = errors.New("flight not found")

type FlightRepo struct{ db *sql.DB }

func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// Create inserts a flight and assigns the generated ID.
func (r *FlightRepo) Create(ctx context.Context, f *Flight) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO flights (event_id, airline, class, price) VALUES (?, ?, ?, ?)`,
		f.EventID, f.Airline, f.Class, f.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// ListByEvent returns flights offered for an event.
func (r *FlightRepo) ListByEvent(ctx context.Context, eventID uint64) ([]Flight, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, airline, class, price FROM flights WHERE event_id = ? ORDER BY price ASC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Flight
	for rows.Next() {
		var f Flight
		if err := rows.Scan(&f.ID, &f.EventID, &f.Airline, &f.Class, &f.Price); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// Update rewrites a flight; ErrNoChange when identical.
func (r *FlightRepo) Update(ctx context.Context, f *Flight) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flights SET event_id = ?, airline = ?, class = ?, price = ?
         WHERE id = ? AND (event_id <> ? OR airline <> ? OR class <> ? OR price <> ?)`,
		f.EventID, f.Airline, f.Class, f.Price,
		f.ID,
		f.EventID, f.Airline, f.Class, f.Price)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM flights WHERE id = ? LIMIT 1`, f.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFlightNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a flight.
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flights WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFlightNotFound
	}
	return nil
}
