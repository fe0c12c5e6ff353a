package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/pet-hostel/internal/booking"
	"github.com/iliyamo/pet-hostel/internal/model"
)

// bookingColumns is the column list shared by every booking SELECT so
// scans stay in one place.
const bookingColumns = "id, booking_date, booking_from, booking_to, pet_name, pet_type, pet_dob, pet_age, pet_food, pet_vaccinated, vaccination_certificate, services, amount, remarks, user_id, customer_id"

// BookingRepo provides CRUD over the `bookings` table. The services
// list is encoded to its JSON column form on the way in and decoded on
// the way out; callers never see the serialized string. Scope filters
// are applied inside each statement so an out-of-scope row behaves
// exactly like a missing one.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Create inserts a booking and returns the stored row.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (model.Booking, error) {
	const q = `INSERT INTO bookings
		(booking_date, booking_from, booking_to, pet_name, pet_type, pet_dob, pet_age, pet_food,
		 pet_vaccinated, vaccination_certificate, services, amount, remarks, user_id, customer_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.DB.ExecContext(ctx, q,
		b.BookingDate, b.BookingFrom, b.BookingTo, b.PetName, b.PetType,
		nullTime(b.PetDob), b.PetAge, b.PetFood, b.PetVaccinated,
		nullString(b.VaccinationCertificate), booking.EncodeServices(b.Services),
		b.Amount, b.Remarks, b.UserID, b.CustomerID)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	// read the row back so store-assigned defaults are returned
	return r.GetByID(ctx, uint64(id), Scope{})
}

// List returns bookings visible to the scope, newest stay first.
func (r *BookingRepo) List(ctx context.Context, sc Scope) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings"
	args := []interface{}{}
	if sc.restricted() {
		q += " WHERE customer_id = ?"
		args = append(args, sc.CustomerID)
	}
	q += " ORDER BY booking_from DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches one booking within the scope. A row that exists but
// belongs to another customer yields ErrNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64, sc Scope) (model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	args := []interface{}{id}
	if sc.restricted() {
		q += " AND customer_id = ?"
		args = append(args, sc.CustomerID)
	}
	b, err := scanBooking(r.DB.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// Update overwrites the full record within the scope and returns the
// stored result. Callers merge patches before calling; the repository
// writes whatever it is handed.
func (r *BookingRepo) Update(ctx context.Context, b model.Booking, sc Scope) (model.Booking, error) {
	q := `UPDATE bookings SET booking_date=?, booking_from=?, booking_to=?, pet_name=?, pet_type=?,
		pet_dob=?, pet_age=?, pet_food=?, pet_vaccinated=?, vaccination_certificate=?, services=?,
		amount=?, remarks=?, customer_id=? WHERE id = ?`
	args := []interface{}{
		b.BookingDate, b.BookingFrom, b.BookingTo, b.PetName, b.PetType,
		nullTime(b.PetDob), b.PetAge, b.PetFood, b.PetVaccinated,
		nullString(b.VaccinationCertificate), booking.EncodeServices(b.Services),
		b.Amount, b.Remarks, b.CustomerID, b.ID,
	}
	if sc.restricted() {
		q += " AND customer_id = ?"
		args = append(args, sc.CustomerID)
	}
	if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, b.ID, sc)
}

// Delete removes a booking within the scope. It reports whether a row
// was actually removed; false maps to NotFound at the handler layer.
func (r *BookingRepo) Delete(ctx context.Context, id uint64, sc Scope) (bool, error) {
	q := "DELETE FROM bookings WHERE id = ?"
	args := []interface{}{id}
	if sc.restricted() {
		q += " AND customer_id = ?"
		args = append(args, sc.CustomerID)
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasUpcoming reports whether a customer still has bookings ending
// today or later. Used to block customer account deletion.
func (r *BookingRepo) HasUpcoming(ctx context.Context, customerID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM bookings WHERE customer_id = ? AND booking_to >= CURDATE() LIMIT 1",
		customerID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (model.Booking, error) {
	var (
		b        model.Booking
		petDob   sql.NullTime
		cert     sql.NullString
		services string
	)
	err := row.Scan(&b.ID, &b.BookingDate, &b.BookingFrom, &b.BookingTo,
		&b.PetName, &b.PetType, &petDob, &b.PetAge, &b.PetFood,
		&b.PetVaccinated, &cert, &services, &b.Amount, &b.Remarks,
		&b.UserID, &b.CustomerID)
	if err != nil {
		return model.Booking{}, err
	}
	if petDob.Valid {
		d := petDob.Time
		b.PetDob = &d
	}
	if cert.Valid {
		c := cert.String
		b.VaccinationCertificate = &c
	}
	b.Services = booking.DecodeServices(services)
	return b, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
