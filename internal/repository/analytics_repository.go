package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/pet-hostel/internal/booking"
	"github.com/iliyamo/pet-hostel/internal/model"
)

// AnalyticsRepo exposes the read-only queries behind the operations
// dashboard. Each method issues its own statement; the dashboard is a
// composite of independently-consistent reads, not a transaction, and
// concurrent writes may land between two of them. That tradeoff is
// intentional and must not be papered over with a snapshot.
//
// Aggregations MySQL can express (counts, sums, date filters) run in
// SQL; the ones that need the decoded services column or the
// year-wrapping birthday window return raw rows for the analytics
// package to finish client-side.
type AnalyticsRepo struct{ DB *sql.DB }

func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{DB: db} }

// MostRegularCustomer returns the customer with the most bookings, or
// nil when the table is empty. Ties break on the lowest customer id so
// the result does not depend on storage order.
func (r *AnalyticsRepo) MostRegularCustomer(ctx context.Context) (*model.RegularCustomer, error) {
	const q = `SELECT u.id, u.name, u.email, COUNT(b.id) AS total_bookings
		FROM bookings b
		JOIN users u ON b.customer_id = u.id
		GROUP BY u.id, u.name, u.email
		ORDER BY total_bookings DESC, u.id ASC
		LIMIT 1`
	var c model.RegularCustomer
	err := r.DB.QueryRowContext(ctx, q).Scan(&c.CustomerID, &c.Name, &c.Email, &c.TotalBookings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PetsInCare counts bookings whose stay interval covers today, grouped
// by pet type. Both interval ends are inclusive at day granularity.
func (r *AnalyticsRepo) PetsInCare(ctx context.Context) ([]model.PetTypeCount, error) {
	const q = `SELECT pet_type, COUNT(*) FROM bookings
		WHERE booking_from <= CURDATE() AND booking_to >= CURDATE()
		GROUP BY pet_type`
	return r.typeCounts(ctx, q)
}

// PetTypeCounts groups the whole booking set by pet type. The caller
// derives the co-leading top types from the full table.
func (r *AnalyticsRepo) PetTypeCounts(ctx context.Context) ([]model.PetTypeCount, error) {
	return r.typeCounts(ctx, "SELECT pet_type, COUNT(*) FROM bookings GROUP BY pet_type")
}

func (r *AnalyticsRepo) typeCounts(ctx context.Context, q string) ([]model.PetTypeCount, error) {
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PetTypeCount{}
	for rows.Next() {
		var c model.PetTypeCount
		if err := rows.Scan(&c.Type, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ServiceLists returns every booking's services column decoded. The
// preference ranking flattens these client-side because the column is
// an opaque JSON string to MySQL.
func (r *AnalyticsRepo) ServiceLists(ctx context.Context) ([][]string, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT services FROM bookings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]string{}
	for rows.Next() {
		var raw sql.NullString
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, booking.DecodeServices(raw.String))
	}
	return out, rows.Err()
}

// BookingsThisMonth counts bookings recorded in the current calendar
// month and year.
func (r *AnalyticsRepo) BookingsThisMonth(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
		WHERE MONTH(booking_date) = MONTH(CURDATE()) AND YEAR(booking_date) = YEAR(CURDATE())`
	var n int
	err := r.DB.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}

// RevenueThisMonth sums amounts of bookings recorded in the current
// calendar month and year; 0 when there are none.
func (r *AnalyticsRepo) RevenueThisMonth(ctx context.Context) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount), 0) FROM bookings
		WHERE MONTH(booking_date) = MONTH(CURDATE()) AND YEAR(booking_date) = YEAR(CURDATE())`
	var total float64
	err := r.DB.QueryRowContext(ctx, q).Scan(&total)
	return total, err
}

// PetBirthdays returns one row per distinct (pet name, pet dob, owner
// name) tuple with a recorded date of birth. Window filtering happens
// client-side because the month-day comparison has to wrap across the
// year boundary.
func (r *AnalyticsRepo) PetBirthdays(ctx context.Context) ([]model.PetBirthday, error) {
	const q = `SELECT b.pet_name, b.pet_dob, u.name
		FROM bookings b
		JOIN users u ON b.customer_id = u.id
		WHERE b.pet_dob IS NOT NULL
		GROUP BY b.pet_name, b.pet_dob, u.name`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PetBirthday{}
	for rows.Next() {
		var p model.PetBirthday
		if err := rows.Scan(&p.PetName, &p.PetDob, &p.OwnerName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DetailedBookings joins every booking with its owning customer's
// display fields for administrative review, newest stay first.
func (r *AnalyticsRepo) DetailedBookings(ctx context.Context) ([]model.BookingDetail, error) {
	const q = `SELECT b.id, b.booking_date, b.booking_from, b.booking_to, b.pet_name, b.pet_type,
		b.pet_dob, b.pet_age, b.pet_food, b.pet_vaccinated, b.vaccination_certificate, b.services,
		b.amount, b.remarks, b.user_id, b.customer_id, u.name, u.email, u.mobile
		FROM bookings b
		JOIN users u ON b.customer_id = u.id
		ORDER BY b.booking_from DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingDetail{}
	for rows.Next() {
		var (
			d        model.BookingDetail
			petDob   sql.NullTime
			cert     sql.NullString
			services string
		)
		err := rows.Scan(&d.ID, &d.BookingDate, &d.BookingFrom, &d.BookingTo,
			&d.PetName, &d.PetType, &petDob, &d.PetAge, &d.PetFood,
			&d.PetVaccinated, &cert, &services, &d.Amount, &d.Remarks,
			&d.UserID, &d.CustomerID, &d.CustomerName, &d.CustomerEmail, &d.CustomerMobile)
		if err != nil {
			return nil, err
		}
		if petDob.Valid {
			dob := petDob.Time
			d.PetDob = &dob
		}
		if cert.Valid {
			c := cert.String
			d.VaccinationCertificate = &c
		}
		d.Services = booking.DecodeServices(services)
		out = append(out, d)
	}
	return out, rows.Err()
}
