package model

import "time"

// Booking represents one boarding reservation as stored in the
// `bookings` table. Dates are day-granular (MySQL DATE columns);
// BookingFrom and BookingTo form an inclusive stay interval.
//
// Fields:
//  ID                     – primary key identifier.
//  BookingDate            – date the record was made.
//  BookingFrom            – first day of the stay (inclusive).
//  BookingTo              – last day of the stay (inclusive).
//  PetName, PetType       – the boarded pet; PetType is a free-form
//                           category such as "Dog" or "Cat".
//  PetDob                 – pet's date of birth (nullable).
//  PetAge, PetFood        – free-form descriptors supplied by the owner.
//  PetVaccinated          – whether a vaccination is on record.
//  VaccinationCertificate – data-URI encoded certificate. Present only
//                           when PetVaccinated is true.
//  Services               – booked service names. Stored serialized as a
//                           JSON array in bookings.services; always
//                           exposed decoded.
//  Amount                 – total price for the stay, 0 when unset.
//  Remarks                – free text.
//  UserID                 – account that created the record.
//  CustomerID             – account the stay is for. Differs from UserID
//                           when staff books on behalf of a customer.
type Booking struct {
	ID                     uint64     // bookings.id
	BookingDate            time.Time  // bookings.booking_date
	BookingFrom            time.Time  // bookings.booking_from
	BookingTo              time.Time  // bookings.booking_to
	PetName                string     // bookings.pet_name
	PetType                string     // bookings.pet_type
	PetDob                 *time.Time // bookings.pet_dob (nullable)
	PetAge                 string     // bookings.pet_age
	PetFood                string     // bookings.pet_food
	PetVaccinated          bool       // bookings.pet_vaccinated
	VaccinationCertificate *string    // bookings.vaccination_certificate (nullable)
	Services               []string   // bookings.services (JSON array)
	Amount                 float64    // bookings.amount
	Remarks                string     // bookings.remarks
	UserID                 uint64     // bookings.user_id
	CustomerID             uint64     // bookings.customer_id
}

// BookingDetail is a booking joined with its owning customer's display
// fields. Returned by the administrative review listing.
type BookingDetail struct {
	Booking
	CustomerName   string
	CustomerEmail  string
	CustomerMobile string
}
