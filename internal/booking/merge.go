package booking

import (
	"errors"
	"time"

	"github.com/iliyamo/pet-hostel/internal/model"
)

// ErrInvalidInterval is returned when a stay interval ends before it
// starts.
var ErrInvalidInterval = errors.New("booking_from is after booking_to")

// Patch carries the optional fields of a booking update. A nil field
// keeps the stored value; a non-nil field overrides it. Services uses
// nil (keep) versus non-nil (replace, possibly empty).
type Patch struct {
	BookingDate            *time.Time
	BookingFrom            *time.Time
	BookingTo              *time.Time
	PetName                *string
	PetType                *string
	PetDob                 *time.Time
	PetAge                 *string
	PetFood                *string
	PetVaccinated          *bool
	VaccinationCertificate *string
	Services               []string
	Amount                 *float64
	Remarks                *string
	CustomerID             *uint64
}

// ApplyPatch merges a patch onto an existing booking and returns the
// result. After the merge the vaccinated/certificate invariant is
// re-applied unconditionally: whenever PetVaccinated is false the
// certificate is discarded, regardless of what the caller supplied.
func ApplyPatch(existing model.Booking, p Patch) model.Booking {
	b := existing
	if p.BookingDate != nil {
		b.BookingDate = *p.BookingDate
	}
	if p.BookingFrom != nil {
		b.BookingFrom = *p.BookingFrom
	}
	if p.BookingTo != nil {
		b.BookingTo = *p.BookingTo
	}
	if p.PetName != nil {
		b.PetName = *p.PetName
	}
	if p.PetType != nil {
		b.PetType = *p.PetType
	}
	if p.PetDob != nil {
		dob := *p.PetDob
		b.PetDob = &dob
	}
	if p.PetAge != nil {
		b.PetAge = *p.PetAge
	}
	if p.PetFood != nil {
		b.PetFood = *p.PetFood
	}
	if p.PetVaccinated != nil {
		b.PetVaccinated = *p.PetVaccinated
	}
	if p.VaccinationCertificate != nil {
		cert := *p.VaccinationCertificate
		b.VaccinationCertificate = &cert
	}
	if p.Services != nil {
		b.Services = p.Services
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Remarks != nil {
		b.Remarks = *p.Remarks
	}
	if p.CustomerID != nil {
		b.CustomerID = *p.CustomerID
	}
	EnforceVaccinationInvariant(&b)
	return b
}

// EnforceVaccinationInvariant clears the certificate of an unvaccinated
// pet. Idempotent; safe to call on every write path.
func EnforceVaccinationInvariant(b *model.Booking) {
	if !b.PetVaccinated {
		b.VaccinationCertificate = nil
	}
}

// ValidateInterval rejects inverted stay intervals. Both bounds are
// inclusive, so equal days are a valid one-day stay.
func ValidateInterval(from, to time.Time) error {
	if from.After(to) {
		return ErrInvalidInterval
	}
	return nil
}
