package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pet-hostel/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseBooking() model.Booking {
	cert := "data:application/pdf;base64,JVBERi0xLjQK"
	return model.Booking{
		ID:                     7,
		BookingDate:            day(2026, time.March, 1),
		BookingFrom:            day(2026, time.March, 10),
		BookingTo:              day(2026, time.March, 14),
		PetName:                "Rex",
		PetType:                "dog",
		PetFood:                "kibble",
		PetVaccinated:          true,
		VaccinationCertificate: &cert,
		Services:               []string{"boarding"},
		Amount:                 120.50,
		UserID:                 3,
		CustomerID:             3,
	}
}

func TestApplyPatch_nilFieldsKeepStoredValues(t *testing.T) {
	got := ApplyPatch(baseBooking(), Patch{})
	assert.Equal(t, baseBooking(), got)
}

func TestApplyPatch_overridesOnlySuppliedFields(t *testing.T) {
	name := "Bella"
	amount := 200.0
	to := day(2026, time.March, 16)
	got := ApplyPatch(baseBooking(), Patch{PetName: &name, Amount: &amount, BookingTo: &to})

	assert.Equal(t, "Bella", got.PetName)
	assert.Equal(t, 200.0, got.Amount)
	assert.Equal(t, to, got.BookingTo)
	// untouched fields survive
	assert.Equal(t, "dog", got.PetType)
	assert.Equal(t, day(2026, time.March, 10), got.BookingFrom)
	assert.Equal(t, []string{"boarding"}, got.Services)
}

func TestApplyPatch_servicesNilKeepsEmptyReplaces(t *testing.T) {
	kept := ApplyPatch(baseBooking(), Patch{Services: nil})
	assert.Equal(t, []string{"boarding"}, kept.Services)

	cleared := ApplyPatch(baseBooking(), Patch{Services: []string{}})
	assert.Empty(t, cleared.Services)
}

func TestApplyPatch_unvaccinatedDropsCertificate(t *testing.T) {
	vaccinated := false
	got := ApplyPatch(baseBooking(), Patch{PetVaccinated: &vaccinated})
	assert.Nil(t, got.VaccinationCertificate)
}

func TestApplyPatch_certificateIgnoredWhenUnvaccinated(t *testing.T) {
	// Supplying both a certificate and vaccinated=false in one patch
	// must not leave the certificate behind.
	vaccinated := false
	cert := "data:image/png;base64,aGVsbG8="
	got := ApplyPatch(baseBooking(), Patch{PetVaccinated: &vaccinated, VaccinationCertificate: &cert})
	assert.Nil(t, got.VaccinationCertificate)
}

func TestApplyPatch_copiesPointerPayloads(t *testing.T) {
	cert := "data:image/png;base64,aGVsbG8="
	p := Patch{VaccinationCertificate: &cert}
	got := ApplyPatch(baseBooking(), p)
	require.NotNil(t, got.VaccinationCertificate)
	assert.NotSame(t, &cert, got.VaccinationCertificate)
	assert.Equal(t, cert, *got.VaccinationCertificate)
}

func TestEnforceVaccinationInvariant(t *testing.T) {
	b := baseBooking()
	EnforceVaccinationInvariant(&b)
	assert.NotNil(t, b.VaccinationCertificate, "vaccinated pet keeps its certificate")

	b.PetVaccinated = false
	EnforceVaccinationInvariant(&b)
	assert.Nil(t, b.VaccinationCertificate)
}

func TestValidateInterval(t *testing.T) {
	from := day(2026, time.April, 1)

	assert.NoError(t, ValidateInterval(from, from), "one-day stay is valid")
	assert.NoError(t, ValidateInterval(from, from.AddDate(0, 0, 3)))
	assert.ErrorIs(t, ValidateInterval(from, from.AddDate(0, 0, -1)), ErrInvalidInterval)
}
