package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/pet-hostel/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPreferredService(t *testing.T) {
	lists := [][]string{
		{"boarding", "grooming"},
		{"boarding"},
		{"daycare"},
	}
	name, ok := PreferredService(lists)
	assert.True(t, ok)
	assert.Equal(t, "boarding", name)
}

func TestPreferredService_tieResolvesLexicographically(t *testing.T) {
	lists := [][]string{
		{"grooming"},
		{"boarding"},
	}
	name, ok := PreferredService(lists)
	assert.True(t, ok)
	assert.Equal(t, "boarding", name)
}

func TestPreferredService_noServices(t *testing.T) {
	_, ok := PreferredService(nil)
	assert.False(t, ok)

	_, ok = PreferredService([][]string{{}, {}})
	assert.False(t, ok)
}

func TestTopPetTypes_singleWinner(t *testing.T) {
	counts := []model.PetTypeCount{
		{Type: "dog", Count: 5},
		{Type: "cat", Count: 3},
		{Type: "rabbit", Count: 1},
	}
	assert.Equal(t, []string{"dog"}, TopPetTypes(counts))
}

func TestTopPetTypes_keepsAllCoLeaders(t *testing.T) {
	counts := []model.PetTypeCount{
		{Type: "dog", Count: 4},
		{Type: "cat", Count: 4},
		{Type: "rabbit", Count: 2},
	}
	assert.Equal(t, []string{"cat", "dog"}, TopPetTypes(counts))
}

func TestTopPetTypes_empty(t *testing.T) {
	assert.Empty(t, TopPetTypes(nil))
	assert.Empty(t, TopPetTypes([]model.PetTypeCount{}))
}

func TestInBirthdayWindow_sameMonth(t *testing.T) {
	today := date(2026, time.June, 1)

	assert.True(t, InBirthdayWindow(today, date(2020, time.June, 1)), "today counts")
	assert.True(t, InBirthdayWindow(today, date(2019, time.June, 8)), "window end counts")
	assert.False(t, InBirthdayWindow(today, date(2019, time.June, 9)))
	assert.False(t, InBirthdayWindow(today, date(2021, time.December, 25)))
}

func TestInBirthdayWindow_yearBoundaryWrap(t *testing.T) {
	today := date(2025, time.December, 30)

	assert.True(t, InBirthdayWindow(today, date(2018, time.December, 31)))
	assert.True(t, InBirthdayWindow(today, date(2022, time.January, 2)))
	assert.True(t, InBirthdayWindow(today, date(2022, time.January, 6)), "window end after wrap")
	assert.False(t, InBirthdayWindow(today, date(2022, time.January, 7)))
	assert.False(t, InBirthdayWindow(today, date(2022, time.December, 29)))
}

func TestInBirthdayWindow_birthYearIrrelevant(t *testing.T) {
	today := date(2026, time.March, 3)
	assert.True(t, InBirthdayWindow(today, date(1999, time.March, 5)))
	assert.True(t, InBirthdayWindow(today, date(2030, time.March, 5)))
}

func TestFilterUpcomingBirthdays(t *testing.T) {
	today := date(2025, time.December, 30)
	pets := []model.PetBirthday{
		{PetName: "Rex", PetDob: date(2020, time.January, 2), OwnerName: "Ana"},
		{PetName: "Milo", PetDob: date(2019, time.June, 15), OwnerName: "Ben"},
		{PetName: "Luna", PetDob: date(2021, time.December, 31), OwnerName: "Cho"},
	}
	got := FilterUpcomingBirthdays(today, pets)
	assert.Len(t, got, 2)
	assert.Equal(t, "Rex", got[0].PetName)
	assert.Equal(t, "Luna", got[1].PetName)
}

func TestFilterUpcomingBirthdays_empty(t *testing.T) {
	assert.Empty(t, FilterUpcomingBirthdays(date(2026, time.May, 1), nil))
}
