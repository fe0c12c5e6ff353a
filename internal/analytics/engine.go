// Package analytics computes the derived statistics that cannot be
// expressed as plain SQL aggregates: the service preference table over
// the serialized services column, the multi-winner top pet type, and
// the year-wrapping birthday window. Each function is a pure
// computation over rows fetched by the analytics repository.
package analytics

import (
	"sort"
	"time"

	"github.com/iliyamo/pet-hostel/internal/model"
)

// BirthdayLookaheadDays is the length of the forward window scanned for
// upcoming pet birthdays, counted from today inclusive.
const BirthdayLookaheadDays = 7

// PreferredService flattens decoded service lists into one frequency
// table and returns the most booked service name. Ties resolve to the
// lexicographically smallest name so the result is deterministic. The
// second return is false when no booking carries any service.
func PreferredService(lists [][]string) (string, bool) {
	counts := make(map[string]int)
	for _, services := range lists {
		for _, s := range services {
			counts[s]++
		}
	}
	best := ""
	bestCount := 0
	for name, n := range counts {
		if n > bestCount || (n == bestCount && bestCount > 0 && name < best) {
			best = name
			bestCount = n
		}
	}
	return best, bestCount > 0
}

// TopPetTypes returns every pet type tied at the maximum booking count.
// Unlike a LIMIT 1 ranking this keeps all co-leaders; the result is
// sorted by name for stable output. Empty input yields an empty slice.
func TopPetTypes(counts []model.PetTypeCount) []string {
	max := 0
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	top := []string{}
	if max == 0 {
		return top
	}
	for _, c := range counts {
		if c.Count == max {
			top = append(top, c.Type)
		}
	}
	sort.Strings(top)
	return top
}

// InBirthdayWindow reports whether the pet's birthday (month and day
// only, year-agnostic) falls within the lookahead window starting at
// today. The comparison runs on a normalized month-day ordinal; when
// the window crosses Dec 31 it splits into two ranges so the wrap to
// January is handled correctly.
func InBirthdayWindow(today, dob time.Time) bool {
	start := monthDay(today)
	end := monthDay(today.AddDate(0, 0, BirthdayLookaheadDays))
	d := monthDay(dob)
	if start <= end {
		return d >= start && d <= end
	}
	return d >= start || d <= end
}

// FilterUpcomingBirthdays keeps the pets whose birthday falls in the
// lookahead window relative to today. Input rows are already
// de-duplicated by the repository; order is preserved.
func FilterUpcomingBirthdays(today time.Time, pets []model.PetBirthday) []model.PetBirthday {
	upcoming := []model.PetBirthday{}
	for _, p := range pets {
		if InBirthdayWindow(today, p.PetDob) {
			upcoming = append(upcoming, p)
		}
	}
	return upcoming
}

// monthDay folds a date into an ordinal where only month and day
// contribute, e.g. Dec 28 -> 1228.
func monthDay(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}
