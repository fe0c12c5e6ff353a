package model

import "time"

// RegularCustomer is the customer with the most bookings on record,
// joined with display fields for the dashboard.
type RegularCustomer struct {
	CustomerID    uint64 `json:"customer_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	TotalBookings int    `json:"total_bookings"`
}

// PetTypeCount pairs a pet type with the number of bookings carrying it.
type PetTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PetBirthday identifies one pet for the upcoming-birthday list. Entries
// are de-duplicated on the (PetName, PetDob, OwnerName) tuple so a pet
// with several bookings appears once.
type PetBirthday struct {
	PetName   string    `json:"pet_name"`
	PetDob    time.Time `json:"-"`
	OwnerName string    `json:"owner_name"`
}
