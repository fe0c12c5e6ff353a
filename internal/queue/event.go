package queue

// Booking audit actions carried in BookingEvent.Action.
const (
	BookingActionCreated = "created"
	BookingActionDeleted = "deleted"
)

// BookingEvent is the message published to the booking.events queue
// whenever a booking is created or removed. Dates travel as
// YYYY-MM-DD strings so consumers need no timezone handling.
type BookingEvent struct {
	Action      string  `json:"action"`
	BookingID   uint64  `json:"booking_id"`
	UserID      uint64  `json:"user_id"`
	CustomerID  uint64  `json:"customer_id"`
	PetName     string  `json:"pet_name"`
	PetType     string  `json:"pet_type"`
	BookingFrom string  `json:"booking_from"`
	BookingTo   string  `json:"booking_to"`
	Amount      float64 `json:"amount"`
	OccurredAt  string  `json:"occurred_at"`
}
