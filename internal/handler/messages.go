package handler

// Error messages returned to clients, collected in one table so the
// wording stays consistent across endpoints. Store diagnostics are
// never echoed outward; handlers log the detail and reply with
// msgServerError.
const (
	msgInvalidBody        = "invalid request body"
	msgServerError        = "server error"
	msgEmailExists        = "email already registered"
	msgMissingFields      = "missing required fields"
	msgInvalidCredentials = "invalid credentials"
	msgUserNotFound       = "user not found"
	msgNotAuthorized      = "not authorized to perform this action"
	msgHasBookings        = "cannot delete customer with active bookings"
	msgBookingNotFound    = "booking not found"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidInterval    = "booking_from must not be after booking_to"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgCertTooLarge       = "vaccination certificate too large (max 1MB file)"
	msgCertFormat         = "invalid certificate format"
	msgPasswordRequired   = "current password and new password are required"
	msgPasswordTooShort   = "new password must be at least 6 characters long"
	msgPasswordMismatch   = "current password is incorrect"
)
