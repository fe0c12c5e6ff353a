package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pet-hostel/internal/booking"
	"github.com/iliyamo/pet-hostel/internal/model"
	"github.com/iliyamo/pet-hostel/internal/queue"
	"github.com/iliyamo/pet-hostel/internal/repository"
	queue_publisher "github.com/iliyamo/pet-hostel/internal/service"
)

// BookingHandler implements the booking lifecycle: create, list, get,
// update and delete, with row visibility derived from the caller's
// role. Validation and authorization run before any store mutation so
// a rejected request never leaves a partial write. Methods assume the
// JWT middleware has already resolved the caller's identity.
type BookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewBookingHandler(bookings *repository.BookingRepo) *BookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

// ----- DTOs -----

// bookingReq is shared by create and update. Pointer fields make the
// partial-merge semantics explicit: an absent field keeps the stored
// value on update. Services distinguishes nil (keep) from empty
// (clear).
type bookingReq struct {
	BookingDate            *string  `json:"booking_date"`
	BookingFrom            *string  `json:"booking_from"`
	BookingTo              *string  `json:"booking_to"`
	PetName                *string  `json:"pet_name"`
	PetType                *string  `json:"pet_type"`
	PetDob                 *string  `json:"pet_dob"`
	PetAge                 *string  `json:"pet_age"`
	PetFood                *string  `json:"pet_food"`
	PetVaccinated          *bool    `json:"pet_vaccinated"`
	VaccinationCertificate *string  `json:"vaccination_certificate"`
	Services               []string `json:"services"`
	Amount                 *float64 `json:"amount"`
	Remarks                *string  `json:"remarks"`
	CustomerID             *uint64  `json:"customer_id"`
}

type bookingResp struct {
	ID                     uint64   `json:"id"`
	BookingDate            string   `json:"booking_date"`
	BookingFrom            string   `json:"booking_from"`
	BookingTo              string   `json:"booking_to"`
	PetName                string   `json:"pet_name"`
	PetType                string   `json:"pet_type"`
	PetDob                 *string  `json:"pet_dob,omitempty"`
	PetAge                 string   `json:"pet_age"`
	PetFood                string   `json:"pet_food"`
	PetVaccinated          bool     `json:"pet_vaccinated"`
	VaccinationCertificate *string  `json:"vaccination_certificate,omitempty"`
	Services               []string `json:"services"`
	Amount                 float64  `json:"amount"`
	Remarks                string   `json:"remarks"`
	UserID                 uint64   `json:"user_id"`
	CustomerID             uint64   `json:"customer_id"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:                     b.ID,
		BookingDate:            formatDate(b.BookingDate),
		BookingFrom:            formatDate(b.BookingFrom),
		BookingTo:              formatDate(b.BookingTo),
		PetName:                b.PetName,
		PetType:                b.PetType,
		PetDob:                 formatDatePtr(b.PetDob),
		PetAge:                 b.PetAge,
		PetFood:                b.PetFood,
		PetVaccinated:          b.PetVaccinated,
		VaccinationCertificate: b.VaccinationCertificate,
		Services:               b.Services,
		Amount:                 b.Amount,
		Remarks:                b.Remarks,
		UserID:                 b.UserID,
		CustomerID:             b.CustomerID,
	}
}

// certificateError maps validator sentinels to a client message, or
// returns "" when the error is not a certificate failure.
func certificateError(err error) string {
	switch {
	case errors.Is(err, booking.ErrCertificateTooLarge):
		return msgCertTooLarge
	case errors.Is(err, booking.ErrCertificateFormat):
		return msgCertFormat
	}
	return ""
}

// Create handles POST /v1/bookings. customer_id defaults to the caller
// for a self-booking; staff and admin may book on behalf of any
// customer, while customers may only book for themselves.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, err := getRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	if req.PetName == nil || *req.PetName == "" || req.PetType == nil || *req.PetType == "" ||
		req.BookingFrom == nil || req.BookingTo == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}

	from, err := parseDate(*req.BookingFrom)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
	}
	to, err := parseDate(*req.BookingTo)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
	}
	if err := booking.ValidateInterval(from, to); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidInterval})
	}
	if err := booking.ValidateCertificate(req.VaccinationCertificate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": certificateError(err)})
	}

	customerID := uid
	if req.CustomerID != nil && *req.CustomerID != 0 {
		if role == model.RoleCustomer && *req.CustomerID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": msgNotAuthorized})
		}
		customerID = *req.CustomerID
	}

	b := model.Booking{
		BookingDate: time.Now().UTC(),
		BookingFrom: from,
		BookingTo:   to,
		PetName:     *req.PetName,
		PetType:     *req.PetType,
		Services:    req.Services,
		UserID:      uid,
		CustomerID:  customerID,
	}
	if req.BookingDate != nil {
		d, err := parseDate(*req.BookingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
		}
		b.BookingDate = d
	}
	if req.PetDob != nil && *req.PetDob != "" {
		d, err := parseDate(*req.PetDob)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
		}
		b.PetDob = &d
	}
	if req.PetAge != nil {
		b.PetAge = *req.PetAge
	}
	if req.PetFood != nil {
		b.PetFood = *req.PetFood
	}
	if req.PetVaccinated != nil {
		b.PetVaccinated = *req.PetVaccinated
	}
	b.VaccinationCertificate = req.VaccinationCertificate
	if req.Amount != nil {
		b.Amount = *req.Amount
	}
	if req.Remarks != nil {
		b.Remarks = *req.Remarks
	}
	booking.EnforceVaccinationInvariant(&b)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Bookings.Create(ctx, b)
	if err != nil {
		log.Printf("create booking failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}

	go publishBookingEvent(queue.BookingActionCreated, stored)

	return c.JSON(http.StatusCreated, toBookingResp(stored))
}

// List handles GET /v1/bookings. Customers see only their own
// bookings; staff and admin see the full set. Newest stay first.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, err := getRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.List(ctx, repository.ScopeFor(role, uid))
	if err != nil {
		log.Printf("list bookings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}

	out := make([]bookingResp, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/bookings/:id. A booking outside the caller's
// scope is reported exactly like a missing one.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, err := getRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBookingID})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id, repository.ScopeFor(role, uid))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgBookingNotFound})
		}
		log.Printf("get booking %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Update handles PUT /v1/bookings/:id. Fields present in the body
// override stored values; absent fields are kept. The vaccinated/
// certificate invariant is re-applied after the merge no matter what
// the caller sent.
func (h *BookingHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, err := getRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBookingID})
	}

	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	if err := booking.ValidateCertificate(req.VaccinationCertificate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": certificateError(err)})
	}
	if req.CustomerID != nil && role == model.RoleCustomer && *req.CustomerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": msgNotAuthorized})
	}

	patch := booking.Patch{
		PetName:                req.PetName,
		PetType:                req.PetType,
		PetAge:                 req.PetAge,
		PetFood:                req.PetFood,
		PetVaccinated:          req.PetVaccinated,
		VaccinationCertificate: req.VaccinationCertificate,
		Services:               req.Services,
		Amount:                 req.Amount,
		Remarks:                req.Remarks,
		CustomerID:             req.CustomerID,
	}
	for _, f := range []struct {
		raw  *string
		dest **time.Time
	}{
		{req.BookingDate, &patch.BookingDate},
		{req.BookingFrom, &patch.BookingFrom},
		{req.BookingTo, &patch.BookingTo},
		{req.PetDob, &patch.PetDob},
	} {
		if f.raw == nil || *f.raw == "" {
			continue
		}
		d, err := parseDate(*f.raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
		}
		*f.dest = &d
	}

	sc := repository.ScopeFor(role, uid)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Bookings.GetByID(ctx, id, sc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgBookingNotFound})
		}
		log.Printf("load booking %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}

	merged := booking.ApplyPatch(existing, patch)
	if err := booking.ValidateInterval(merged.BookingFrom, merged.BookingTo); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidInterval})
	}

	stored, err := h.Bookings.Update(ctx, merged, sc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgBookingNotFound})
		}
		log.Printf("update booking %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return c.JSON(http.StatusOK, toBookingResp(stored))
}

// Delete handles DELETE /v1/bookings/:id. Deletion is physical; a
// missing or out-of-scope id is a 404, never a silent success.
func (h *BookingHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, err := getRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBookingID})
	}

	sc := repository.ScopeFor(role, uid)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// fetch first so the audit event can carry the removed record
	b, err := h.Bookings.GetByID(ctx, id, sc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgBookingNotFound})
		}
		log.Printf("load booking %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}

	deleted, err := h.Bookings.Delete(ctx, id, sc)
	if err != nil {
		log.Printf("delete booking %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgBookingNotFound})
	}

	go publishBookingEvent(queue.BookingActionDeleted, b)

	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}

// publishBookingEvent sends an audit event to the broker on its own
// context; publish failures are logged inside the publisher and never
// affect the request that triggered them.
func publishBookingEvent(action string, b model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishBookingEvent(ctx, queue.BookingEvent{
		Action:      action,
		BookingID:   b.ID,
		UserID:      b.UserID,
		CustomerID:  b.CustomerID,
		PetName:     b.PetName,
		PetType:     b.PetType,
		BookingFrom: formatDate(b.BookingFrom),
		BookingTo:   formatDate(b.BookingTo),
		Amount:      b.Amount,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
}
