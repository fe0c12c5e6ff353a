package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pet-hostel/internal/analytics"
	"github.com/iliyamo/pet-hostel/internal/model"
	"github.com/iliyamo/pet-hostel/internal/repository"
)

// AnalyticsHandler serves the operations dashboard and the detailed
// booking listing. Routes are restricted to staff and admin by the
// role middleware; the handler itself only reads. The dashboard is
// assembled from six independent queries with no transaction around
// them — sub-metrics may reflect slightly different states when writes
// land mid-assembly, which is an accepted tradeoff.
type AnalyticsHandler struct {
	Analytics *repository.AnalyticsRepo
}

func NewAnalyticsHandler(analytics *repository.AnalyticsRepo) *AnalyticsHandler {
	if analytics == nil {
		panic("nil repository passed to NewAnalyticsHandler")
	}
	return &AnalyticsHandler{Analytics: analytics}
}

type birthdayResp struct {
	PetName   string `json:"pet_name"`
	PetDob    string `json:"pet_dob"`
	OwnerName string `json:"owner_name"`
}

type dashboardResp struct {
	MostRegularCustomer    *model.RegularCustomer `json:"most_regular_customer"`
	PetsInCare             []model.PetTypeCount   `json:"pets_in_care"`
	MostPreferredService   *string                `json:"most_preferred_service"`
	TotalBookingsThisMonth int                    `json:"total_bookings_this_month"`
	TotalRevenueThisMonth  float64                `json:"total_revenue_this_month"`
	TopPetTypes            []string               `json:"top_pet_types"`
	UpcomingPetBirthdays   []birthdayResp         `json:"upcoming_pet_birthdays"`
}

// Dashboard handles GET /v1/analytics/dashboard. Every metric
// tolerates an empty booking set: nulls, empty lists and zeros, never
// an error.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var resp dashboardResp

	regular, err := h.Analytics.MostRegularCustomer(ctx)
	if err != nil {
		return h.fail(c, "most regular customer", err)
	}
	resp.MostRegularCustomer = regular

	inCare, err := h.Analytics.PetsInCare(ctx)
	if err != nil {
		return h.fail(c, "pets in care", err)
	}
	resp.PetsInCare = inCare

	lists, err := h.Analytics.ServiceLists(ctx)
	if err != nil {
		return h.fail(c, "service lists", err)
	}
	if name, ok := analytics.PreferredService(lists); ok {
		resp.MostPreferredService = &name
	}

	resp.TotalBookingsThisMonth, err = h.Analytics.BookingsThisMonth(ctx)
	if err != nil {
		return h.fail(c, "bookings this month", err)
	}
	resp.TotalRevenueThisMonth, err = h.Analytics.RevenueThisMonth(ctx)
	if err != nil {
		return h.fail(c, "revenue this month", err)
	}

	typeCounts, err := h.Analytics.PetTypeCounts(ctx)
	if err != nil {
		return h.fail(c, "pet type counts", err)
	}
	resp.TopPetTypes = analytics.TopPetTypes(typeCounts)

	pets, err := h.Analytics.PetBirthdays(ctx)
	if err != nil {
		return h.fail(c, "pet birthdays", err)
	}
	resp.UpcomingPetBirthdays = []birthdayResp{}
	for _, p := range analytics.FilterUpcomingBirthdays(time.Now().UTC(), pets) {
		resp.UpcomingPetBirthdays = append(resp.UpcomingPetBirthdays, birthdayResp{
			PetName:   p.PetName,
			PetDob:    formatDate(p.PetDob),
			OwnerName: p.OwnerName,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

type bookingDetailResp struct {
	bookingResp
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerMobile string `json:"customer_mobile"`
}

// DetailedBookings handles GET /v1/analytics/bookings: every booking
// joined with its owning customer's display fields for administrative
// review.
func (h *AnalyticsHandler) DetailedBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	details, err := h.Analytics.DetailedBookings(ctx)
	if err != nil {
		return h.fail(c, "detailed bookings", err)
	}

	out := make([]bookingDetailResp, 0, len(details))
	for _, d := range details {
		out = append(out, bookingDetailResp{
			bookingResp:    toBookingResp(d.Booking),
			CustomerName:   d.CustomerName,
			CustomerEmail:  d.CustomerEmail,
			CustomerMobile: d.CustomerMobile,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// fail logs the store failure with detail and returns the generic
// server error; internal diagnostics never reach the client.
func (h *AnalyticsHandler) fail(c echo.Context, op string, err error) error {
	log.Printf("analytics: %s failed: %v", op, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
}
