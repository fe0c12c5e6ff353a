package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/pet-hostel/internal/handler"    // handlers implementing the business logic
	"github.com/iliyamo/pet-hostel/internal/middleware" // JWT authentication, role enforcement and rate limiting
	"github.com/iliyamo/pet-hostel/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication and account-management routes
// and applies the necessary middleware. Unauthenticated operations live
// under /v1/auth, while protected endpoints live under /v1. The extra
// middlewares (typically the Redis rate limiter) are applied to the
// protected group only, after JWT validation.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	// Routes that create or exchange tokens do not require a session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented one is revoked and a
	// new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body containing a `refresh_token` and
	// invalidates it. No JWT is required; possession of the refresh token
	// is proof enough.
	g.POST("/logout", a.Logout)

	// Everything below requires a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	for _, mw := range extra {
		auth.Use(mw)
	}

	// Self-service endpoints available to every authenticated role.
	auth.GET("/me", a.Me)
	auth.PUT("/users/:id/password", a.ChangePassword)

	// Profile reads and updates. The handler enforces that customers can
	// only reach their own record.
	auth.GET("/users/:id", a.GetUser)
	auth.PUT("/users/:id", a.UpdateCustomer)

	// Staff and admin can browse the customer base.
	staffOrAdmin := middleware.RequireRole(model.RoleStaff, model.RoleAdmin)
	auth.GET("/customers", a.ListCustomers, staffOrAdmin)

	// Administrative endpoints: staff roster management, arbitrary role
	// listings, password resets and customer removal.
	admin := middleware.RequireRole(model.RoleAdmin)
	auth.POST("/staff", a.AddStaff, admin)
	auth.GET("/staff", a.ListStaff, admin)
	auth.PUT("/staff/:id", a.UpdateStaff, admin)
	auth.DELETE("/staff/:id", a.DeleteStaff, admin)
	auth.GET("/users/role/:role", a.UsersByRole, admin)
	auth.POST("/auth/reset-password", a.ResetPassword, admin)
	auth.DELETE("/customers/:id", a.DeleteCustomer, admin)
}

// RegisterBookings registers the booking lifecycle endpoints. All three
// roles may call them; visibility scoping happens inside the handlers,
// where customers are pinned to their own customer_id.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCustomer, model.RoleStaff, model.RoleAdmin))
	for _, mw := range extra {
		g.Use(mw)
	}

	g.POST("", b.Create)
	g.GET("", b.List)
	g.GET("/:id", b.Get)
	g.PUT("/:id", b.Update)
	g.DELETE("/:id", b.Delete)
}

// RegisterAnalytics registers the dashboard endpoints. Aggregates span the
// whole facility, so customers are excluded entirely.
func RegisterAnalytics(e *echo.Echo, a *handler.AnalyticsHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/analytics")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStaff, model.RoleAdmin))
	for _, mw := range extra {
		g.Use(mw)
	}

	g.GET("/dashboard", a.Dashboard)
	g.GET("/bookings", a.DetailedBookings)
}
