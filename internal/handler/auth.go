package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pet-hostel/internal/config"
	"github.com/iliyamo/pet-hostel/internal/model"
	"github.com/iliyamo/pet-hostel/internal/repository"
	"github.com/iliyamo/pet-hostel/internal/utils"
)

// AuthHandler bundles dependencies for authentication and account
// management endpoints. The booking repository is only consulted when
// deleting a customer, to refuse removal while future stays exist.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Tokens   *repository.TokenRepo
	Bookings *repository.BookingRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, b *repository.BookingRepo) *AuthHandler {
	if u == nil || t == nil || b == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Bookings: b}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Dob      string `json:"dob"`
	Address  string `json:"address"`
	Role     string `json:"role"` // customer | staff; defaults to customer
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type staffReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Dob      string `json:"dob"`
	Address  string `json:"address"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type resetPasswordReq struct {
	UserID      uint64 `json:"user_id"`
	NewPassword string `json:"new_password"`
}

type profileReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Dob     string `json:"dob"`
	Address string `json:"address"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Role    string  `json:"role"`
	Mobile  string  `json:"mobile"`
	Dob     *string `json:"dob,omitempty"`
	Address string  `json:"address"`
}

type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Mobile:  u.Mobile,
		Dob:     formatDatePtr(u.Dob),
		Address: u.Address,
	}
}

// Register creates an account and returns a token pair immediately.
// Profile fields are mandatory for customer and staff accounts.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleCustomer
	}
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role specified"})
	}
	if (role == model.RoleCustomer || role == model.RoleStaff) &&
		(req.Name == "" || req.Mobile == "" || req.Dob == "" || req.Address == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}

	u := model.User{Name: req.Name, Email: req.Email, Mobile: req.Mobile, Address: req.Address, Role: role}
	if req.Dob != "" {
		d, err := parseDate(req.Dob)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
		}
		u.Dob = &d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": msgEmailExists})
		}
		log.Printf("create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	u.ID = uid

	return h.issueTokens(c, ctx, u, http.StatusCreated)
}

// Login verifies credentials and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgInvalidCredentials})
		}
		log.Printf("load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgInvalidCredentials})
	}

	return h.issueTokens(c, ctx, u, http.StatusOK)
}

// Refresh validates a refresh token by hash, revokes it and issues a
// new pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return h.issueTokens(c, ctx, u, http.StatusOK)
}

// Logout invalidates the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		log.Printf("revoke refresh failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		log.Printf("load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// ChangePassword lets a user rotate their own password after proving
// the current one. Admins may rotate any password this way too.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
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
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgUserNotFound})
	}
	if id != uid && role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": msgNotAuthorized})
	}

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgPasswordRequired})
	}
	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgPasswordTooShort})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		log.Printf("load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgPasswordMismatch})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if err := h.Users.UpdatePassword(ctx, id, hash); err != nil {
		log.Printf("update password failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated successfully"})
}

// ResetPassword sets a new password without the current one. Admin
// only; every active session of the user is revoked afterwards.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	if req.UserID == 0 || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}
	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgPasswordTooShort})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		log.Printf("load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if err := h.Users.UpdatePassword(ctx, req.UserID, hash); err != nil {
		log.Printf("reset password failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, req.UserID)

	return c.JSON(http.StatusOK, echo.Map{"message": "password reset successfully"})
}

// AddStaff creates a staff account. The role is forced regardless of
// input.
func (h *AuthHandler) AddStaff(c echo.Context) error {
	var req staffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Mobile == "" || req.Dob == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}
	dob, err := parseDate(req.Dob)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{Name: req.Name, Email: req.Email, Mobile: req.Mobile, Dob: &dob, Address: req.Address, Role: model.RoleStaff}
	uid, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": msgEmailExists})
		}
		log.Printf("create staff failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	u.ID = uid

	return c.JSON(http.StatusCreated, echo.Map{"message": "staff added successfully", "staff": toUserPart(u)})
}

// ListStaff returns all staff accounts.
func (h *AuthHandler) ListStaff(c echo.Context) error {
	return h.listByRole(c, model.RoleStaff)
}

// ListCustomers returns all customer accounts.
func (h *AuthHandler) ListCustomers(c echo.Context) error {
	return h.listByRole(c, model.RoleCustomer)
}

// UsersByRole handles GET /v1/users/role/:role.
func (h *AuthHandler) UsersByRole(c echo.Context) error {
	role := c.Param("role")
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role specified"})
	}
	return h.listByRole(c, role)
}

func (h *AuthHandler) listByRole(c echo.Context, role string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListByRole(ctx, role)
	if err != nil {
		log.Printf("list %s failed: %v", role, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPart(u))
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateStaff rewrites a staff member's profile.
func (h *AuthHandler) UpdateStaff(c echo.Context) error {
	return h.updateProfile(c, model.RoleStaff, "staff updated successfully")
}

// UpdateCustomer rewrites a customer's profile. Customers may only
// touch their own record.
func (h *AuthHandler) UpdateCustomer(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, err := getRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if role == model.RoleCustomer && id != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": msgNotAuthorized})
	}
	return h.updateProfile(c, model.RoleCustomer, "profile updated successfully")
}

func (h *AuthHandler) updateProfile(c echo.Context, role, okMessage string) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgUserNotFound})
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}
	var dob *time.Time
	if req.Dob != "" {
		d, err := parseDate(req.Dob)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidDate})
		}
		dob = &d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Users.UpdateProfile(ctx, id, role, req.Name, req.Mobile, dob, req.Address, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		log.Printf("update %s profile failed: %v", role, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": okMessage})
}

// GetUser fetches one account. Customers may only read themselves.
func (h *AuthHandler) GetUser(c echo.Context) error {
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
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgUserNotFound})
	}
	if role == model.RoleCustomer && id != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": msgNotAuthorized})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		log.Printf("load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// DeleteStaff removes a staff account.
func (h *AuthHandler) DeleteStaff(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgUserNotFound})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.Users.DeleteByRole(ctx, id, model.RoleStaff)
	if err != nil {
		log.Printf("delete staff failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "staff deleted successfully"})
}

// DeleteCustomer removes a customer account, refused while bookings
// ending today or later still reference them.
func (h *AuthHandler) DeleteCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgUserNotFound})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
		}
		log.Printf("load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if u.Role != model.RoleCustomer {
		return c.JSON(http.StatusForbidden, echo.Map{"error": msgNotAuthorized})
	}

	busy, err := h.Bookings.HasUpcoming(ctx, id)
	if err != nil {
		log.Printf("check customer bookings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if busy {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgHasBookings})
	}

	deleted, err := h.Users.DeleteByRole(ctx, id, model.RoleCustomer)
	if err != nil {
		log.Printf("delete customer failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgServerError})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserNotFound})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted successfully"})
}

// issueTokens mints an access/refresh pair, stores the refresh hash
// and writes the auth response.
func (h *AuthHandler) issueTokens(c echo.Context, ctx context.Context, u model.User, status int) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	return c.JSON(status, authResp{
		User:    toUserPart(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}
