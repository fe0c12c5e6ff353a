package model

import "time"

// Role names as stored in users.role. Staff and admin share full
// visibility into booking data; customers see only their own rows.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// ValidRole reports whether the given string is a known role name.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleStaff || role == RoleAdmin
}

// User represents an account record in the `users` table. The json
// tags are omitted; handlers define separate response types with the
// fields they are allowed to expose (the password hash never leaves
// the repository layer).
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Mobile       – contact number.
//  Dob          – date of birth (nullable).
//  Address      – postal address.
//  Role         – one of customer, staff, admin.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     // users.id
	Name         string     // users.name
	Email        string     // users.email
	PasswordHash string     // users.password
	Mobile       string     // users.mobile
	Dob          *time.Time // users.dob (nullable)
	Address      string     // users.address
	Role         string     // users.role
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token value is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
