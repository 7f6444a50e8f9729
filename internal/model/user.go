package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Passwords are stored only as bcrypt hashes; the system this
// service replaces compared plaintext credentials, which is not
// carried over.  Admin accounts are ordinary users with the ADMIN role
// rather than a separate table.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Username      – unique login name (3-20 alphanumeric/underscore).
//  Email         – unique email address.
//  Phone         – 10 digit phone number (may be empty for admins).
//  VehicleNumber – default vehicle plate registered at signup.
//  PasswordHash  – bcrypt hashed password.
//  Role          – USER or ADMIN.
type User struct {
	ID            uint64    // users.id
	Username      string    // users.username
	Email         string    // users.email
	Phone         string    // users.phone
	VehicleNumber string    // users.vehicle_number
	PasswordHash  string    // users.password_hash
	Role          string    // users.role
	CreatedAt     time.Time // users.created_at
}

// User roles stored in the `role` column and carried in JWT claims.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// RefreshToken models an entry in the `refresh_tokens` table.  The
// plain token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
