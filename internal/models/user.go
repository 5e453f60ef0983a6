package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// IsAdmin reports whether the user carries admin privileges. The first
// account bootstraps as admin, so a fresh deployment needs no seed data.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.ID == 1
}

// Token types carried in the "typ" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the structure of the JWT claims. The custom fields are a
// fixed snapshot taken at issuance; verification never re-reads the store,
// so a role change only takes effect once the user logs in again.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Fresh     bool   `json:"fresh,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}
