package store

import (
	"fmt"
	"strings"
	"time"
)

// Role selects the credential partition a user belongs to. Uniqueness of
// usernames is scoped to a single role partition.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

// ParseRole validates a role string case-insensitively. Unknown values are
// rejected rather than silently routed to a default partition.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleCustomer):
		return RoleCustomer, nil
	case string(RoleSeller):
		return RoleSeller, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be customer or seller", s)
	}
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose this in JSON responses
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
