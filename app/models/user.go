package models

import "time"

// Role is the closed set of roles a user may hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleCustomer, RoleAdmin, RoleSeller:
		return true
	}
	return false
}

// Address is a shipping/billing address on the user profile.
// A user may hold at most MaxAddresses of these.
type Address struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	ZipCode string `bson:"zip_code" json:"zip_code"`
}

// MaxAddresses is the address-count ceiling per user.
const MaxAddresses = 2

// User is the account record.
type User struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Email      string    `bson:"email" json:"email"`
	Username   string    `bson:"username" json:"username"`
	FullName   string    `bson:"full_name" json:"full_name"`
	Password   string    `bson:"password" json:"-"` // bcrypt hash, never serialised
	Roles      []Role    `bson:"roles" json:"roles"`
	Addresses  []Address `bson:"addresses" json:"addresses"`
	IsVerified bool      `bson:"is_verified" json:"is_verified"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleStrings returns the roles as plain strings for token claims.
func (u *User) RoleStrings() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r)
	}
	return out
}
