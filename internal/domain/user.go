package domain

import "time"

// Role is the access level of a user
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// IsValidRole reports whether r is a known role
func IsValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// UserStatus tracks a pending seller-upgrade request. The zero value
// means no request has been made.
type UserStatus string

const (
	StatusNone      UserStatus = ""
	StatusRequested UserStatus = "requested"
	StatusVerified  UserStatus = "verified"
)

// User is an account, keyed by email. Users are created on first login
// with role customer; role changes only through admin action.
type User struct {
	ID        string     `bson:"_id,omitempty" json:"_id"`
	Email     string     `bson:"email" json:"email"`
	Name      string     `bson:"name" json:"name"`
	PhotoURL  string     `bson:"photoURL" json:"photoURL"`
	Role      Role       `bson:"role" json:"role"`
	Status    UserStatus `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
}
