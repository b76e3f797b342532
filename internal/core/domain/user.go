package domain

// UserRole is the portal role hierarchy: user < employee < admin.
type UserRole string

const (
	RoleUser     UserRole = "USER"
	RoleEmployee UserRole = "EMPLOYEE"
	RoleAdmin    UserRole = "ADMIN"
)

// roleRank orders roles for AtLeast comparisons.
var roleRank = map[UserRole]int{
	RoleUser:     1,
	RoleEmployee: 2,
	RoleAdmin:    3,
}

// AtLeast reports whether the role grants the privileges of required.
func (r UserRole) AtLeast(required UserRole) bool {
	return roleRank[r] >= roleRank[required]
}

// Actor is the authenticated identity performing a service call. Services
// take it explicitly on every operation; nothing in the core reads ambient
// session state.
type Actor struct {
	UserID string
	Role   UserRole
}

// User represents a portal account. The mortgage ledger uses it only for
// display enrichment and actor identity; authentication stays in middleware.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	DisplayName  string   `json:"displayName"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"` // bcrypt, never serialized
	AuditFields
}
