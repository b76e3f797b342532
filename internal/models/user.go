package models

// User is the users table row.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	AuditFields
}
