package models

// Roles a user can hold. Admin is assigned only to the bootstrap
// administrative account; everyone else registers as standard.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User represents an account of the store.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Name         string `json:"name" gorm:"type:varchar(100)"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"` // No json tag value for security
	Role         string `json:"role" gorm:"type:varchar(16)"`
}
