package domain

import "time"

// Role роль пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCleaner  Role = "cleaner"
	RoleAdmin    Role = "admin"
)

// IsValid проверяет, что роль известна
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleCleaner || r == RoleAdmin
}

// User учётная запись
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}

// FullName имя и фамилия через пробел
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
