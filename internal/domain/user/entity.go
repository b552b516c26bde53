package user

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	EmployeeID   *string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
