package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("username already exists")
	ErrUserInactive           = errors.New("user is inactive")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrEmployeeScopeRequired  = errors.New("account is not linked to an employee")
)
