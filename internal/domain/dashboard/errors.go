package dashboard

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrLocationNotFound   = errors.New("location not found")
)
