package staff

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidSalary    = errors.New("invalid salary input")
	ErrValidation       = errors.New("validation error")
	ErrUsernameTaken    = errors.New("username already taken")
)
