package activity

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrValidation       = errors.New("validation error")
)
