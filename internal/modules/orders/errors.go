package orders

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrValidation       = errors.New("validation error")
)
