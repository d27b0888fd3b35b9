package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("forbidden")
	ErrCannotPay            = errors.New("order can not be paid")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrMalformedEvent       = errors.New("malformed payment event")
	ErrUnsupportedProcessor = errors.New("unsupported payment processor")
	ErrInvalidAddress       = errors.New("invalid address")
)
