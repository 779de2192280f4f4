package errors

import "errors"

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailInUse = errors.New("email already in use")
var ErrSlotUnavailable = errors.New("slot is already booked for this time slot and date")
var ErrNotFound = errors.New("not found")
var ErrInvalidInput = errors.New("invalid input")
