package domain

import "errors"

var (
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	ErrRequestInFlight   = errors.New("another request is still in flight")
	ErrStateChanged      = errors.New("state changed while the request was in flight")
)
