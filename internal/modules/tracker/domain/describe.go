package domain

import (
	"errors"

	sessiondomain "climblog/internal/modules/session/domain"
	apperrors "climblog/internal/platform/errors"
	"climblog/internal/platform/restclient"
)

// Op names a user-facing controller operation.
type Op string

const (
	OpLogin   Op = "login"
	OpGyms    Op = "gyms"
	OpStart   Op = "start"
	OpLog     Op = "log"
	OpEnd     Op = "end"
	OpCancel  Op = "cancel"
	OpHistory Op = "history"
	OpLogout  Op = "logout"
)

var generic = map[Op]string{
	OpLogin:   "Login failed.",
	OpGyms:    "Could not load gyms.",
	OpStart:   "Could not start session.",
	OpLog:     "Could not log climb.",
	OpEnd:     "Could not end session.",
	OpCancel:  "Session discarded, but the server was not told.",
	OpHistory: "Could not load history.",
	OpLogout:  "Logged out, but the saved token could not be removed.",
}

// OpError tags an error with the operation that actually failed, for
// operations that chain a second request (login then gym listing).
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string { return string(e.Op) + ": " + e.Err.Error() }
func (e *OpError) Unwrap() error { return e.Err }

// Describe turns err into the message shown to the user. Login rejections
// show the server detail verbatim. Everything else gets a fixed message per
// operation, with the server detail appended when there is one.
func Describe(op Op, err error) string {
	if err == nil {
		return ""
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		op = opErr.Op
	}
	switch {
	case errors.Is(err, ErrStateChanged):
		return ""
	case errors.Is(err, ErrRequestInFlight):
		return "Still waiting on the previous request."
	case errors.Is(err, ErrInvalidTransition):
		return "That is not available right now."
	case errors.Is(err, sessiondomain.ErrInvalidFatigue):
		return "Pick a fatigue level from 1 to 5."
	case errors.Is(err, apperrors.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return "Log in first."
	}
	detail, isAPI := restclient.Detail(err)
	if op == OpLogin && errors.Is(err, apperrors.ErrTransport) {
		return "Could not reach the server."
	}
	if op == OpLogin && isAPI {
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
	msg, ok := generic[op]
	if !ok {
		msg = "Something went wrong."
	}
	if detail != "" {
		return msg + " " + detail
	}
	return msg
}
