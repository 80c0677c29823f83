package domain

import "errors"

var ErrInvalidFatigue = errors.New("fatigue must be between 1 and 5")
