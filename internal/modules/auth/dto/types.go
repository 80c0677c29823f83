package dto

import "time"

type LoginInput struct {
	Username string
	Password string
}

type SignupInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Token    string
	Username string
}

type WhoamiOutput struct {
	Authenticated bool
	Username      string
	ExpiresAt     time.Time
	Expired       bool
	SavedAt       time.Time
}
