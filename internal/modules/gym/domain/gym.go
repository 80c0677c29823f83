package domain

import (
	"fmt"
	"strings"

	apperrors "climblog/internal/platform/errors"
)

const unnamed = "Unnamed Gym"

// Gym is a selectable venue. ID is the backend's location value and is what
// a session is started with.
type Gym struct {
	ID   string
	Name string
}

func (g Gym) DisplayName() string {
	if strings.TrimSpace(g.Name) == "" {
		return unnamed
	}
	return g.Name
}

func (g Gym) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: gym location is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: gym name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// Find returns the gym with the given id from a catalog listing.
func Find(gyms []Gym, id string) (Gym, bool) {
	for _, g := range gyms {
		if g.ID == id {
			return g, true
		}
	}
	return Gym{}, false
}
