// Package domain contains the core data types for the travel journal.
// The whole journal is one AppState tree; trips own their steps, and the tree
// is the unit of persistence. Besides uuid this package has no external
// dependencies and is imported by every other internal package.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visibility controls who may view a trip. Only VisibilityPrivate is produced
// by trip creation today; the other values are accepted on update.
type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPublic   Visibility = "public"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityUnlisted, VisibilityPublic:
		return true
	}
	return false
}

// DefaultTripTitle is used when a trip is created without a title.
const DefaultTripTitle = "New Trip"

// Trip is a user-defined journey. Steps are kept in itinerary order.
// StartDate and EndDate are free-form calendar strings ("" when unset); their
// ordering is not validated.
type Trip struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	StartDate  string     `json:"startDate"`
	EndDate    string     `json:"endDate"`
	Visibility Visibility `json:"visibility"`
	Steps      []Step     `json:"steps"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// TripFields carries the user-supplied values for a new trip.
type TripFields struct {
	Title     string
	StartDate string
	EndDate   string
}

// TripPatch holds optional edits to a trip. Nil fields are left untouched.
type TripPatch struct {
	Title      *string
	StartDate  *string
	EndDate    *string
	Visibility *Visibility
}

// FindStep returns the step with the given id, or nil.
func (t *Trip) FindStep(id string) *Step {
	for i := range t.Steps {
		if t.Steps[i].ID == id {
			return &t.Steps[i]
		}
	}
	return nil
}

// LastStep returns the final step of the itinerary, or nil when there are none.
func (t *Trip) LastStep() *Step {
	if len(t.Steps) == 0 {
		return nil
	}
	return &t.Steps[len(t.Steps)-1]
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}
