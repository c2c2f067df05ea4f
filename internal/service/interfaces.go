package service

import (
	"context"

	"github.com/limbo/squirrels/pkg/entity"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . TrackerI

type RegisterRequest struct {
	Name        string             `validate:"not_blank"`
	ChallengeID entity.ChallengeID `validate:"required,known_challenge"`
}

type AddActivityRequest struct {
	Value float64 `validate:"finite,gt=0"`
	// Empty means today
	Date string `validate:"omitempty,calendar_date"`
	Note string
}

// View is what the presentation layer renders after every operation.
type View struct {
	Authenticated bool            `json:"authenticated"`
	User          *entity.User    `json:"user,omitempty"`
	Database      entity.Database `json:"database"`
}

type TrackerI interface {
	// Creates a user under the chosen challenge and logs them in
	Register(ctx context.Context, req RegisterRequest) (View, error)
	// Switches the session to an existing user
	Login(ctx context.Context, userID string) (View, error)
	Logout(ctx context.Context) (View, error)
	// Appends an activity to the current user
	AddActivity(ctx context.Context, req AddActivityRequest) (View, error)
	// Removes an activity of the current user. Unknown ids are ignored
	DeleteActivity(ctx context.Context, activityID string) (View, error)
	// Follows or unfollows targetID
	ToggleFriend(ctx context.Context, targetID string) (View, error)
	CurrentView() View
	Catalog() *entity.Catalog
}
