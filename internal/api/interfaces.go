package api

import (
	"github.com/limbo/squirrels/internal/progress"
	"github.com/limbo/squirrels/pkg/entity"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	ChallengeID string `json:"challengeId"`
}

type LoginRequest struct {
	UserID string `json:"userId"`
}

type AddActivityRequest struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
	Note  string  `json:"note"`
}

type ViewResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *entity.User      `json:"user,omitempty"`
	Summary       *progress.Summary `json:"summary,omitempty"`
	Users         int               `json:"users"`
}

type UserListItem struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Initials    string             `json:"initials"`
	ChallengeID entity.ChallengeID `json:"challengeId"`
}

type LeaderboardResponse struct {
	Scope progress.Scope            `json:"scope"`
	Query string                    `json:"q,omitempty"`
	Rows  []progress.LeaderboardRow `json:"rows"`
}

// SeriesResponse carries Status "ok", "no_activities" or "insufficient"
// so the chart can pick its empty state.
type SeriesResponse struct {
	Status string           `json:"status"`
	Points []progress.Point `json:"points"`
}
