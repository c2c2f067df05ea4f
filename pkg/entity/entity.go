package entity

import (
	"sort"
	"strings"
)

type ChallengeID string

const (
	ChallengeMarathoner  ChallengeID = "C1"
	ChallengeSteadyPacer ChallengeID = "C2"
	ChallengeDisciplined ChallengeID = "C3"
)

type Unit string

const (
	UnitKilometers Unit = "km"
	UnitRuns       Unit = "runs"
)

// Distance units accumulate fractional values, count units whole workouts.
func (u Unit) IsDistance() bool {
	return u == UnitKilometers
}

type Challenge struct {
	ID          ChallengeID `json:"id"`
	Title       string      `json:"title"`
	Target      float64     `json:"target"`
	Unit        Unit        `json:"unit"`
	Description string      `json:"description"`
	Trophy      string      `json:"trophy"`
	BigValue    string      `json:"bigValue"`
}

type Activity struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Note      string  `json:"note,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ChallengeID ChallengeID `json:"challengeId"`
	Activities  []Activity  `json:"activities"`
	Friends     []string    `json:"friends"`
}

// Initials returns the two-letter avatar text shown next to a runner.
func (u User) Initials() string {
	runes := []rune(strings.TrimSpace(u.Name))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

func (u User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

func (u *User) Clone() User {
	c := *u
	c.Activities = append(make([]Activity, 0, len(u.Activities)), u.Activities...)
	c.Friends = append(make([]string, 0, len(u.Friends)), u.Friends...)
	return c
}

// Database maps user id to user. Snapshots handed out by the tracker are
// never modified after they are published.
type Database map[string]User

func (db Database) Clone() Database {
	c := make(Database, len(db))
	for id, u := range db {
		c[id] = u.Clone()
	}
	return c
}

// Users lists the database ordered by name, then id.
func (db Database) Users() []User {
	users := make([]User, 0, len(db))
	for _, u := range db {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		ni, nj := strings.ToLower(users[i].Name), strings.ToLower(users[j].Name)
		if ni != nj {
			return ni < nj
		}
		return users[i].ID < users[j].ID
	})
	return users
}
