package progress

import (
	"sort"
	"strconv"
	"strings"

	errorvalues "github.com/limbo/squirrels/internal/error_values"
	"github.com/limbo/squirrels/pkg/entity"
)

type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeFriends Scope = "friends"
)

// ParseScope treats an empty value as ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeFriends:
		return ScopeFriends, nil
	}
	return "", errorvalues.ErrInvalidScope
}

type Standing struct {
	User       entity.User
	Challenge  entity.Challenge
	Total      float64
	Percentage float64
}

// Rank orders users by percentage, highest first. Equal percentages fall back
// to case-insensitive name and then id, so the order never depends on the
// input order.
func Rank(users []entity.User, catalog *entity.Catalog) []Standing {
	standings := make([]Standing, 0, len(users))
	for _, u := range users {
		ch, _ := catalog.Lookup(u.ChallengeID)
		total := Total(u)
		var pct float64
		if ch.Target > 0 {
			pct = Percentage(total, ch.Target)
		}
		standings = append(standings, Standing{
			User:       u,
			Challenge:  ch,
			Total:      total,
			Percentage: pct,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		an, bn := strings.ToLower(a.User.Name), strings.ToLower(b.User.Name)
		if an != bn {
			return an < bn
		}
		return a.User.ID < b.User.ID
	})
	return standings
}

// Badge renders a 1-based position: medals for the podium, the number otherwise.
func Badge(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return strconv.Itoa(position)
}

// FilterByScope keeps everyone for ScopeAll. For ScopeFriends it keeps the
// current user and the users they follow; whether those users follow back
// does not matter.
func FilterByScope(users []entity.User, scope Scope, current entity.User) []entity.User {
	if scope != ScopeFriends {
		return users
	}
	out := make([]entity.User, 0, len(current.Friends)+1)
	for _, u := range users {
		if u.ID == current.ID || current.HasFriend(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// Search matches term against names, ignoring case. An empty term returns
// users unchanged.
func Search(users []entity.User, term string) []entity.User {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users
	}
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), term) {
			out = append(out, u)
		}
	}
	return out
}

type LeaderboardRow struct {
	Position       int                `json:"position"`
	Badge          string             `json:"badge"`
	UserID         string             `json:"userId"`
	Name           string             `json:"name"`
	Initials       string             `json:"initials"`
	ChallengeID    entity.ChallengeID `json:"challengeId"`
	ChallengeTitle string             `json:"challengeTitle"`
	Unit           entity.Unit        `json:"unit"`
	Target         float64            `json:"target"`
	Total          float64            `json:"total"`
	Percentage     float64            `json:"percentage"`
	IsMe           bool               `json:"isMe"`
	IsFriend       bool               `json:"isFriend"`
}

// Leaderboard narrows the database by scope and search term and ranks what
// is left. Rank is a total order, so narrowing first gives the same relative
// order as ranking everyone. Positions count within the narrowed list.
func Leaderboard(db entity.Database, catalog *entity.Catalog, current entity.User, scope Scope, term string) []LeaderboardRow {
	visible := Search(FilterByScope(db.Users(), scope, current), term)
	standings := Rank(visible, catalog)
	rows := make([]LeaderboardRow, 0, len(standings))
	for i, s := range standings {
		rows = append(rows, LeaderboardRow{
			Position:       i + 1,
			Badge:          Badge(i + 1),
			UserID:         s.User.ID,
			Name:           s.User.Name,
			Initials:       s.User.Initials(),
			ChallengeID:    s.User.ChallengeID,
			ChallengeTitle: s.Challenge.Title,
			Unit:           s.Challenge.Unit,
			Target:         s.Challenge.Target,
			Total:          s.Total,
			Percentage:     s.Percentage,
			IsMe:           s.User.ID == current.ID,
			IsFriend:       current.HasFriend(s.User.ID),
		})
	}
	return rows
}
