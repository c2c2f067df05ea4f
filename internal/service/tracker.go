package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/squirrels/internal/error_values"
	"github.com/limbo/squirrels/internal/observability"
	"github.com/limbo/squirrels/internal/progress"
	"github.com/limbo/squirrels/internal/repository"
	"github.com/limbo/squirrels/pkg/entity"
)

const (
	opRegister       = "register"
	opLogin          = "login"
	opLogout         = "logout"
	opAddActivity    = "add_activity"
	opDeleteActivity = "delete_activity"
	opToggleFriend   = "toggle_friend"
)

// Tracker owns the current database snapshot and the session. Every mutation
// builds a new snapshot, commits it in memory and then writes it through the
// repository; published snapshots are never modified.
type Tracker struct {
	mu      sync.Mutex
	repo    repository.StateRepositoryI
	catalog *entity.Catalog
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	db      entity.Database
	session string
	loaded  bool
}

type TrackerOption func(*Tracker)

func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

func WithIDGenerator(newID func() string) TrackerOption {
	return func(t *Tracker) {
		t.newID = newID
	}
}

func WithLogger(logger *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func NewTracker(repo repository.StateRepositoryI, catalog *entity.Catalog, opts ...TrackerOption) *Tracker {
	if repo == nil {
		log.Fatal("provided nil state repository")
	}
	if catalog == nil {
		catalog = entity.DefaultCatalog()
	}
	InitValidator()
	t := &Tracker{
		repo:    repo,
		catalog: catalog,
		logger:  slog.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
		db:      entity.Database{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(slog.String("component", "tracker"))
	return t
}

// Load reads the stored database and session. A session that points to a
// user missing from the database is cleared.
func (t *Tracker) Load(ctx context.Context) View {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.db = t.repo.Load(ctx)
	t.session = ""
	t.loaded = true
	if id, ok := t.repo.LoadSession(ctx); ok {
		if _, exists := t.db[id]; exists {
			t.session = id
		} else {
			t.logger.Warn("session points to unknown user, logging out",
				slog.String("error", errorvalues.ErrUserNotFound.Error()),
				slog.String("user_id", id),
			)
			observability.RecordRecovery("session", "dangling_user")
			t.persistSession(ctx)
		}
	}
	t.logger.Info("state loaded", slog.Int("users", len(t.db)), slog.Bool("authenticated", t.session != ""))
	return t.view()
}

func (t *Tracker) Catalog() *entity.Catalog {
	return t.catalog
}

func (t *Tracker) CurrentView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view()
}

func (t *Tracker) Register(ctx context.Context, req RegisterRequest) (v View, err error) {
	defer func() { observability.RecordMutation(opRegister, err) }()
	t.mu.Lock()
	defer t.mu.Unlock()

	if err = validate.StructCtx(withCatalog(ctx, t.catalog), req); err != nil {
		return t.view(), validationError(err)
	}
	user := entity.User{
		ID:          t.newID(),
		Name:        strings.TrimSpace(req.Name),
		ChallengeID: req.ChallengeID,
		Activities:  []entity.Activity{},
		Friends:     []string{},
	}
	next := t.db.Clone()
	next[user.ID] = user
	t.db = next
	t.session = user.ID
	t.logger.Info("user registered", slog.String("user_id", user.ID), slog.String("challenge_id", string(user.ChallengeID)))
	t.persistDatabase(ctx)
	t.persistSession(ctx)
	return t.view(), nil
}

func (t *Tracker) Login(ctx context.Context, userID string) (v View, err error) {
	defer func() { observability.RecordMutation(opLogin, err) }()
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.db[userID]; !ok {
		return t.view(), errorvalues.ErrUserNotFound
	}
	t.session = userID
	t.persistSession(ctx)
	return t.view(), nil
}

func (t *Tracker) Logout(ctx context.Context) (v View, err error) {
	defer func() { observability.RecordMutation(opLogout, err) }()
	t.mu.Lock()
	defer t.mu.Unlock()

	t.session = ""
	t.persistSession(ctx)
	return t.view(), nil
}

func (t *Tracker) AddActivity(ctx context.Context, req AddActivityRequest) (v View, err error) {
	defer func() { observability.RecordMutation(opAddActivity, err) }()
	t.mu.Lock()
	defer t.mu.Unlock()

	user, err := t.currentUser(ctx)
	if err != nil {
		return t.view(), err
	}
	now := t.now()
	if strings.TrimSpace(req.Date) == "" {
		req.Date = now.Format(progress.DateLayout)
	}
	if err = validate.Struct(req); err != nil {
		return t.view(), validationError(err)
	}
	activity := entity.Activity{
		ID:        t.newID(),
		Date:      req.Date,
		Value:     req.Value,
		Note:      strings.TrimSpace(req.Note),
		Timestamp: now.UnixMilli(),
	}
	next := t.db.Clone()
	user = next[user.ID]
	user.Activities = append(user.Activities, activity)
	next[user.ID] = user
	t.db = next
	t.persistDatabase(ctx)
	return t.view(), nil
}

func (t *Tracker) DeleteActivity(ctx context.Context, activityID string) (v View, err error) {
	defer func() { observability.RecordMutation(opDeleteActivity, err) }()
	t.mu.Lock()
	defer t.mu.Unlock()

	user, err := t.currentUser(ctx)
	if err != nil {
		return t.view(), err
	}
	idx := -1
	for i, a := range user.Activities {
		if a.ID == activityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t.view(), nil
	}
	next := t.db.Clone()
	user = next[user.ID]
	user.Activities = append(user.Activities[:idx], user.Activities[idx+1:]...)
	next[user.ID] = user
	t.db = next
	t.persistDatabase(ctx)
	return t.view(), nil
}

func (t *Tracker) ToggleFriend(ctx context.Context, targetID string) (v View, err error) {
	defer func() { observability.RecordMutation(opToggleFriend, err) }()
	t.mu.Lock()
	defer t.mu.Unlock()

	user, err := t.currentUser(ctx)
	if err != nil {
		return t.view(), err
	}
	if targetID == user.ID {
		return t.view(), errorvalues.ErrSelfFriend
	}
	next := t.db.Clone()
	user = next[user.ID]
	if user.HasFriend(targetID) {
		friends := make([]string, 0, len(user.Friends))
		for _, f := range user.Friends {
			if f != targetID {
				friends = append(friends, f)
			}
		}
		user.Friends = friends
	} else {
		// Only existing users can be followed; unfollowing always works.
		if _, ok := t.db[targetID]; !ok {
			return t.view(), errorvalues.ErrUserNotFound
		}
		user.Friends = append(user.Friends, targetID)
	}
	next[user.ID] = user
	t.db = next
	t.persistDatabase(ctx)
	return t.view(), nil
}

// currentUser must be called with mu held.
func (t *Tracker) currentUser(ctx context.Context) (entity.User, error) {
	if t.session == "" {
		return entity.User{}, errorvalues.ErrNotAuthenticated
	}
	user, ok := t.db[t.session]
	if !ok {
		t.logger.Warn("active session lost its user, logging out", slog.String("user_id", t.session))
		t.session = ""
		t.persistSession(ctx)
		return entity.User{}, errorvalues.ErrNotAuthenticated
	}
	return user, nil
}

func (t *Tracker) view() View {
	v := View{Database: t.db}
	if user, ok := t.db[t.session]; ok && t.session != "" {
		u := user.Clone()
		v.Authenticated = true
		v.User = &u
	}
	return v
}

func (t *Tracker) persistDatabase(ctx context.Context) {
	if !t.loaded {
		t.logger.Debug("skipping database write before initial load")
		return
	}
	if err := t.repo.Save(ctx, t.db); err != nil {
		t.logger.Error("persisting database failed", slog.String("error", err.Error()))
	}
}

func (t *Tracker) persistSession(ctx context.Context) {
	if !t.loaded {
		t.logger.Debug("skipping session write before initial load")
		return
	}
	if err := t.repo.SetSession(ctx, t.session); err != nil {
		t.logger.Error("persisting session failed", slog.String("error", err.Error()))
	}
}

// validationError maps the first failed field to its sentinel.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.New("validation unexpected error: " + err.Error())
	}
	for _, fieldErr := range validationErrors {
		switch fieldErr.StructField() {
		case "Name":
			return errorvalues.ErrEmptyName
		case "ChallengeID":
			if fieldErr.Tag() == "required" {
				return errorvalues.ErrChallengeRequired
			}
			return errorvalues.ErrUnknownChallenge
		case "Value":
			return errorvalues.ErrNonPositiveValue
		case "Date":
			return errorvalues.ErrInvalidDate
		}
	}
	return errors.Join(errorvalues.ErrValidation, err)
}
