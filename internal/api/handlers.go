package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	errorvalues "github.com/limbo/squirrels/internal/error_values"
	"github.com/limbo/squirrels/internal/progress"
	"github.com/limbo/squirrels/internal/service"
	"github.com/limbo/squirrels/pkg/entity"
	"github.com/limbo/squirrels/pkg/httputil"
)

func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, s.tracker.Catalog().List())
}

func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, s.viewResponse(s.tracker.CurrentView()))
}

// GetUsers lists everyone for the login picker.
func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request) {
	users := s.tracker.CurrentView().Database.Users()
	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserListItem{
			ID:          u.ID,
			Name:        u.Name,
			Initials:    u.Initials(),
			ChallengeID: u.ChallengeID,
		})
	}
	httputil.WriteJSONResponse(w, http.StatusOK, items)
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.tracker.Register(ctx, service.RegisterRequest{
		Name:        req.Name,
		ChallengeID: entity.ChallengeID(req.ChallengeID),
	})
	if err != nil {
		s.writeTrackerError(w, logger, "registering", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, s.viewResponse(view))
	logger.Info("successful registration", slog.String("uid", view.User.ID))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.tracker.Login(ctx, req.UserID)
	if err != nil {
		s.writeTrackerError(w, logger, "login", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.viewResponse(view))
	logger.Info("successful login", slog.String("uid", req.UserID))
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.tracker.Logout(ctx)
	if err != nil {
		s.writeTrackerError(w, logger, "logout", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.viewResponse(view))
}

// GetActivities returns the current user's log, newest first.
func (s *Server) GetActivities(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, ok := s.currentUser(w, logger, "get activities")
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, progress.RecentLog(user.Activities))
}

func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req AddActivityRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("add activity error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.tracker.AddActivity(ctx, service.AddActivityRequest{
		Value: req.Value,
		Date:  req.Date,
		Note:  req.Note,
	})
	if err != nil {
		s.writeTrackerError(w, logger, "add activity", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, s.viewResponse(view))
}

func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	activityID := chi.URLParam(r, "id")
	if activityID == "" {
		logger.Error("delete activity error: empty id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "activity id required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.tracker.DeleteActivity(ctx, activityID)
	if err != nil {
		s.writeTrackerError(w, logger, "delete activity", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.viewResponse(view))
}

func (s *Server) ToggleFriend(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		logger.Error("toggle friend error: empty id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "user id required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	view, err := s.tracker.ToggleFriend(ctx, targetID)
	if err != nil {
		s.writeTrackerError(w, logger, "toggle friend", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.viewResponse(view))
}

func (s *Server) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	scope, err := progress.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		logger.Error("leaderboard error: invalid scope")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	view := s.tracker.CurrentView()
	if !view.Authenticated || view.User == nil {
		logger.Error("leaderboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no active session", nil)
		return
	}
	query := r.URL.Query().Get("q")
	httputil.WriteJSONResponse(w, http.StatusOK, LeaderboardResponse{
		Scope: scope,
		Query: query,
		Rows:  progress.Leaderboard(view.Database, s.tracker.Catalog(), *view.User, scope, query),
	})
}

func (s *Server) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, ok := s.currentUser(w, logger, "get progress")
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, progress.Summarize(user, s.tracker.Catalog()))
}

func (s *Server) GetSeries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, ok := s.currentUser(w, logger, "get series")
	if !ok {
		return
	}
	points, err := progress.CumulativeSeries(user.Activities)
	resp := SeriesResponse{Status: "ok", Points: points}
	switch {
	case errors.Is(err, progress.ErrNoActivities):
		resp = SeriesResponse{Status: "no_activities", Points: []progress.Point{}}
	case errors.Is(err, progress.ErrInsufficientSeries):
		resp = SeriesResponse{Status: "insufficient", Points: []progress.Point{}}
	case err != nil:
		logger.Error("get series error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building series", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) currentUser(w http.ResponseWriter, logger *slog.Logger, op string) (entity.User, bool) {
	view := s.tracker.CurrentView()
	if !view.Authenticated || view.User == nil {
		logger.Error(op + " error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no active session", nil)
		return entity.User{}, false
	}
	return *view.User, true
}

func (s *Server) viewResponse(view service.View) ViewResponse {
	resp := ViewResponse{
		Authenticated: view.Authenticated,
		User:          view.User,
		Users:         len(view.Database),
	}
	if view.User != nil {
		summary := progress.Summarize(*view.User, s.tracker.Catalog())
		resp.Summary = &summary
	}
	return resp
}

func (s *Server) writeTrackerError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(op+" error: validation", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrNotAuthenticated):
		logger.Error(op + " error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no active session", nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(op + " error: unexist user")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
	default:
		logger.Error(op+" error: tracker error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during "+op, nil)
	}
}
