package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/limbo/squirrels/internal/api"
	errorvalues "github.com/limbo/squirrels/internal/error_values"
	"github.com/limbo/squirrels/internal/progress"
	"github.com/limbo/squirrels/internal/repository"
	"github.com/limbo/squirrels/internal/service"
	"github.com/limbo/squirrels/internal/service/mocks"
	"github.com/limbo/squirrels/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

var (
	catalog = entity.DefaultCatalog()
	alice   = entity.User{
		ID:          "u1",
		Name:        "Alice",
		ChallengeID: entity.ChallengeSteadyPacer,
		Activities: []entity.Activity{
			{ID: "a1", Date: "2024-12-01", Value: 5.2, Timestamp: 1},
			{ID: "a2", Date: "2024-12-03", Value: 3, Timestamp: 2},
		},
		Friends: []string{},
	}
	bob = entity.User{
		ID:          "u2",
		Name:        "Bob",
		ChallengeID: entity.ChallengeMarathoner,
		Activities:  []entity.Activity{},
		Friends:     []string{},
	}
)

func loggedInAs(user entity.User) service.View {
	u := user.Clone()
	return service.View{
		Authenticated: true,
		User:          &u,
		Database:      entity.Database{alice.ID: alice, bob.ID: bob},
	}
}

func newMockServer(t *testing.T) (*api.Server, *mocks.MockTrackerI) {
	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockTrackerI(ctrl)
	tracker.EXPECT().Catalog().Return(catalog).AnyTimes()
	return api.New(&api.ServicesList{Tracker: tracker}), tracker
}

func TestRegister(t *testing.T) {
	serv, tracker := newMockServer(t)
	body, err := sonic.ConfigDefault.Marshal(api.RegisterRequest{
		Name:        "Alice",
		ChallengeID: "C2",
	})
	require.NoError(t, err)
	expectedReq := service.RegisterRequest{Name: "Alice", ChallengeID: entity.ChallengeSteadyPacer}

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			Desc:         "registered",
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				tracker.EXPECT().Register(gomock.Any(), expectedReq).Return(loggedInAs(alice), nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "validation error",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				tracker.EXPECT().Register(gomock.Any(), expectedReq).Return(service.View{}, errorvalues.ErrChallengeRequired)
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "tracker error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				tracker.EXPECT().Register(gomock.Any(), expectedReq).Return(service.View{}, errors.New("tracker error"))
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "corrupted body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte("corrupted")),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/register", tc.Body)
			serv.Register(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestRegisterResponseBody(t *testing.T) {
	serv, tracker := newMockServer(t)
	tracker.EXPECT().Register(gomock.Any(), gomock.Any()).Return(loggedInAs(alice), nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"name":"Alice","challengeId":"C2"}`))
	serv.Register(rr, req)
	require.Equal(t, http.StatusCreated, rr.Result().StatusCode)

	var resp api.ViewResponse
	require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, 2, resp.Users)
	require.NotNil(t, resp.Summary)
	assert.InDelta(t, 8.2, resp.Summary.Total, 1e-9)
	assert.InDelta(t, 16.4, resp.Summary.Percentage, 1e-9)
	assert.Equal(t, "The Steady Pacer", resp.Summary.ChallengeTitle)
}

func TestLogin(t *testing.T) {
	serv, tracker := newMockServer(t)
	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         string
	}{
		{
			Desc:         "logged in",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				tracker.EXPECT().Login(gomock.Any(), "u2").Return(loggedInAs(bob), nil)
			},
			Body: `{"userId":"u2"}`,
		},
		{
			Desc:         "unknown user",
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				tracker.EXPECT().Login(gomock.Any(), "nobody").Return(service.View{}, errorvalues.ErrUserNotFound)
			},
			Body: `{"userId":"nobody"}`,
		},
		{
			Desc:         "corrupted body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         `{"userId":`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tc.Body))
			serv.Login(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestAddActivity(t *testing.T) {
	serv, tracker := newMockServer(t)
	expectedReq := service.AddActivityRequest{Value: 5.2, Date: "2024-12-01", Note: "easy"}
	body := `{"value":5.2,"date":"2024-12-01","note":"easy"}`
	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         string
	}{
		{
			Desc:         "created",
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				tracker.EXPECT().AddActivity(gomock.Any(), expectedReq).Return(loggedInAs(alice), nil)
			},
			Body: body,
		},
		{
			Desc:         "non positive value",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				tracker.EXPECT().AddActivity(gomock.Any(), expectedReq).Return(service.View{}, errorvalues.ErrNonPositiveValue)
			},
			Body: body,
		},
		{
			Desc:         "logged out",
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {
				tracker.EXPECT().AddActivity(gomock.Any(), expectedReq).Return(service.View{}, errorvalues.ErrNotAuthenticated)
			},
			Body: body,
		},
		{
			Desc:         "corrupted body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         "corrupted",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(tc.Body))
			serv.AddActivity(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestGetLeaderboard(t *testing.T) {
	serv, tracker := newMockServer(t)
	t.Run("invalid scope", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.GetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/leaderboard?scope=everyone", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("logged out", func(t *testing.T) {
		tracker.EXPECT().CurrentView().Return(service.View{Database: entity.Database{}})
		rr := httptest.NewRecorder()
		serv.GetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("ranked rows", func(t *testing.T) {
		tracker.EXPECT().CurrentView().Return(loggedInAs(alice))
		rr := httptest.NewRecorder()
		serv.GetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/leaderboard?scope=all", nil))
		require.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp api.LeaderboardResponse
		require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Rows, 2)
		assert.Equal(t, "u1", resp.Rows[0].UserID)
		assert.Equal(t, "🥇", resp.Rows[0].Badge)
		assert.True(t, resp.Rows[0].IsMe)
		assert.Equal(t, "u2", resp.Rows[1].UserID)
	})
	t.Run("search narrows", func(t *testing.T) {
		tracker.EXPECT().CurrentView().Return(loggedInAs(alice))
		rr := httptest.NewRecorder()
		serv.GetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/leaderboard?q=BO", nil))
		require.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp api.LeaderboardResponse
		require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "Bob", resp.Rows[0].Name)
		assert.Equal(t, 1, resp.Rows[0].Position)
	})
}

func TestGetSeries(t *testing.T) {
	serv, tracker := newMockServer(t)
	single := alice.Clone()
	single.Activities = single.Activities[:1]
	none := alice.Clone()
	none.Activities = nil
	testCases := []struct {
		Desc   string
		User   entity.User
		Status string
		Points int
	}{
		{Desc: "trend", User: alice, Status: "ok", Points: 2},
		{Desc: "one entry", User: single, Status: "insufficient", Points: 0},
		{Desc: "nothing logged", User: none, Status: "no_activities", Points: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tracker.EXPECT().CurrentView().Return(loggedInAs(tc.User))
			rr := httptest.NewRecorder()
			serv.GetSeries(rr, httptest.NewRequest(http.MethodGet, "/series", nil))
			require.Equal(t, http.StatusOK, rr.Result().StatusCode)
			var resp api.SeriesResponse
			require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tc.Status, resp.Status)
			assert.Len(t, resp.Points, tc.Points)
		})
	}
}

type client struct {
	t    *testing.T
	serv http.Handler
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rr := httptest.NewRecorder()
	c.serv.ServeHTTP(rr, httptest.NewRequest(method, path, reader))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestTrackerRoutes(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewStateRepo(repository.NewMemoryStore(), catalog, repository.DefaultKeys(), nil)
	clock := time.Date(2024, time.December, 10, 8, 0, 0, 0, time.UTC)
	tracker := service.NewTracker(repo, catalog, service.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	tracker.Load(ctx)
	c := &client{t: t, serv: api.New(&api.ServicesList{Tracker: tracker})}

	rr := c.do(http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]entity.Challenge](t, rr), 3)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = c.do(http.MethodPost, "/register", `{"name":"Bob","challengeId":"C1"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	bobID := decode[api.ViewResponse](t, rr).User.ID

	rr = c.do(http.MethodPost, "/register", `{"name":"","challengeId":"C1"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[map[string]any](t, rr)["message"], "please enter your name")

	rr = c.do(http.MethodPost, "/register", `{"name":"Alice","challengeId":"C2"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = c.do(http.MethodPost, "/activities/", `{"value":5.2,"date":"2024-12-01"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = c.do(http.MethodPost, "/activities/", `{"value":3}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = c.do(http.MethodPost, "/activities/", `{"value":-1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(http.MethodGet, "/progress", "")
	require.Equal(t, http.StatusOK, rr.Code)
	summary := decode[progress.Summary](t, rr)
	assert.InDelta(t, 8.2, summary.Total, 1e-9)

	rr = c.do(http.MethodGet, "/activities/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	log := decode[[]entity.Activity](t, rr)
	require.Len(t, log, 2)
	assert.Equal(t, "2024-12-10", log[0].Date)

	rr = c.do(http.MethodGet, "/series", "")
	require.Equal(t, http.StatusOK, rr.Code)
	series := decode[api.SeriesResponse](t, rr)
	require.Len(t, series.Points, 2)
	assert.InDelta(t, 8.2, series.Points[1].Cumulative, 1e-9)

	rr = c.do(http.MethodGet, "/leaderboard?scope=friends", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[api.LeaderboardResponse](t, rr).Rows, 1)

	rr = c.do(http.MethodPost, "/friends/"+bobID+"/toggle", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = c.do(http.MethodGet, "/leaderboard?scope=friends", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rows := decode[api.LeaderboardResponse](t, rr).Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.True(t, rows[1].IsFriend)

	rr = c.do(http.MethodDelete, "/activities/"+log[0].ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[api.ViewResponse](t, rr).User.Activities, 1)

	rr = c.do(http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rr.Code)
	users := decode[[]api.UserListItem](t, rr)
	require.Len(t, users, 2)
	assert.Equal(t, "AL", users[0].Initials)

	rr = c.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "squirrels_tracker_mutations_total")

	rr = c.do(http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[api.ViewResponse](t, rr).Authenticated)
	rr = c.do(http.MethodGet, "/progress", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = c.do(http.MethodPost, "/login", `{"userId":"`+bobID+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bob", decode[api.ViewResponse](t, rr).User.Name)
}
