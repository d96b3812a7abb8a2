package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports"
	"teamroster/src/core/ports/portstest"
	"teamroster/src/infra/config"
	"teamroster/src/infra/logger"
)

type testServer struct {
	srv     *Server
	members *portstest.MemberRepository
	teams   *portstest.TeamRepository
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Log:    config.LogConfig{Level: "error", Format: "json"},
		Paging: config.PagingConfig{DefaultSize: 20, MaxSize: 2000},
	}
	members := &portstest.MemberRepository{}
	teams := &portstest.TeamRepository{}
	srv := New(cfg, logger.NewWithWriter(cfg.Log, io.Discard), Deps{
		Members: members,
		Teams:   teams,
		Tx:      &portstest.Transactor{},
		Health:  map[string]ports.HealthChecker{"members": members},
	})
	return testServer{srv: srv, members: members, teams: teams}
}

func (ts testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Field     string `json:"field"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestGetMemberReturnsUsernameAsText(t *testing.T) {
	ts := newTestServer(t)
	ts.members.On("FindByID", mock.Anything, int64(1)).Return(&domain.Member{ID: 1, Username: "member1"}, nil)

	rec := ts.do(t, http.MethodGet, "/members/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	require.Equal(t, "member1", rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGetMemberErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.members.On("FindByID", mock.Anything, int64(2)).Return(nil, domain.NewNotFoundError("member"))
	ts.members.On("FindByID", mock.Anything, int64(3)).Return(nil, domain.NewStoreUnavailableError("connection refused"))
	ts.members.On("FindByID", mock.Anything, int64(4)).Return(nil, domain.NewNonUniqueResultError("member", 2))
	ts.members.On("FindByID", mock.Anything, int64(5)).Return(nil, errors.New("boom"))
	ts.members.On("FindByID", mock.Anything, int64(0)).Return(nil, domain.NewNotFoundError("member"))

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/members/2", http.StatusNotFound, "NOT_FOUND"},
		{"/members/0", http.StatusNotFound, "NOT_FOUND"},
		{"/members/abc", http.StatusBadRequest, "BAD_REQUEST"},
		{"/members/3", http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"/members/4", http.StatusInternalServerError, "NON_UNIQUE_RESULT"},
		{"/members/5", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("X-Request-ID", "req-1")
			rec := httptest.NewRecorder()
			ts.srv.Router().ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			require.Equal(t, tt.code, env.Error.Code)
			require.Equal(t, "req-1", env.Error.RequestID)
		})
	}
}

func TestListMembersDefaultsAndProjects(t *testing.T) {
	ts := newTestServer(t)
	req := domain.PageOf(0, 20)
	ts.members.On("FindAllPage", mock.Anything, req).
		Return(domain.NewPage([]domain.Member{{ID: 1, Username: "a", Age: 9}}, req, 1), nil)

	rec := ts.do(t, http.MethodGet, "/members", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.Page[map[string]any]
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	require.Len(t, page.Content, 1)
	require.Equal(t, "a", page.Content[0]["username"])
	require.NotContains(t, page.Content[0], "age")
	require.EqualValues(t, 1, page.TotalElements)
	require.True(t, page.First)
	require.True(t, page.Last)
}

func TestListMembersClampsSizeAndParsesSort(t *testing.T) {
	ts := newTestServer(t)
	req := domain.PageOf(1, 2000, domain.Order{Property: "username", Direction: domain.Desc}, domain.Order{Property: "id", Direction: domain.Asc})
	ts.members.On("FindAllPage", mock.Anything, req).Return(domain.NewPage[domain.Member](nil, req, 0), nil)

	rec := ts.do(t, http.MethodGet, "/members?page=1&size=5000&sort=username,desc&sort=id", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ts.members.AssertExpectations(t)
}

func TestListMembersRejectsBadPaging(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{
		"/members?page=-1",
		"/members?size=0",
		"/members?sort=id,sideways",
		"/members?page=4611686018427387904&size=2",
	} {
		rec := ts.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	ts.members.AssertNotCalled(t, "FindAllPage", mock.Anything, mock.Anything)
}

func TestMemberReadsAndWrites(t *testing.T) {
	ts := newTestServer(t)
	teamID := int64(3)

	ts.members.On("FindMemberDTO", mock.Anything).Return([]domain.MemberDTO{{ID: 1, Username: "a", TeamName: "teamA"}}, nil)
	ts.members.On("FindByUsernameAndAgeGreaterThan", mock.Anything, "a", 10).Return([]domain.Member{{ID: 1, Username: "a", Age: 11}}, nil)
	ts.members.On("BulkAgePlus", mock.Anything, 20).Return(int64(3), nil)
	ts.teams.On("FindTeamByID", mock.Anything, teamID).Return(&domain.Team{ID: teamID, Name: "teamA"}, nil)
	ts.members.On("Save", mock.Anything, mock.AnythingOfType("*domain.Member")).
		Return(&domain.Member{ID: 9, Username: "new", Age: 4, TeamID: &teamID}, nil)

	rec := ts.do(t, http.MethodGet, "/members/dto", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id":1,"username":"a","team_name":"teamA"}]`, string(decode(t, rec).Data))

	rec = ts.do(t, http.MethodGet, "/members/search?username=a&min_age=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/members/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/members/age-increment?threshold=20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"updated":3}`, string(decode(t, rec).Data))

	rec = ts.do(t, http.MethodPost, "/members", map[string]any{"username": "new", "age": 4, "team_id": teamID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/members", map[string]any{"age": 4})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ts.members.AssertExpectations(t)
}

func TestCreateMemberOnTeam(t *testing.T) {
	ts := newTestServer(t)
	team := &domain.Team{ID: 1, Name: "teamA"}
	saved, err := domain.NewMember("member1", 10, team)
	require.NoError(t, err)
	saved.ID = 5

	ts.teams.On("FindTeamByID", mock.Anything, int64(1)).Return(team, nil)
	ts.members.On("Save", mock.Anything, mock.AnythingOfType("*domain.Member")).Return(saved, nil)

	rec := ts.do(t, http.MethodPost, "/members", map[string]any{"username": "member1", "age": 10, "team_id": 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t,
		`{"id":5,"username":"member1","age":10,"team_id":1,"team":{"id":1,"name":"teamA"}}`,
		string(decode(t, rec).Data),
	)
}

func TestRequestIDReachesRepositoryContext(t *testing.T) {
	ts := newTestServer(t)
	var seen string
	ts.members.On("FindMemberDTO", mock.Anything).
		Run(func(args mock.Arguments) {
			seen = logger.RequestIDFromContext(args.Get(0).(context.Context))
		}).
		Return([]domain.MemberDTO{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/members/dto", nil)
	req.Header.Set("X-Request-ID", "req-7")
	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "req-7", seen)
	require.Equal(t, "req-7", rec.Header().Get("X-Request-ID"))
}

func TestMembersByAge(t *testing.T) {
	ts := newTestServer(t)
	req := domain.PageOf(0, 1)
	ts.members.On("FindByAge", mock.Anything, 0, req).
		Return(domain.NewPage([]domain.Member{{ID: 1, Username: "member1"}}, req, 2), nil)

	rec := ts.do(t, http.MethodGet, "/members/by-age?age=0&size=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.Page[domain.Member]
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	require.Len(t, page.Content, 1)
	require.EqualValues(t, 2, page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
}

func TestMembersByExample(t *testing.T) {
	ts := newTestServer(t)
	expected := domain.ExampleOf(
		domain.Member{Username: "m1"},
		domain.Matching().WithIgnorePaths(domain.PathAge),
	)
	ts.members.On("FindAllByExample", mock.Anything, expected).Return([]domain.Member{{ID: 1, Username: "m1", Age: 25}}, nil)

	rec := ts.do(t, http.MethodPost, "/members/example", map[string]any{"username": "m1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/members/example", map[string]any{"ignore_paths": []string{"password"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "ignore_paths", decode(t, rec).Error.Field)

	ts.members.AssertExpectations(t)
}

func TestTeams(t *testing.T) {
	ts := newTestServer(t)
	ts.teams.On("SaveTeam", mock.Anything, &domain.Team{Name: "teamA"}).Return(&domain.Team{ID: 1, Name: "teamA"}, nil)
	ts.teams.On("FindTeamWithMembers", mock.Anything, int64(1)).Return(&domain.Team{
		ID:      1,
		Name:    "teamA",
		Members: []domain.Member{{ID: 2, Username: "member1"}},
	}, nil)

	rec := ts.do(t, http.MethodPost, "/teams", map[string]any{"name": "teamA"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/teams/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var team domain.Team
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &team))
	require.Len(t, team.Members, 1)
}

func TestHealthAndNoRoute(t *testing.T) {
	ts := newTestServer(t)
	ts.members.On("Health", mock.Anything).Return(errors.New("down")).Once()
	ts.members.On("Health", mock.Anything).Return(nil)

	rec := ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/health/detailed", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(t, http.MethodGet, "/health/detailed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
}

func TestRecoveryTurnsPanicsIntoErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.members.On("FindMemberDTO", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	rec := ts.do(t, http.MethodGet, "/members/dto", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "INTERNAL_ERROR", decode(t, rec).Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodOptions, "/members", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
