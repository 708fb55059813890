package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/service"
	"fantaprof/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.TokenResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
	meResult       *dto.ProfileResponse
	meErr          error
	avatarResult   *dto.UserResponse
	avatarErr      error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ uint) (*dto.ProfileResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) UpdateAvatar(_ context.Context, _ uint, _ string) (*dto.UserResponse, error) {
	return m.avatarResult, m.avatarErr
}

// ── Mock TeamService ──

type mockTeamService struct {
	createResult      *dto.TeamResponse
	createErr         error
	myResult          []dto.TeamResponse
	myErr             error
	getResult         *dto.TeamResponse
	getErr            error
	deleteErr         error
	leaderboardResult []dto.LeaderboardEntryResponse
	leaderboardErr    error
}

func (m *mockTeamService) Create(_ context.Context, _ uint, _ *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTeamService) My(_ context.Context, _ uint) ([]dto.TeamResponse, error) {
	return m.myResult, m.myErr
}
func (m *mockTeamService) Get(_ context.Context, _ uint) (*dto.TeamResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTeamService) Delete(_ context.Context, _, _ uint) error {
	return m.deleteErr
}
func (m *mockTeamService) GlobalLeaderboard(_ context.Context) ([]dto.LeaderboardEntryResponse, error) {
	return m.leaderboardResult, m.leaderboardErr
}

// ── Mock LeagueService ──

type mockLeagueService struct {
	createResult *dto.LeagueResponse
	createErr    error
	joinResult   *dto.LeagueResponse
	joinErr      error
	leaveErr     error
	deleteErr    error
	publicResult []dto.LeagueResponse
	publicErr    error
	myResult     []dto.LeagueResponse
	myErr        error
	detailResult *dto.LeagueDetailResponse
	detailErr    error
}

func (m *mockLeagueService) Create(_ context.Context, _ uint, _ *dto.CreateLeagueRequest) (*dto.LeagueResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockLeagueService) Join(_ context.Context, _ uint, _ string) (*dto.LeagueResponse, error) {
	return m.joinResult, m.joinErr
}
func (m *mockLeagueService) Leave(_ context.Context, _, _ uint) error {
	return m.leaveErr
}
func (m *mockLeagueService) Delete(_ context.Context, _, _ uint) error {
	return m.deleteErr
}
func (m *mockLeagueService) ListPublic(_ context.Context, _ uint) ([]dto.LeagueResponse, error) {
	return m.publicResult, m.publicErr
}
func (m *mockLeagueService) My(_ context.Context, _ uint) ([]dto.LeagueResponse, error) {
	return m.myResult, m.myErr
}
func (m *mockLeagueService) Detail(_ context.Context, _, _ uint) (*dto.LeagueDetailResponse, error) {
	return m.detailResult, m.detailErr
}

// ── Mock ScoringService ──

type mockScoringService struct {
	bonus       []dto.ScoringEventResponse
	malus       []dto.ScoringEventResponse
	applyResult *service.ApplyEventResult
	applyErr    error
}

func (m *mockScoringService) Events(_ context.Context) ([]dto.ScoringEventResponse, []dto.ScoringEventResponse) {
	return m.bonus, m.malus
}
func (m *mockScoringService) ApplyEvent(_ context.Context, _, _ uint, _ string) (*service.ApplyEventResult, error) {
	return m.applyResult, m.applyErr
}

// ── Mock ProfessorService ──

type mockProfessorService struct {
	listResult    []dto.ProfessorResponse
	listErr       error
	getResult     *dto.ProfessorResponse
	getErr        error
	historyResult []dto.ScoreEventResponse
	historyErr    error
	createResult  *dto.ProfessorResponse
	createErr     error
	updateResult  *dto.ProfessorResponse
	updateErr     error
	deleteErr     error
}

func (m *mockProfessorService) List(_ context.Context) ([]dto.ProfessorResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockProfessorService) Get(_ context.Context, _ uint) (*dto.ProfessorResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockProfessorService) History(_ context.Context, _ uint, _ int) ([]dto.ScoreEventResponse, error) {
	return m.historyResult, m.historyErr
}
func (m *mockProfessorService) Create(_ context.Context, _ *dto.CreateProfessorRequest) (*dto.ProfessorResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockProfessorService) Update(_ context.Context, _ uint, _ *dto.UpdateProfessorRequest) (*dto.ProfessorResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockProfessorService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

// ── Mock UserService ──

type mockUserService struct {
	listResult    *dto.UserListResponse
	listErr       error
	updateRoleErr error
}

func (m *mockUserService) List(_ context.Context, _, _ int) (*dto.UserListResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockUserService) UpdateRole(_ context.Context, _, _ uint, _ string) error {
	return m.updateRoleErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportLeaderboard(_ context.Context, _ *uint) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	listResult  *dto.NotificationListResponse
	listErr     error
	markReadErr error
	markAllErr  error
	deleteErr   error
	delAllErr   error
}

func (m *mockNotificationService) List(_ context.Context, _ uint, _ int) (*dto.NotificationListResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockNotificationService) MarkRead(_ context.Context, _, _ uint) error {
	return m.markReadErr
}
func (m *mockNotificationService) MarkAllRead(_ context.Context, _ uint) error {
	return m.markAllErr
}
func (m *mockNotificationService) Delete(_ context.Context, _, _ uint) error {
	return m.deleteErr
}
func (m *mockNotificationService) DeleteAll(_ context.Context, _ uint) error {
	return m.delAllErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", uint(1))
	c.Set("username", "alice")
	c.Set("role", "admin")
	c.Set("token_jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Register_Success(t *testing.T) {
	mock := &mockAuthService{
		registerResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	mock := &mockAuthService{registerErr: service.ErrUserExists}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Register_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{
		meResult: &dto.ProfileResponse{
			UserResponse: dto.UserResponse{ID: 1, Username: "alice"},
			TeamCount:    2,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TeamHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTeamHandler_Create_OverBudget(t *testing.T) {
	mock := &mockTeamService{createErr: service.ErrOverBudget}
	h := NewTeamHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/teams", jsonBody(dto.CreateTeamRequest{
		Name:         "Dream Team",
		ProfessorIDs: []uint{1, 2, 3, 4, 5},
		CaptainID:    1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teams", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13005 {
		t.Errorf("expected error code 13005, got %d", resp.Code)
	}
}

func TestTeamHandler_Create_DuplicateInLeague(t *testing.T) {
	mock := &mockTeamService{createErr: service.ErrTeamInLeagueExists}
	h := NewTeamHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/teams", jsonBody(dto.CreateTeamRequest{
		Name:         "Dream Team",
		ProfessorIDs: []uint{1, 2, 3, 4, 5},
		CaptainID:    1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teams", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestTeamHandler_Create_Success(t *testing.T) {
	mock := &mockTeamService{
		createResult: &dto.TeamResponse{ID: 7, Name: "Dream Team", TotalCost: 95},
	}
	h := NewTeamHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/teams", jsonBody(dto.CreateTeamRequest{
		Name:         "Dream Team",
		ProfessorIDs: []uint{1, 2, 3, 4, 5},
		CaptainID:    1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teams", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestTeamHandler_Delete_NotOwner(t *testing.T) {
	mock := &mockTeamService{deleteErr: service.ErrNotTeamOwner}
	h := NewTeamHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/teams/7", nil)

	r := gin.New()
	r.DELETE("/teams/:id", func(c *gin.Context) {
		setAuth(c)
		h.Delete(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestTeamHandler_Get_InvalidID(t *testing.T) {
	h := NewTeamHandler(&mockTeamService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/teams/abc", nil)

	r := gin.New()
	r.GET("/teams/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// LeagueHandler Tests
// ═══════════════════════════════════════════════════════════

func TestLeagueHandler_Join_BadCode(t *testing.T) {
	h := NewLeagueHandler(&mockLeagueService{})

	w := httptest.NewRecorder()
	// 邀请码必须恰好 8 位
	req := httptest.NewRequest("POST", "/leagues/join", jsonBody(dto.JoinLeagueRequest{Code: "ABC"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/leagues/join", func(c *gin.Context) {
		setAuth(c)
		h.Join(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLeagueHandler_Join_Full(t *testing.T) {
	mock := &mockLeagueService{joinErr: service.ErrLeagueFull}
	h := NewLeagueHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/leagues/join", jsonBody(dto.JoinLeagueRequest{Code: "ABCD1234"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/leagues/join", func(c *gin.Context) {
		setAuth(c)
		h.Join(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestLeagueHandler_Leave_CreatorForbidden(t *testing.T) {
	mock := &mockLeagueService{leaveErr: service.ErrCreatorLeave}
	h := NewLeagueHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/leagues/3/leave", nil)

	r := gin.New()
	r.DELETE("/leagues/:id/leave", func(c *gin.Context) {
		setAuth(c)
		h.Leave(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestLeagueHandler_Detail_Hidden(t *testing.T) {
	mock := &mockLeagueService{detailErr: service.ErrLeagueNotFound}
	h := NewLeagueHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/leagues/3", nil)

	r := gin.New()
	r.GET("/leagues/:id", func(c *gin.Context) {
		setAuth(c)
		h.Detail(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AdminHandler Tests
// ═══════════════════════════════════════════════════════════

func newAdminHandler(
	userSvc service.UserService,
	profSvc service.ProfessorService,
	scoringSvc service.ScoringService,
	exportSvc service.ExportService,
) *AdminHandler {
	if userSvc == nil {
		userSvc = &mockUserService{}
	}
	if profSvc == nil {
		profSvc = &mockProfessorService{}
	}
	if scoringSvc == nil {
		scoringSvc = &mockScoringService{}
	}
	if exportSvc == nil {
		exportSvc = &mockExportService{}
	}
	return NewAdminHandler(userSvc, profSvc, scoringSvc, exportSvc)
}

func TestAdminHandler_Events(t *testing.T) {
	mock := &mockScoringService{
		bonus: []dto.ScoringEventResponse{{Code: "malore", Name: "Malore in Classe", Points: 200, Emoji: "🏥"}},
		malus: []dto.ScoringEventResponse{{Code: "sbaglia", Name: "Sbaglia Esercizio", Points: -10}},
	}
	h := newAdminHandler(nil, nil, mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/events", nil)

	r := gin.New()
	r.GET("/admin/events", h.Events)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data struct {
			Bonus []dto.ScoringEventResponse `json:"bonus"`
			Malus []dto.ScoringEventResponse `json:"malus"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Data.Bonus) != 1 || len(resp.Data.Malus) != 1 {
		t.Errorf("expected 1 bonus and 1 malus, got %d/%d", len(resp.Data.Bonus), len(resp.Data.Malus))
	}
}

func TestAdminHandler_ApplyScoreEvent_UnknownEvent(t *testing.T) {
	mock := &mockScoringService{applyErr: service.ErrUnknownEvent}
	h := newAdminHandler(nil, nil, mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/professors/2/score", jsonBody(dto.ApplyScoreEventRequest{
		ProfessorID: 2,
		EventCode:   "not_a_real_event",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/admin/professors/:id/score", func(c *gin.Context) {
		setAuth(c)
		h.ApplyScoreEvent(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12002 {
		t.Errorf("expected error code 12002, got %d", resp.Code)
	}
}

func TestAdminHandler_ApplyScoreEvent_PathBodyMismatch(t *testing.T) {
	h := newAdminHandler(nil, nil, &mockScoringService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/professors/2/score", jsonBody(dto.ApplyScoreEventRequest{
		ProfessorID: 99,
		EventCode:   "malore",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/admin/professors/:id/score", func(c *gin.Context) {
		setAuth(c)
		h.ApplyScoreEvent(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAdminHandler_DeleteProfessor_InTeams(t *testing.T) {
	mock := &mockProfessorService{deleteErr: service.ErrProfessorInTeams}
	h := newAdminHandler(nil, mock, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/admin/professors/2", nil)

	r := gin.New()
	r.DELETE("/admin/professors/:id", h.DeleteProfessor)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12004 {
		t.Errorf("expected error code 12004, got %d", resp.Code)
	}
}

func TestAdminHandler_UpdateUserRole_SelfDemotion(t *testing.T) {
	mock := &mockUserService{updateRoleErr: service.ErrSelfDemotion}
	h := newAdminHandler(mock, nil, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/users/1/role", jsonBody(dto.UpdateUserRoleRequest{Role: "user"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/users/:id/role", func(c *gin.Context) {
		setAuth(c)
		h.UpdateUserRole(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAdminHandler_UpdateUserRole_InvalidRole(t *testing.T) {
	h := newAdminHandler(&mockUserService{}, nil, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/users/2/role", jsonBody(map[string]string{"role": "superadmin"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/users/:id/role", func(c *gin.Context) {
		setAuth(c)
		h.UpdateUserRole(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAdminHandler_ExportLeaderboard_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "classifica_20260831_120000.xlsx",
	}
	h := newAdminHandler(nil, nil, nil, mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/leaderboard/export", nil)

	r := gin.New()
	r.GET("/admin/leaderboard/export", h.ExportLeaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
	if w.Body.String() != "fake-xlsx-bytes" {
		t.Error("expected raw file bytes in body")
	}
}

func TestAdminHandler_ExportLeaderboard_Empty(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportEmpty}
	h := newAdminHandler(nil, nil, nil, mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/leaderboard/export", nil)

	r := gin.New()
	r.GET("/admin/leaderboard/export", h.ExportLeaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAdminHandler_ExportLeaderboard_BadLeagueID(t *testing.T) {
	h := newAdminHandler(nil, nil, nil, &mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/leaderboard/export?league_id=abc", nil)

	r := gin.New()
	r.GET("/admin/leaderboard/export", h.ExportLeaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// NotificationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	mock := &mockNotificationService{markReadErr: service.ErrNotificationNotFound}
	h := NewNotificationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/notifications/9/read", nil)

	r := gin.New()
	r.PUT("/notifications/:id/read", func(c *gin.Context) {
		setAuth(c)
		h.MarkRead(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestNotificationHandler_List_BadLimit(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notifications?limit=0", nil)

	r := gin.New()
	r.GET("/notifications", func(c *gin.Context) {
		setAuth(c)
		h.List(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
