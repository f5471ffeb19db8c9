package handlers

import (
	"context"
	"net/http"

	"github.com/Kyoronginus/Grasshaeru/internal/models"
	"github.com/Kyoronginus/Grasshaeru/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int64
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int64
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int64, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTodos struct {
	listResp   []models.Todo
	listErr    error
	createResp models.Todo
	createErr  error
	updateResp models.Todo
	updateErr  error
	deleteErr  error

	lastListOwner   int64
	lastCreateOwner int64
	lastContent     string
	lastUpdateOwner int64
	lastUpdateID    string
	lastPatch       service.TodoPatch
	lastDeleteOwner int64
	lastDeleteID    string
}

func (m *mockTodos) List(_ context.Context, ownerID int64) ([]models.Todo, error) {
	m.lastListOwner = ownerID
	return m.listResp, m.listErr
}
func (m *mockTodos) Create(_ context.Context, ownerID int64, content string) (models.Todo, error) {
	m.lastCreateOwner = ownerID
	m.lastContent = content
	return m.createResp, m.createErr
}
func (m *mockTodos) Update(_ context.Context, ownerID int64, id string, patch service.TodoPatch) (models.Todo, error) {
	m.lastUpdateOwner = ownerID
	m.lastUpdateID = id
	m.lastPatch = patch
	return m.updateResp, m.updateErr
}
func (m *mockTodos) Delete(_ context.Context, ownerID int64, id string) error {
	m.lastDeleteOwner = ownerID
	m.lastDeleteID = id
	return m.deleteErr
}

type mockJournal struct {
	listResp    []models.Commit
	listErr     error
	createResp  models.Commit
	createErr   error
	calResp     []models.CalendarDay
	calErr      error
	lastOwner   int64
	lastMessage string
	lastDays    int
}

func (m *mockJournal) List(_ context.Context, ownerID int64) ([]models.Commit, error) {
	m.lastOwner = ownerID
	return m.listResp, m.listErr
}
func (m *mockJournal) Create(_ context.Context, ownerID int64, message string) (models.Commit, error) {
	m.lastOwner = ownerID
	m.lastMessage = message
	return m.createResp, m.createErr
}
func (m *mockJournal) Calendar(_ context.Context, ownerID int64, days int) ([]models.CalendarDay, error) {
	m.lastOwner = ownerID
	m.lastDays = days
	return m.calResp, m.calErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	if s.Feed == nil {
		s.Feed = service.NewFeedHub()
	}
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func addHeaders(req *http.Request, headers http.Header) {
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
}
