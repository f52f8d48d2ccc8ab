package handlers

import (
	"context"
	"net/http"

	"habit_tracker/internal/models"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	principal     models.Principal
	parseErr      error

	lastRegisterUsername string
	lastRegisterPassword string
	lastLoginUsername    string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, username, password string) (string, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerToken, m.registerErr
}
func (m *mockAuth) Login(_ context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (models.Principal, error) {
	m.lastParseToken = token
	return m.principal, m.parseErr
}

type mockHabits struct {
	list    []models.Habit
	habit   models.Habit
	err     error
	lastUID int
	lastID  int

	lastCreate service.CreateHabitParams
	lastUpdate service.UpdateHabitParams
	lastColor  string
	deleted    int
}

func (m *mockHabits) ListHabits(_ context.Context, userID int) ([]models.Habit, error) {
	m.lastUID = userID
	return m.list, m.err
}
func (m *mockHabits) GetHabit(_ context.Context, userID, habitID int) (models.Habit, error) {
	m.lastUID, m.lastID = userID, habitID
	return m.habit, m.err
}
func (m *mockHabits) CreateHabit(_ context.Context, userID int, p service.CreateHabitParams) (models.Habit, error) {
	m.lastUID = userID
	m.lastCreate = p
	return m.habit, m.err
}
func (m *mockHabits) UpdateHabit(_ context.Context, userID, habitID int, p service.UpdateHabitParams) (models.Habit, error) {
	m.lastUID, m.lastID = userID, habitID
	m.lastUpdate = p
	return m.habit, m.err
}
func (m *mockHabits) UpdateHabitColor(_ context.Context, userID, habitID int, color string) error {
	m.lastUID, m.lastID = userID, habitID
	m.lastColor = color
	return m.err
}
func (m *mockHabits) DeleteHabit(_ context.Context, userID, habitID int) error {
	m.lastUID, m.lastID = userID, habitID
	if m.err == nil {
		m.deleted++
	}
	return m.err
}

type mockCompletions struct {
	dates   []string
	done    bool
	changed bool
	err     error
	calls   []string
	lastF   service.LogFilter
	lastID  int
	lastD   string
}

func (m *mockCompletions) ListCompletions(_ context.Context, _, habitID int, f service.LogFilter) ([]string, error) {
	m.calls = append(m.calls, "list")
	m.lastID, m.lastF = habitID, f
	return m.dates, m.err
}
func (m *mockCompletions) AddCompletion(_ context.Context, _, habitID int, date string) (bool, error) {
	m.calls = append(m.calls, "add")
	m.lastID, m.lastD = habitID, date
	return m.changed, m.err
}
func (m *mockCompletions) RemoveCompletion(_ context.Context, _, habitID int, date string) (bool, error) {
	m.calls = append(m.calls, "remove")
	m.lastID, m.lastD = habitID, date
	return m.changed, m.err
}
func (m *mockCompletions) ToggleCompletion(_ context.Context, _, habitID int, date string) (bool, error) {
	m.calls = append(m.calls, "toggle")
	m.lastID, m.lastD = habitID, date
	return m.done, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// newAuthedService returns a service whose tokens all resolve to user 7.
func newAuthedService(habits service.Habits, completions service.Completions) *service.Service {
	return &service.Service{
		Authorization: &mockAuth{principal: models.Principal{UserID: 7, Username: "alice"}},
		Habits:        habits,
		Completions:   completions,
	}
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
