package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	tshttp "github.com/tasksetu/tasksetu/internal/adapter/http"
	"github.com/tasksetu/tasksetu/internal/adapter/otel"
	"github.com/tasksetu/tasksetu/internal/adapter/ws"
	"github.com/tasksetu/tasksetu/internal/config"
	"github.com/tasksetu/tasksetu/internal/domain"
	"github.com/tasksetu/tasksetu/internal/domain/activity"
	"github.com/tasksetu/tasksetu/internal/domain/comment"
	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/domain/permission"
	"github.com/tasksetu/tasksetu/internal/domain/task"
	"github.com/tasksetu/tasksetu/internal/domain/tenant"
	"github.com/tasksetu/tasksetu/internal/domain/user"
	"github.com/tasksetu/tasksetu/internal/middleware"
	"github.com/tasksetu/tasksetu/internal/port/messagequeue"
	"github.com/tasksetu/tasksetu/internal/resilience"
	"github.com/tasksetu/tasksetu/internal/service"
)

var errNotFound = fmt.Errorf("mock: %w", domain.ErrNotFound)

// mockStore implements database.Store for handler tests.
type mockStore struct {
	mu       sync.Mutex
	tasks    map[string]*task.Task
	comments map[string]*comment.Comment
	records  []activity.Record
	users    map[string]*user.User
	orgs     map[string]*tenant.Organization
}

func newMockStore() *mockStore {
	return &mockStore{
		tasks:    make(map[string]*task.Task),
		comments: make(map[string]*comment.Comment),
		users:    make(map[string]*user.User),
		orgs:     make(map[string]*tenant.Organization),
	}
}

func (m *mockStore) ListTasks(_ context.Context) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []task.Task
	for _, t := range m.tasks {
		if t.ParentID == "" {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockStore) GetTask(_ context.Context, id string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockStore) CreateTask(_ context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *mockStore) UpdateTask(_ context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[t.ID]; !ok {
		return errNotFound
	}
	cp := *t
	cp.Version++
	m.tasks[t.ID] = &cp
	t.Version++
	return nil
}

func (m *mockStore) UpdateTaskStatus(_ context.Context, id string, status task.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return errNotFound
	}
	t.Status = status
	t.Version++
	return nil
}

func (m *mockStore) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return errNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockStore) ListSubtasks(_ context.Context, parentID string) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []task.Task
	for _, t := range m.tasks {
		if t.ParentID == parentID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockStore) ListComments(_ context.Context, taskID string) ([]comment.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []comment.Comment
	for _, c := range m.comments {
		if c.TaskID == taskID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockStore) GetComment(_ context.Context, id string) (*comment.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockStore) CreateComment(_ context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *mockStore) UpdateComment(_ context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[c.ID]; !ok {
		return errNotFound
	}
	cp := *c
	cp.Edited = true
	m.comments[c.ID] = &cp
	return nil
}

func (m *mockStore) DeleteComment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return errNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *mockStore) AppendActivity(_ context.Context, rec *activity.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockStore) ListActivityByTask(_ context.Context, taskID string) ([]activity.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []activity.Record
	for _, rec := range m.records {
		if rec.TaskID == taskID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email, tenantID string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.TenantID == tenantID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) ListUsers(_ context.Context) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []user.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockStore) CreateOrganization(_ context.Context, org *tenant.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *org
	m.orgs[org.ID] = &cp
	return nil
}

func (m *mockStore) GetOrganization(_ context.Context, id string) (*tenant.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	org, ok := m.orgs[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *org
	return &cp, nil
}

func (m *mockStore) ListOrganizations(_ context.Context) ([]tenant.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tenant.Organization
	for _, org := range m.orgs {
		out = append(out, *org)
	}
	return out, nil
}

func (m *mockStore) UpdateOrganization(_ context.Context, org *tenant.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orgs[org.ID]; !ok {
		return errNotFound
	}
	cp := *org
	m.orgs[org.ID] = &cp
	return nil
}

// mockQueue implements messagequeue.Queue for handler tests.
type mockQueue struct {
	mu        sync.Mutex
	published []string
}

func (m *mockQueue) Publish(_ context.Context, subject string, _ []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, subject)
	return nil
}

func (m *mockQueue) Subscribe(_ context.Context, _ string, _ messagequeue.Handler) (func(), error) {
	return func() {}, nil
}

func (m *mockQueue) Drain() error      { return nil }
func (m *mockQueue) Close() error      { return nil }
func (m *mockQueue) IsConnected() bool { return true }

// mockCache is a trivial map-backed cache.
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

var adminUser = &user.User{
	ID:       "admin-1",
	Email:    "admin@example.com",
	Name:     "Admin",
	Role:     user.RoleOrgAdmin,
	TenantID: middleware.DefaultTenantID,
	Enabled:  true,
}

var employeeUser = &user.User{
	ID:       "emp-1",
	Email:    "emp@example.com",
	Name:     "Employee",
	Role:     user.RoleEmployee,
	TenantID: middleware.DefaultTenantID,
	Enabled:  true,
}

// asUser injects a fixed authenticated user, standing in for the JWT
// middleware.
func asUser(u *user.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), u)))
		})
	}
}

func newTestRouter(t *testing.T, actor *user.User) (chi.Router, *mockStore) {
	t.Helper()

	store := newMockStore()
	queue := &mockQueue{}
	hub := ws.NewHub()
	breaker := resilience.NewBreaker(3, time.Minute)
	activitySvc := service.NewActivityService(store, queue, breaker)
	taskSvc := service.NewTaskService(store, queue, hub, newMockCache(), activitySvc, time.Minute, time.Minute)
	metrics, err := otel.NewMetrics()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	handlers := &tshttp.Handlers{
		Tasks:    taskSvc,
		Comments: service.NewCommentService(store, queue, hub, taskSvc, activitySvc),
		Activity: activitySvc,
		Auth:     service.NewAuthService(store, &config.Auth{JWTSecret: "test-secret", AccessTokenExpiry: time.Hour, BcryptCost: 4}),
		Tenants:  service.NewTenantService(store),
		Hub:      hub,
		Queue:    queue,
		Metrics:  metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.TenantID)
	r.Use(asUser(actor))
	tshttp.MountRoutes(r, handlers)
	return r, store
}

func seedTask(store *mockStore, id, assigneeID string, status task.Status) {
	store.tasks[id] = &task.Task{
		ID:         id,
		TenantID:   middleware.DefaultTenantID,
		Title:      "seeded",
		Status:     status,
		AssigneeID: identity.FromString(assigneeID),
		Version:    1,
	}
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListTasksEmpty(t *testing.T) {
	r, _ := newTestRouter(t, adminUser)
	w := doJSON(t, r, "GET", "/api/v1/tasks", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var tasks []task.Task
	if err := json.NewDecoder(w.Body).Decode(&tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d", len(tasks))
	}
}

func TestCreateAndGetTask(t *testing.T) {
	r, _ := newTestRouter(t, adminUser)

	w := doJSON(t, r, "POST", "/api/v1/tasks", task.CreateRequest{Title: "Quarterly report"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created task.Task
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Status != task.StatusOpen {
		t.Fatalf("expected new task to be OPEN, got %s", created.Status)
	}

	w = doJSON(t, r, "GET", "/api/v1/tasks/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCreateTaskMissingTitle(t *testing.T) {
	r, _ := newTestRouter(t, adminUser)
	w := doJSON(t, r, "POST", "/api/v1/tasks", task.CreateRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	r, _ := newTestRouter(t, adminUser)
	w := doJSON(t, r, "GET", "/api/v1/tasks/nonexistent", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateSubtask(t *testing.T) {
	r, store := newTestRouter(t, adminUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/subtasks", task.CreateRequest{Title: "gather figures"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var sub task.Task
	if err := json.NewDecoder(w.Body).Decode(&sub); err != nil {
		t.Fatal(err)
	}
	if sub.ParentID != "t1" {
		t.Fatalf("expected parent t1, got %q", sub.ParentID)
	}

	// A subtask cannot itself have subtasks.
	w = doJSON(t, r, "POST", "/api/v1/tasks/"+sub.ID+"/subtasks", task.CreateRequest{Title: "too deep"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChangeStatusCommitsNonTerminal(t *testing.T) {
	r, store := newTestRouter(t, adminUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/status", map[string]string{"status": "INPROGRESS"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated task.Task
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Status != task.StatusInProgress {
		t.Fatalf("expected INPROGRESS, got %s", updated.Status)
	}
}

func TestChangeStatusInvalidTransition(t *testing.T) {
	r, store := newTestRouter(t, adminUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/status", map[string]string{"status": "DONE"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChangeStatusPermissionDenied(t *testing.T) {
	stranger := &user.User{ID: "other-1", Role: user.RoleEmployee, TenantID: middleware.DefaultTenantID, Enabled: true}
	r, store := newTestRouter(t, stranger)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/status", map[string]string{"status": "INPROGRESS"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTerminalStatusRequiresConfirmation(t *testing.T) {
	r, store := newTestRouter(t, adminUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/status", map[string]string{"status": "CANCELLED"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var pending service.PendingTransition
	if err := json.NewDecoder(w.Body).Decode(&pending); err != nil {
		t.Fatal(err)
	}
	if pending.Token == "" {
		t.Fatal("expected a confirmation token")
	}
	if pending.Warning == "" {
		t.Fatal("expected a warning message")
	}

	// Task must not have moved yet.
	if store.tasks["t1"].Status != task.StatusOpen {
		t.Fatalf("task moved before confirmation: %s", store.tasks["t1"].Status)
	}

	// Confirm applies the change.
	w = doJSON(t, r, "POST", "/api/v1/tasks/t1/status/confirm", map[string]string{"token": pending.Token})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.tasks["t1"].Status != task.StatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", store.tasks["t1"].Status)
	}

	// Token is single use.
	w = doJSON(t, r, "POST", "/api/v1/tasks/t1/status/confirm", map[string]string{"token": pending.Token})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on reused token, got %d", w.Code)
	}
}

func TestAbandonStatusChange(t *testing.T) {
	r, store := newTestRouter(t, adminUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/status", map[string]string{"status": "CANCELLED"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	var pending service.PendingTransition
	if err := json.NewDecoder(w.Body).Decode(&pending); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, "POST", "/api/v1/tasks/t1/status/abandon", map[string]string{"token": pending.Token})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// The abandoned token no longer confirms.
	w = doJSON(t, r, "POST", "/api/v1/tasks/t1/status/confirm", map[string]string{"token": pending.Token})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if store.tasks["t1"].Status != task.StatusOpen {
		t.Fatalf("abandoned proposal changed status: %s", store.tasks["t1"].Status)
	}
}

func TestChangeStatusMissingStatus(t *testing.T) {
	r, store := newTestRouter(t, adminUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/status", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetTaskPermissions(t *testing.T) {
	r, store := newTestRouter(t, employeeUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "GET", "/api/v1/tasks/t1/permissions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var caps permission.Capabilities
	if err := json.NewDecoder(w.Body).Decode(&caps); err != nil {
		t.Fatal(err)
	}
	if !caps.CanEdit {
		t.Fatal("assignee should be able to edit")
	}
	if !caps.OwnContentOnly {
		t.Fatal("employee capability set should be own-content-only")
	}
}

func TestTaskActivityTrail(t *testing.T) {
	r, store := newTestRouter(t, adminUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/status", map[string]string{"status": "INPROGRESS"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, "GET", "/api/v1/tasks/t1/activity", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var records []activity.Record
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 activity record, got %d", len(records))
	}
	if records[0].Type != activity.TypeStatusChanged {
		t.Fatalf("expected status change record, got %s", records[0].Type)
	}
}

func TestAddAndListComments(t *testing.T) {
	r, store := newTestRouter(t, employeeUser)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/comments", comment.CreateRequest{Body: "looks good"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "GET", "/api/v1/tasks/t1/comments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var comments []comment.Comment
	if err := json.NewDecoder(w.Body).Decode(&comments); err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
}

func TestAddCommentDeniedForStranger(t *testing.T) {
	stranger := &user.User{ID: "other-1", Role: user.RoleEmployee, TenantID: middleware.DefaultTenantID, Enabled: true}
	r, store := newTestRouter(t, stranger)
	seedTask(store, "t1", employeeUser.ID, task.StatusOpen)

	w := doJSON(t, r, "POST", "/api/v1/tasks/t1/comments", comment.CreateRequest{Body: "drive-by"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestOrgRoutesRequireAdmin(t *testing.T) {
	r, _ := newTestRouter(t, employeeUser)
	w := doJSON(t, r, "GET", "/api/v1/orgs/", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	r, _ = newTestRouter(t, adminUser)
	w = doJSON(t, r, "POST", "/api/v1/orgs/", tenant.CreateRequest{Name: "Acme", Slug: "acme"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, adminUser)
	w := doJSON(t, r, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result map[string]any
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result["status"] != "ok" {
		t.Fatalf("expected ok, got %v", result["status"])
	}
}

func TestVersionEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, adminUser)
	w := doJSON(t, r, "GET", "/api/v1/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
