package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/security"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	nextID    int64
	findErr   error
	createErr error
	updateErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		_, _ = r.Create(context.Background(), u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, username, password string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = password
	return nil
}

type stubTodoRepo struct {
	todos   map[int64]*domain.Todo
	nextID  int64
	deleted []int64
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func (r *stubTodoRepo) Create(_ context.Context, t *domain.Todo) (*domain.Todo, error) {
	r.nextID++
	clone := *t
	clone.ID = r.nextID
	r.todos[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id int64) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTodoRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Todo, error) {
	var out []*domain.Todo
	for _, t := range r.todos {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTodoRepo) Update(_ context.Context, t *domain.Todo) error {
	if _, ok := r.todos[t.ID]; !ok {
		return domain.ErrTodoNotFound
	}
	clone := *t
	r.todos[t.ID] = &clone
	return nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id int64) error {
	delete(r.todos, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubAuditRepo struct {
	insertErr error
	inserted  []*domain.AuthEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuthEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubThrottle struct {
	blocked  bool
	allowErr error
	failures map[string]int
	resets   []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, error) {
	return !t.blocked, t.allowErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets = append(t.resets, username)
	delete(t.failures, username)
	return nil
}

type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (s *stubAuditSink) Enqueue(e domain.AuthEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return true
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestCodec(t *testing.T) *security.TokenCodec {
	t.Helper()
	codec, err := security.NewTokenCodec(security.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Algorithm:     "HS256",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec
}

func alice() *domain.User {
	return &domain.User{
		FirstName: "Alice",
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "pw1",
		IsActive:  true,
		Role:      domain.RoleUser,
	}
}

func admin() *domain.User {
	return &domain.User{
		FirstName: "Ada",
		Username:  "admin",
		Email:     "admin@example.com",
		Password:  "adminpw",
		IsActive:  true,
		Role:      domain.RoleAdmin,
	}
}
