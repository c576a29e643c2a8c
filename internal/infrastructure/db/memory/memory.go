// Package memory is a process-local store for development and tests. It
// keeps the same contracts as the database stores, including encrypting the
// password column.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type userRow struct {
	user     domain.User // Password left empty
	password []byte      // ciphertext
}

// Store holds all tables behind one mutex.
type Store struct {
	mu     sync.Mutex
	cipher ports.PasswordCipher

	users      map[string]*userRow
	userSeq    int64
	todos      map[int64]domain.Todo
	todoSeq    int64
	authEvents []domain.AuthEvent
}

func NewStore(cipher ports.PasswordCipher) *Store {
	return &Store{
		cipher: cipher,
		users:  make(map[string]*userRow),
		todos:  make(map[int64]domain.Todo),
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Todos() *TodoRepository { return &TodoRepository{s: s} }
func (s *Store) Audit() *AuditRepository { return &AuditRepository{s: s} }

// Ping always succeeds; it lets the store take part in readiness checks.
func (s *Store) Ping(context.Context) error { return nil }

// AuthEvents returns a copy of the recorded audit trail.
func (s *Store) AuthEvents() []domain.AuthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuthEvent, len(s.authEvents))
	copy(out, s.authEvents)
	return out
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	encrypted, err := r.s.cipher.Encrypt(user.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.users {
		if row.user.Username == user.Username || row.user.Email == user.Email {
			return nil, fmt.Errorf("insert user: %w", domain.ErrUserExists)
		}
	}

	r.s.userSeq++
	row := &userRow{user: *user, password: encrypted}
	row.user.ID = r.s.userSeq
	row.user.Password = ""
	r.s.users[user.Username] = row

	created := *user
	created.ID = row.user.ID
	return &created, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	row, ok := r.s.users[username]
	var snapshot userRow
	if ok {
		snapshot = *row
	}
	r.s.mu.Unlock()

	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.s.decrypt(&snapshot)
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.Lock()
	rows := make([]userRow, 0, len(r.s.users))
	for _, row := range r.s.users {
		rows = append(rows, *row)
	}
	r.s.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].user.ID < rows[j].user.ID })

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		u, err := r.s.decrypt(&rows[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, username, password string) error {
	encrypted, err := r.s.cipher.Encrypt(password)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	row.password = encrypted
	return nil
}

// SetActive flips the active flag of username. There is no HTTP route for
// it; operators and tests use it directly.
func (r *UserRepository) SetActive(_ context.Context, username string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	row.user.IsActive = active
	return nil
}

func (s *Store) decrypt(row *userRow) (*domain.User, error) {
	password, err := s.cipher.Decrypt(row.password)
	if err != nil {
		return nil, fmt.Errorf("decrypt password of user %d: %w", row.user.ID, err)
	}
	u := row.user
	u.Password = password
	return &u, nil
}

type TodoRepository struct{ s *Store }

func (r *TodoRepository) Create(_ context.Context, t *domain.Todo) (*domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.todoSeq++
	created := *t
	created.ID = r.s.todoSeq
	r.s.todos[created.ID] = created
	return &created, nil
}

func (r *TodoRepository) FindByID(_ context.Context, id int64) (*domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return &t, nil
}

func (r *TodoRepository) ListByUser(_ context.Context, userID int64) ([]*domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	todos := make([]*domain.Todo, 0)
	for _, t := range r.s.todos {
		if t.UserID == userID {
			t := t
			todos = append(todos, &t)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (r *TodoRepository) Update(_ context.Context, t *domain.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.todos[t.ID]; !ok {
		return domain.ErrTodoNotFound
	}
	r.s.todos[t.ID] = *t
	return nil
}

func (r *TodoRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.s.todos, id)
	return nil
}

type AuditRepository struct{ s *Store }

func (r *AuditRepository) Insert(_ context.Context, event *domain.AuthEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.authEvents = append(r.s.authEvents, *event)
	return nil
}
