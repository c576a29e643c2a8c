package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/security"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cipher, err := security.NewPasswordCipher("oikBWDid816xrCYZMj_w20YTv1sN4_WhwZK9Kdd9AIs=")
	if err != nil {
		t.Fatalf("NewPasswordCipher: %v", err)
	}
	return NewStore(cipher)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Users().Create(ctx, &domain.User{Username: "alice", Email: "a@example.com", Password: "pw1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}

	if string(s.users["alice"].password) == "pw1" || s.users["alice"].user.Password != "" {
		t.Fatalf("plaintext password kept in the store")
	}

	got, err := s.Users().FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.Password != "pw1" {
		t.Fatalf("expected decrypted password, got %q", got.Password)
	}

	if _, err := s.Users().FindByUsername(ctx, "ALICE"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("lookups must be case sensitive, got %v", err)
	}
}

func TestUserRepository_Uniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _ = s.Users().Create(ctx, &domain.User{Username: "alice", Email: "a@example.com", Password: "pw"})

	if _, err := s.Users().Create(ctx, &domain.User{Username: "alice", Email: "b@example.com", Password: "pw"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate username: expected ErrUserExists, got %v", err)
	}
	if _, err := s.Users().Create(ctx, &domain.User{Username: "bob", Email: "a@example.com", Password: "pw"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate email: expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_UpdatePasswordAndSetActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, _ = s.Users().Create(ctx, &domain.User{Username: "alice", Email: "a@example.com", Password: "pw1"})

	if err := s.Users().UpdatePassword(ctx, "alice", "pw2"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if err := s.Users().SetActive(ctx, "alice", true); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	got, _ := s.Users().FindByUsername(ctx, "alice")
	if got.Password != "pw2" || !got.IsActive {
		t.Fatalf("unexpected user %+v", got)
	}

	if err := s.Users().UpdatePassword(ctx, "ghost", "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_CorruptCiphertext(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, _ = s.Users().Create(ctx, &domain.User{Username: "alice", Email: "a@example.com", Password: "pw1"})
	s.users["alice"].password = []byte("corrupt")

	if _, err := s.Users().FindByUsername(ctx, "alice"); !errors.Is(err, security.ErrDecoding) {
		t.Fatalf("expected ErrDecoding, got %v", err)
	}
}

func TestTodoRepository_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Todos()

	a, _ := repo.Create(ctx, &domain.Todo{Title: "a", UserID: 1})
	_, _ = repo.Create(ctx, &domain.Todo{Title: "b", UserID: 2})
	c, _ := repo.Create(ctx, &domain.Todo{Title: "c", UserID: 1})

	list, _ := repo.ListByUser(ctx, 1)
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != c.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	a.Finished = true
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.FindByID(ctx, a.ID)
	if !got.Finished {
		t.Fatalf("update not persisted")
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, a.ID); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Todos().Create(ctx, &domain.Todo{Title: "t", UserID: 1})
		}()
	}
	wg.Wait()

	list, _ := s.Todos().ListByUser(ctx, 1)
	if len(list) != 50 {
		t.Fatalf("expected 50 todos, got %d", len(list))
	}
}
