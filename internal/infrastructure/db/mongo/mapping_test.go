package mongo

import (
	"errors"
	"testing"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/security"
)

const testFernetKey = "oikBWDid816xrCYZMj_w20YTv1sN4_WhwZK9Kdd9AIs="

func TestUserDoc_RoundTrip(t *testing.T) {
	cipher, err := security.NewPasswordCipher(testFernetKey)
	if err != nil {
		t.Fatalf("NewPasswordCipher: %v", err)
	}

	in := &domain.User{
		ID: 4, FirstName: "Alice", Username: "alice", Email: "alice@example.com",
		Password: "pw1", IsActive: true, Role: domain.RoleAdmin,
	}
	doc, err := toUserDoc(in, cipher)
	if err != nil {
		t.Fatalf("toUserDoc: %v", err)
	}
	if doc.Password == "pw1" || doc.Password == "" {
		t.Fatalf("password must be stored encrypted, got %q", doc.Password)
	}
	if doc.Role != "admin" {
		t.Fatalf("unexpected role %q", doc.Role)
	}

	out, err := fromUserDoc(doc, cipher)
	if err != nil {
		t.Fatalf("fromUserDoc: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestFromUserDoc_CorruptPassword(t *testing.T) {
	cipher, _ := security.NewPasswordCipher(testFernetKey)

	_, err := fromUserDoc(&mongoUser{ID: 1, Password: "garbage"}, cipher)
	if !errors.Is(err, security.ErrDecoding) {
		t.Fatalf("expected ErrDecoding, got %v", err)
	}
}

func TestTodoDoc_RoundTrip(t *testing.T) {
	desc := "eggs"
	in := &domain.Todo{ID: 2, Title: "shop", Description: &desc, Finished: true, UserID: 9}

	out := fromTodoDoc(toTodoDoc(in))
	if out.ID != in.ID || out.Title != in.Title || *out.Description != desc || !out.Finished || out.UserID != 9 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
