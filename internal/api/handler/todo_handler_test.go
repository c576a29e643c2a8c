package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

func strptr(s string) *string { return &s }

func TestTodoHandler_Create(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{
		createFn: func(_ context.Context, actor *domain.User, in ports.CreateTodoInput) (*domain.Todo, error) {
			if actor.Username != "alice" || in.Title != "milk" || in.Description == nil || *in.Description != "2l" {
				t.Fatalf("unexpected call: %+v %+v", actor, in)
			}
			return &domain.Todo{ID: 3, Title: in.Title, Description: in.Description, UserID: actor.ID}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/todos/", echo.MIMEApplicationJSON,
		strings.NewReader(`{"title":"milk","description":"2l"}`))
	if err := handler.Create(withUser(c, alice())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(3) || resp["user"] != float64(1) || resp["finished"] != false {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTodoHandler_Create_MissingTitle(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{})

	c, _ := newTestContext(http.MethodPost, "/todos/", echo.MIMEApplicationJSON, strings.NewReader(`{"description":"x"}`))
	var ve *ValidationError
	if err := handler.Create(withUser(c, alice())); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTodoHandler_List(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{
		listFn: func(_ context.Context, actor *domain.User) ([]*domain.Todo, error) {
			return []*domain.Todo{{ID: 1, Title: "a", UserID: actor.ID}, {ID: 2, Title: "b", Description: strptr("d"), UserID: actor.ID}}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/todos/", "", nil)
	if err := handler.List(withUser(c, alice())); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(resp))
	}
	if _, ok := resp[0]["user"]; ok {
		t.Fatalf("list items must not carry the owner")
	}
	if resp[0]["description"] != nil || resp[1]["description"] != "d" {
		t.Fatalf("unexpected descriptions: %+v", resp)
	}
}

func TestTodoHandler_List_Empty(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{
		listFn: func(context.Context, *domain.User) ([]*domain.Todo, error) { return nil, nil },
	})

	c, rec := newTestContext(http.MethodGet, "/todos/", "", nil)
	if err := handler.List(withUser(c, alice())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestTodoHandler_Get(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{
		getFn: func(_ context.Context, _ *domain.User, id int64) (*domain.Todo, error) {
			if id != 9 {
				return nil, domain.ErrTodoNotFound
			}
			return &domain.Todo{ID: 9, Title: "t"}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/todos/9/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := handler.Get(withUser(c, alice())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodGet, "/todos/10/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("10")
	if err := handler.Get(withUser(c, alice())); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoHandler_BadID(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{})

	for _, id := range []string{"abc", "0", "-1"} {
		c, _ := newTestContext(http.MethodGet, "/todos/"+id+"/", "", nil)
		c.SetParamNames("id")
		c.SetParamValues(id)
		var ve *ValidationError
		if err := handler.Get(withUser(c, alice())); !errors.As(err, &ve) {
			t.Fatalf("id %q: expected ValidationError, got %v", id, err)
		}
	}
}

func TestTodoHandler_Update(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{
		updateFn: func(_ context.Context, _ *domain.User, id int64, in ports.UpdateTodoInput) (*domain.Todo, error) {
			if !in.Finished || in.Description != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Todo{ID: id, Title: in.Title, Finished: in.Finished}, nil
		},
	})

	c, rec := newTestContext(http.MethodPut, "/todos/4/", echo.MIMEApplicationJSON,
		strings.NewReader(`{"title":"done","description":null,"finished":true}`))
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := handler.Update(withUser(c, alice())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"finished":true`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestTodoHandler_Delete(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{
		deleteFn: func(_ context.Context, _ *domain.User, id int64) error {
			if id == 5 {
				return domain.ErrNotAuthorized
			}
			return nil
		},
	})

	c, rec := newTestContext(http.MethodDelete, "/todos/4/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := handler.Delete(withUser(c, alice())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodDelete, "/todos/5/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := handler.Delete(withUser(c, alice())); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}
