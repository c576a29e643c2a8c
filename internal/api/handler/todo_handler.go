package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/ports"
)

// TodoHandler handles the personal todo endpoints. Every route runs behind
// the auth, active and role middleware chain.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// Create adds a todo owned by the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo"
// @Success      201   {object}  todoResponse
// @Failure      401   {object}  detailResponse
// @Failure      422   {object}  detailResponse
// @Router       /todos/ [post]
func (h *TodoHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), actor, ports.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTodoResponse(todo))
}

// List returns the caller's todos.
//
// @Summary      List own todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoItemResponse
// @Failure      401  {object}  detailResponse
// @Router       /todos/ [get]
func (h *TodoHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTodoItemResponses(todos))
}

// Get returns one todo. Admins may read any todo.
//
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  todoItemResponse
// @Failure      401  {object}  detailResponse
// @Failure      404  {object}  detailResponse
// @Router       /todos/{id}/ [get]
func (h *TodoHandler) Get(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTodoItemResponse(todo))
}

// Update replaces the fields of a todo owned by the caller.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Todo ID"
// @Param        body  body      updateTodoRequest  true  "Todo"
// @Success      200   {object}  todoItemResponse
// @Failure      401   {object}  detailResponse
// @Failure      404   {object}  detailResponse
// @Failure      422   {object}  detailResponse
// @Router       /todos/{id}/ [put]
func (h *TodoHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.service.Update(c.Request().Context(), actor, id, ports.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Finished:    req.Finished,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTodoItemResponse(todo))
}

// Delete removes a todo owned by the caller.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id   path  int  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  detailResponse
// @Failure      404  {object}  detailResponse
// @Router       /todos/{id}/ [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func todoID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("id must be a positive integer")
	}
	return id, nil
}
