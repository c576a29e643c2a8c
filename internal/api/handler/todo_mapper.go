package handler

import "github.com/todoapp/todo-service/internal/core/domain"

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Finished:    t.Finished,
		User:        t.UserID,
	}
}

func toTodoItemResponse(t *domain.Todo) todoItemResponse {
	return todoItemResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Finished:    t.Finished,
	}
}

func toTodoItemResponses(todos []*domain.Todo) []todoItemResponse {
	out := make([]todoItemResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoItemResponse(t))
	}
	return out
}
