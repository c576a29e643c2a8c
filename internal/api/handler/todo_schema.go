package handler

type createTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=40"`
	Description *string `json:"description"`
}

type updateTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=40"`
	Description *string `json:"description"`
	Finished    bool    `json:"finished"`
}

// todoResponse is returned on creation and includes the owner id.
type todoResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Finished    bool    `json:"finished"`
	User        int64   `json:"user"`
}

type todoItemResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Finished    bool    `json:"finished"`
}
