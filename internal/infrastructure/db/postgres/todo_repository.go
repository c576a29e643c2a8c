package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/todoapp/todo-service/internal/core/domain"
)

type TodoRepository struct {
	db DBTX
}

func NewTodoRepository(db DBTX) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query :=
		`INSERT INTO todos (title, description, finished, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	created := *todo
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, nullString(todo.Description), todo.Finished, todo.UserID,
	).Scan(&created.ID)
	if err != nil {
		return nil, storeError("insert todo", err)
	}
	return &created, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	query := `SELECT id, title, description, finished, user_id FROM todos WHERE id = $1`

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, storeError("find todo", err)
	}
	return todo, nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Todo, error) {
	query := `SELECT id, title, description, finished, user_id FROM todos WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeError("list todos", err)
	}
	defer rows.Close()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, storeError("scan todo", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list todos", err)
	}
	return todos, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = $1, description = $2, finished = $3 WHERE id = $4`,
		todo.Title, nullString(todo.Description), todo.Finished, todo.ID,
	)
	return affectedOne(res, err, "update todo")
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return affectedOne(res, err, "delete todo")
}

func affectedOne(res sql.Result, err error, op string) error {
	if err != nil {
		return storeError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError(op, err)
	}
	if n == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var (
		t    domain.Todo
		desc sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Finished, &t.UserID); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
