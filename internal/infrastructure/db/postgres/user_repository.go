package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

const userColumns = `id, first_name, last_name, username, email, password, is_active, role`

// UserRepository stores users in the users table. The password column holds
// cipher output only.
type UserRepository struct {
	db     DBTX
	cipher ports.PasswordCipher
}

func NewUserRepository(db DBTX, cipher ports.PasswordCipher) *UserRepository {
	return &UserRepository{db: db, cipher: cipher}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	encrypted, err := r.cipher.Encrypt(user.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}

	query :=
		`INSERT INTO users (first_name, last_name, username, email, password, is_active, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	created := *user
	err = r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Username, user.Email,
		string(encrypted), user.IsActive, string(user.Role),
	).Scan(&created.ID)
	if err != nil {
		if isIntegrityViolation(err) {
			return nil, fmt.Errorf("insert user: %w", domain.ErrUserExists)
		}
		return nil, storeError("insert user", err)
	}

	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("list users", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list users", err)
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, password string) error {
	encrypted, err := r.cipher.Encrypt(password)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $1 WHERE username = $2`,
		string(encrypted), username,
	)
	if err != nil {
		return storeError("update password", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError("update password", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser maps one users row and decrypts its password.
func (r *UserRepository) scanUser(row rowScanner) (*domain.User, error) {
	var (
		u        domain.User
		password string
		role     string
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &password, &u.IsActive, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storeError("scan user", err)
	}

	u.Password, err = r.cipher.Decrypt([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("decrypt password of user %d: %w", u.ID, err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
