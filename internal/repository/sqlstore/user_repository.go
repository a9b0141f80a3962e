package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

const userColumns = `id, nome_completo, email, telefone, senha, role, created_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	user.CreatedAt = time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO users (nome_completo, email, telefone, senha, role, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`),
		user.FullName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("email %w", domain.ErrConflict)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch repository.Patch) (bool, error) {
	return applyUpdate(ctx, r.db, usersTable, id, patch)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.db, usersTable, id)
}

func (r *UserRepository) Stats(ctx context.Context) (domain.UserStats, error) {
	var stats domain.UserStats
	if err := r.db.GetContext(ctx, &stats.Total, `SELECT COUNT(*) FROM users`); err != nil {
		return stats, fmt.Errorf("count users: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.Students,
		r.db.Rebind(`SELECT COUNT(*) FROM users WHERE role <> ?`), domain.RoleAdmin); err != nil {
		return stats, fmt.Errorf("count students: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.Admins,
		r.db.Rebind(`SELECT COUNT(*) FROM users WHERE role = ?`), domain.RoleAdmin); err != nil {
		return stats, fmt.Errorf("count admins: %w", err)
	}
	return stats, nil
}
