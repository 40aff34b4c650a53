package repository

import (
	"context"
	"database/sql"
	"time"

	"tenant-api/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserts or refreshes a cached user by ID. The soft-delete flag of
// an existing row is preserved so a sync pass never resurrects a deleted row.
func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, user_principal_name, mail_nickname, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			user_principal_name = excluded.user_principal_name,
			mail_nickname = excluded.mail_nickname,
			created_at = excluded.created_at`,
		u.ID, u.DisplayName, u.UserPrincipalName, u.MailNickname, u.CreatedAt.UnixMilli())
	return mapDBError(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, display_name, user_principal_name, mail_nickname, created_at, is_deleted
		FROM users WHERE id = ? AND is_deleted = 0`, id)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound("user %q not found", id)
		}
		return nil, mapDBError(err)
	}
	return u, nil
}

// ListPage returns one keyset page of non-deleted users ordered by
// (created_at, id). It fetches one extra row to detect whether a next page
// exists; the cursor of the last returned row is handed back when it does.
func (r *UserRepo) ListPage(ctx context.Context, page domain.PageRequest) ([]domain.User, *domain.Cursor, error) {
	query := `
		SELECT id, display_name, user_principal_name, mail_nickname, created_at, is_deleted
		FROM users WHERE is_deleted = 0`
	args := []any{}

	if c := page.Cursor; c != nil {
		query += ` AND (created_at > ? OR (created_at = ? AND id > ?))`
		ms := c.CreatedAt.UnixMilli()
		args = append(args, ms, ms, c.ID)
	}
	query += ` ORDER BY created_at, id LIMIT ?`
	args = append(args, page.PageSize+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, mapDBError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(users) > page.PageSize {
		users = users[:page.PageSize]
		last := users[len(users)-1]
		next = &domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return users, next, nil
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("user %q not found", id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var createdAt, isDeleted int64
	if err := s.Scan(&u.ID, &u.DisplayName, &u.UserPrincipalName, &u.MailNickname, &createdAt, &isDeleted); err != nil {
		return nil, err
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	u.IsDeleted = isDeleted != 0
	return &u, nil
}

// Compile-time check.
var _ domain.UserRepository = (*UserRepo)(nil)
