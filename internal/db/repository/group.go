package repository

import (
	"context"
	"database/sql"
	"time"

	"tenant-api/internal/domain"
)

type GroupRepo struct {
	db *sql.DB
}

func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// Upsert inserts or refreshes a cached group by ID, preserving the
// soft-delete flag of an existing row.
func (r *GroupRepo) Upsert(ctx context.Context, g *domain.Group) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO groups (id, display_name, description, mail_nickname, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			description = excluded.description,
			mail_nickname = excluded.mail_nickname,
			created_at = excluded.created_at`,
		g.ID, g.DisplayName, g.Description, g.MailNickname, g.CreatedAt.UnixMilli())
	return mapDBError(err)
}

func (r *GroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, display_name, description, mail_nickname, created_at, is_deleted
		FROM groups WHERE id = ? AND is_deleted = 0`, id)

	g, err := scanGroup(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound("group %q not found", id)
		}
		return nil, mapDBError(err)
	}
	return g, nil
}

func (r *GroupRepo) ListPage(ctx context.Context, page domain.PageRequest) ([]domain.Group, *domain.Cursor, error) {
	query := `
		SELECT id, display_name, description, mail_nickname, created_at, is_deleted
		FROM groups WHERE is_deleted = 0`
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

	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(groups) > page.PageSize {
		groups = groups[:page.PageSize]
		last := groups[len(groups)-1]
		next = &domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return groups, next, nil
}

func (r *GroupRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE groups SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("group %q not found", id)
	}
	return nil
}

func scanGroup(s scanner) (*domain.Group, error) {
	var g domain.Group
	var createdAt, isDeleted int64
	if err := s.Scan(&g.ID, &g.DisplayName, &g.Description, &g.MailNickname, &createdAt, &isDeleted); err != nil {
		return nil, err
	}
	g.CreatedAt = time.UnixMilli(createdAt).UTC()
	g.IsDeleted = isDeleted != 0
	return &g, nil
}

var _ domain.GroupRepository = (*GroupRepo)(nil)
