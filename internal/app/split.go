package app

import (
	"context"

	"tenant-api/internal/db/repository"
	"tenant-api/internal/domain"
)

// splitUserRepo routes reads through the embedded read-pool repo and writes
// through the write-pool repo, matching the SQLite WAL pool split.
type splitUserRepo struct {
	*repository.UserRepo
	writes *repository.UserRepo
}

func (r *splitUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	return r.writes.Upsert(ctx, u)
}

func (r *splitUserRepo) SoftDelete(ctx context.Context, id string) error {
	return r.writes.SoftDelete(ctx, id)
}

type splitGroupRepo struct {
	*repository.GroupRepo
	writes *repository.GroupRepo
}

func (r *splitGroupRepo) Upsert(ctx context.Context, g *domain.Group) error {
	return r.writes.Upsert(ctx, g)
}

func (r *splitGroupRepo) SoftDelete(ctx context.Context, id string) error {
	return r.writes.SoftDelete(ctx, id)
}

var (
	_ domain.UserRepository  = (*splitUserRepo)(nil)
	_ domain.GroupRepository = (*splitGroupRepo)(nil)
)
