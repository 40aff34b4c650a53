package service

import (
	"context"

	"tenant-api/internal/domain"
)

// In-memory fakes for the cache and upstream ports. Call counters let tests
// assert which half of a write path was reached.

type fakeUserRepo struct {
	users       map[string]domain.User
	softDeletes int
	deleteErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, domain.ErrNotFound("user %s not found", id)
	}
	return &u, nil
}

func (r *fakeUserRepo) ListPage(ctx context.Context, page domain.PageRequest) ([]domain.User, *domain.Cursor, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if !u.IsDeleted {
			out = append(out, u)
		}
	}
	return out, nil, nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id string) error {
	r.softDeletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return domain.ErrNotFound("user %s not found", id)
	}
	u.IsDeleted = true
	r.users[id] = u
	return nil
}

type fakeGroupRepo struct {
	groups      map[string]domain.Group
	softDeletes int
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[string]domain.Group)}
}

func (r *fakeGroupRepo) Upsert(ctx context.Context, g *domain.Group) error {
	r.groups[g.ID] = *g
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok || g.IsDeleted {
		return nil, domain.ErrNotFound("group %s not found", id)
	}
	return &g, nil
}

func (r *fakeGroupRepo) ListPage(ctx context.Context, page domain.PageRequest) ([]domain.Group, *domain.Cursor, error) {
	out := make([]domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		if !g.IsDeleted {
			out = append(out, g)
		}
	}
	return out, nil, nil
}

func (r *fakeGroupRepo) SoftDelete(ctx context.Context, id string) error {
	r.softDeletes++
	g, ok := r.groups[id]
	if !ok || g.IsDeleted {
		return domain.ErrNotFound("group %s not found", id)
	}
	g.IsDeleted = true
	r.groups[id] = g
	return nil
}

type fakeDirectory struct {
	createUserCalls  int
	updateUserCalls  int
	deleteUserCalls  int
	createGroupCalls int
	updateGroupCalls int
	deleteGroupCalls int

	lastNewUser  domain.NewDirectoryUser
	lastNewGroup domain.NewDirectoryGroup

	err error
}

func (d *fakeDirectory) ListUsers() domain.UserPager   { return nil }
func (d *fakeDirectory) ListGroups() domain.GroupPager { return nil }

func (d *fakeDirectory) CreateUser(ctx context.Context, u domain.NewDirectoryUser) (*domain.User, error) {
	d.createUserCalls++
	d.lastNewUser = u
	if d.err != nil {
		return nil, d.err
	}
	return &domain.User{
		ID:                "upstream-user-1",
		DisplayName:       u.DisplayName,
		UserPrincipalName: u.UserPrincipalName,
		MailNickname:      u.MailNickname,
	}, nil
}

func (d *fakeDirectory) UpdateUser(ctx context.Context, id string, u domain.UserUpdate) error {
	d.updateUserCalls++
	return d.err
}

func (d *fakeDirectory) DeleteUser(ctx context.Context, id string) error {
	d.deleteUserCalls++
	return d.err
}

func (d *fakeDirectory) CreateGroup(ctx context.Context, g domain.NewDirectoryGroup) (*domain.Group, error) {
	d.createGroupCalls++
	d.lastNewGroup = g
	if d.err != nil {
		return nil, d.err
	}
	return &domain.Group{
		ID:           "upstream-group-1",
		DisplayName:  g.DisplayName,
		Description:  g.Description,
		MailNickname: g.MailNickname,
	}, nil
}

func (d *fakeDirectory) UpdateGroup(ctx context.Context, id string, g domain.GroupUpdate) error {
	d.updateGroupCalls++
	return d.err
}

func (d *fakeDirectory) DeleteGroup(ctx context.Context, id string) error {
	d.deleteGroupCalls++
	return d.err
}

var (
	_ domain.UserRepository  = (*fakeUserRepo)(nil)
	_ domain.GroupRepository = (*fakeGroupRepo)(nil)
	_ domain.DirectoryClient = (*fakeDirectory)(nil)
)
