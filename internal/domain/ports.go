package domain

import "context"

// UserRepository is the local cache store for users.
type UserRepository interface {
	// Upsert inserts the user or overwrites its mutable fields and
	// creation timestamp, keyed by ID. The soft-delete flag of an
	// existing row is left untouched.
	Upsert(ctx context.Context, u *User) error
	// GetByID returns a non-deleted user, or a NotFoundError.
	GetByID(ctx context.Context, id string) (*User, error)
	// ListPage returns up to PageSize non-deleted users ordered by
	// (created_at, id) after the request cursor, plus the cursor of the
	// last returned row when more rows remain.
	ListPage(ctx context.Context, page PageRequest) ([]User, *Cursor, error)
	// SoftDelete marks the row deleted; a missing or already-deleted row
	// is a NotFoundError.
	SoftDelete(ctx context.Context, id string) error
}

// GroupRepository is the local cache store for groups.
type GroupRepository interface {
	Upsert(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	ListPage(ctx context.Context, page PageRequest) ([]Group, *Cursor, error)
	SoftDelete(ctx context.Context, id string) error
}

// UserPager iterates the upstream user collection one page at a time.
// NextPage returns the next batch and whether another page follows.
type UserPager interface {
	NextPage(ctx context.Context) ([]User, bool, error)
}

// GroupPager iterates the upstream group collection one page at a time.
type GroupPager interface {
	NextPage(ctx context.Context) ([]Group, bool, error)
}

// NewDirectoryUser is the upstream representation of a user to create.
type NewDirectoryUser struct {
	DisplayName       string
	UserPrincipalName string
	MailNickname      string
	// Password is a synthesized one-time password; the account is marked
	// as requiring a password change at first sign-in.
	Password string
}

// UserUpdate carries the mutable user fields for a partial upstream update.
type UserUpdate struct {
	DisplayName       string
	UserPrincipalName string
	MailNickname      string
}

// NewDirectoryGroup is the upstream representation of a group to create.
type NewDirectoryGroup struct {
	DisplayName  string
	Description  string
	MailNickname string
}

// GroupUpdate carries the mutable group fields for a partial upstream update.
type GroupUpdate struct {
	DisplayName  string
	Description  string
	MailNickname string
}

// DirectoryClient is the port to the upstream directory service. List calls
// are read-only; the sync job never mutates upstream state.
type DirectoryClient interface {
	ListUsers() UserPager
	CreateUser(ctx context.Context, u NewDirectoryUser) (*User, error)
	UpdateUser(ctx context.Context, id string, u UserUpdate) error
	DeleteUser(ctx context.Context, id string) error

	ListGroups() GroupPager
	CreateGroup(ctx context.Context, g NewDirectoryGroup) (*Group, error)
	UpdateGroup(ctx context.Context, id string, g GroupUpdate) error
	DeleteGroup(ctx context.Context, id string) error
}
