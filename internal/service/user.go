// Package service contains the business logic between the HTTP handlers and
// the cache/upstream ports. Reads come from the local cache; writes are
// proxied to the upstream directory service.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tenant-api/internal/domain"
)

// UserService provides user read and write operations.
type UserService struct {
	repo      domain.UserRepository
	directory domain.DirectoryClient
}

// NewUserService creates a new UserService.
func NewUserService(repo domain.UserRepository, directory domain.DirectoryClient) *UserService {
	return &UserService{repo: repo, directory: directory}
}

// List returns one page of cached users and, when more rows remain, the
// cursor of the last returned row.
func (s *UserService) List(ctx context.Context, page domain.PageRequest) ([]domain.User, *domain.Cursor, error) {
	if err := page.Validate(); err != nil {
		return nil, nil, err
	}
	return s.repo.ListPage(ctx, page)
}

// Get returns a cached user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the request and creates the user upstream with a random
// one-time password that must be changed at first sign-in. The returned user
// is the upstream's view; the cache catches up on the next sync pass.
func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.directory.CreateUser(ctx, domain.NewDirectoryUser{
		DisplayName:       req.DisplayName,
		UserPrincipalName: req.UserPrincipalName,
		MailNickname:      req.MailNickname,
		Password:          uuid.NewString(),
	})
}

// Update validates the request and patches the user upstream. The cache is
// left untouched until the next sync pass.
func (s *UserService) Update(ctx context.Context, id string, req domain.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.directory.UpdateUser(ctx, id, domain.UserUpdate{
		DisplayName:       req.DisplayName,
		UserPrincipalName: req.UserPrincipalName,
		MailNickname:      req.MailNickname,
	})
}

// Delete removes the user upstream, then soft-deletes the local row so the
// deletion is visible to reads immediately. A user the cache has never seen
// is still a successful delete.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.directory.DeleteUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	return nil
}
