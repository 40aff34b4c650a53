package service

import (
	"context"
	"errors"

	"tenant-api/internal/domain"
)

// GroupService provides group read and write operations.
type GroupService struct {
	repo      domain.GroupRepository
	directory domain.DirectoryClient
}

// NewGroupService creates a new GroupService.
func NewGroupService(repo domain.GroupRepository, directory domain.DirectoryClient) *GroupService {
	return &GroupService{repo: repo, directory: directory}
}

// List returns one page of cached groups and, when more rows remain, the
// cursor of the last returned row.
func (s *GroupService) List(ctx context.Context, page domain.PageRequest) ([]domain.Group, *domain.Cursor, error) {
	if err := page.Validate(); err != nil {
		return nil, nil, err
	}
	return s.repo.ListPage(ctx, page)
}

// Get returns a cached group by ID.
func (s *GroupService) Get(ctx context.Context, id string) (*domain.Group, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the request and creates the group upstream. Groups are
// created as unified mail-enabled groups.
func (s *GroupService) Create(ctx context.Context, req domain.CreateGroupRequest) (*domain.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.directory.CreateGroup(ctx, domain.NewDirectoryGroup{
		DisplayName:  req.DisplayName,
		Description:  req.Description,
		MailNickname: req.MailNickname,
	})
}

// Update validates the request and patches the group upstream.
func (s *GroupService) Update(ctx context.Context, id string, req domain.UpdateGroupRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.directory.UpdateGroup(ctx, id, domain.GroupUpdate{
		DisplayName:  req.DisplayName,
		Description:  req.Description,
		MailNickname: req.MailNickname,
	})
}

// Delete removes the group upstream, then soft-deletes the local row.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if err := s.directory.DeleteGroup(ctx, id); err != nil {
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
