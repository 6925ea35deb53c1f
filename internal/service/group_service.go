// Package service implements the ledger operations on top of storage.
//
// Services are stateless validators and transformers: every public method
// performs all of its validation before the single store write, so a failed
// call never leaves partial state behind.
package service

import (
	"context"
	"log/slog"
	"time"

	apperr "github.com/parthgupta9/splitr/internal/errors"
	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/storage"
)

// GroupService creates and reads groups.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group owned by the caller.
//
// The member set is the union of memberIDs and the caller; duplicates
// collapse. The caller is always an admin member, everyone else joins as a
// regular member, and all members share the group's creation time as their
// join time. Every member ID is resolved before the insert, so an unknown
// user fails the whole call with nothing written.
func (s *GroupService) CreateGroup(ctx context.Context, callerID, name, description string, memberIDs []string) (*models.Group, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}
	if name == "" {
		return nil, apperr.Invalid("group name must not be empty")
	}

	// Unique member IDs, caller included.
	unique := make([]string, 0, len(memberIDs)+1)
	seen := map[string]bool{callerID: true}
	unique = append(unique, callerID)
	for _, id := range memberIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	users, err := s.store.GetUsersByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, id := range unique {
		if users[id] == nil {
			return nil, apperr.NotFound("user", id)
		}
	}

	now := time.Now().UnixMilli()
	group := &models.Group{
		Name:        name,
		Description: description,
		CreatedBy:   callerID,
		CreatedAt:   now,
	}
	for _, id := range unique {
		role := models.RoleMember
		if id == callerID {
			role = models.RoleAdmin
		}
		group.Members = append(group.Members, models.GroupMember{
			UserID:   id,
			Role:     role,
			JoinedAt: now,
		})
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "members", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, callerID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.NotFound("group", groupID)
	}
	if !group.HasMember(callerID) {
		return nil, apperr.New(apperr.CodePermissionDenied, "caller is not a member of group %s", groupID)
	}
	return group, nil
}

// ListGroups retrieves every group the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, callerID string) ([]*models.Group, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "no caller identity")
	}
	return s.store.ListGroupsByMember(ctx, callerID)
}
