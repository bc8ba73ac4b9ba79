package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/logger"
	"github.com/collabtodo/core/internal/ports"
)

// WorkspaceService handles workspace and membership operations
type WorkspaceService struct {
	workspaceRepo    ports.WorkspaceRepository
	userRepo         ports.UserRepository
	notificationRepo ports.NotificationRepository
	logger           *logger.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaceRepo ports.WorkspaceRepository, userRepo ports.UserRepository, notificationRepo ports.NotificationRepository, logger *logger.Logger) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo:    workspaceRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreateWorkspace creates a workspace with the creator as its sole admin
// member.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, req ports.CreateWorkspaceRequest) (*entities.Workspace, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidWorkspaceType, req.Type)
	}

	creator, err := s.userRepo.GetByID(ctx, req.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("creator not found: %w", err)
	}

	workspace := &entities.Workspace{
		ID:        uuid.New(),
		Name:      req.Name,
		Type:      req.Type,
		CreatedBy: creator.ID,
		Members: []entities.Member{{
			UserID:      creator.ID,
			Role:        entities.MemberRoleAdmin,
			DisplayName: creator.DisplayName,
			JoinedAt:    time.Now(),
		}},
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.logger.Info("Workspace created", "workspace_id", workspace.ID, "type", workspace.Type, "creator_id", creator.ID)

	return workspace, nil
}

// GetWorkspace retrieves a workspace the user belongs to.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, id, userID uuid.UUID) (*entities.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}

	if !workspace.HasMember(userID) {
		return nil, entities.ErrNotAMember
	}

	return workspace, nil
}

// GetUserWorkspaces retrieves all workspaces the user is a member of.
func (s *WorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error) {
	workspaces, err := s.workspaceRepo.GetByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	return workspaces, nil
}

// InviteMembers validates the batch against the workspace's member cap and
// appends one member per email at role=member. Repeated emails collapse to a
// single invite before the cap check. Invitees must already have an account;
// every email must resolve before any member is written, and the member rows
// go in as one atomic batch, so a bad entry rejects the whole batch and a
// storage failure leaves nothing behind. Invitation notifications are written
// after the batch commits; membership is authoritative, so a failed notice is
// logged rather than surfaced.
func (s *WorkspaceService) InviteMembers(ctx context.Context, workspaceID, actorID uuid.UUID, emails []string) (*ports.InviteResult, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}

	if !workspace.IsAdmin(actorID) {
		return nil, entities.ErrNotAnAdmin
	}

	seen := make(map[string]struct{}, len(emails))
	unique := make([]string, 0, len(emails))
	for _, email := range emails {
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		unique = append(unique, email)
	}

	remaining, err := workspace.CheckInvite(unique)
	if err != nil {
		return &ports.InviteResult{RemainingSlots: remaining}, err
	}

	invitees := make([]*entities.User, 0, len(unique))
	resolved := make(map[uuid.UUID]struct{}, len(unique))
	for _, email := range unique {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("invitee %s: %w", email, err)
		}
		if workspace.HasMember(user.ID) {
			return nil, fmt.Errorf("user %s is already a member", email)
		}
		// Distinct emails can still resolve to one account.
		if _, ok := resolved[user.ID]; ok {
			continue
		}
		resolved[user.ID] = struct{}{}
		invitees = append(invitees, user)
	}

	now := time.Now()
	members := make([]entities.Member, 0, len(invitees))
	invitedIDs := make([]uuid.UUID, 0, len(invitees))
	for _, user := range invitees {
		members = append(members, entities.Member{
			WorkspaceID: workspace.ID,
			UserID:      user.ID,
			Role:        entities.MemberRoleMember,
			DisplayName: user.DisplayName,
			JoinedAt:    now,
		})
		invitedIDs = append(invitedIDs, user.ID)
	}

	if err := s.workspaceRepo.AddMembers(ctx, members); err != nil {
		return nil, fmt.Errorf("failed to add members: %w", err)
	}

	for _, user := range invitees {
		notification := &entities.Notification{
			ID:        uuid.New(),
			UserID:    user.ID,
			Type:      entities.NotificationWorkspaceInvitation,
			RelatedID: workspace.ID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.Errorw("Invitation notification failed",
				"error", err, "workspace_id", workspace.ID, "user_id", user.ID)
		}
	}

	s.logger.Info("Members invited",
		"workspace_id", workspace.ID,
		"actor_id", actorID,
		"invited", len(invitedIDs),
	)

	return &ports.InviteResult{
		InvitedUserIDs: invitedIDs,
		RemainingSlots: remaining - len(invitedIDs),
	}, nil
}
