package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"
	"lms-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Get(ctx context.Context, actor *Actor, userID string) (*response.UserResponse, error)
	Update(ctx context.Context, actor *Actor, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actor *Actor, userID string) error
	SetStatus(ctx context.Context, actor *Actor, userID string, status entity.UserStatus) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, actor *Actor, userID string, req *request.ChangePasswordRequest) error
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
		now:   time.Now,
	}
}

func (s *userService) List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	req = req.Normalize()

	users, err := s.users.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("failed to get users")
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users")
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.PerPage, total), nil
}

func (s *userService) Get(ctx context.Context, actor *Actor, userID string) (*response.UserResponse, error) {
	user, err := s.load(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, actor *Actor, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := s.load(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	if (req.Role != nil || req.Department != nil) && !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Only admins can change role or department")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user")
	}

	s.log.Info("User updated",
		zap.String("user_id", userID),
		zap.String("by", actor.ID.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, actor *Actor, userID string) error {
	if !actor.IsAdmin() {
		return newError(ErrForbidden, "Access denied")
	}

	id, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if id == actor.ID {
		return newError(ErrValidation, "You cannot delete your own account")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "User not found")
		}
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to delete user")
	}

	s.log.Info("User deleted", zap.String("user_id", userID), zap.String("by", actor.ID.String()))
	return nil
}

// SetStatus blocks or unblocks an account. Admin accounts cannot be blocked.
func (s *userService) SetStatus(ctx context.Context, actor *Actor, userID string, status entity.UserStatus) (*response.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Access denied")
	}

	user, err := s.load(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	if status == entity.UserStatusBlocked && user.IsAdmin() {
		return nil, newError(ErrForbidden, "Cannot block admin users")
	}

	if err := s.users.UpdateStatus(ctx, user.ID, status); err != nil {
		s.log.Error("Failed to update user status", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user status")
	}
	user.Status = status

	s.log.Info("User status changed",
		zap.String("user_id", userID),
		zap.String("status", string(status)),
		zap.String("by", actor.ID.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ChangePassword lets a user replace their own password after proving the
// current one. Nobody, admins included, may change another account's password.
func (s *userService) ChangePassword(ctx context.Context, actor *Actor, userID string, req *request.ChangePasswordRequest) error {
	if actor == nil {
		return newError(ErrUnauthorized, "Authentication required")
	}

	id, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if id != actor.ID {
		return newError(ErrForbidden, "Access denied")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to get user")
	}
	if user == nil {
		return newError(ErrNotFound, "User not found")
	}

	if user.PasswordHash == nil || !utils.CheckPasswordHash(req.CurrentPassword, *user.PasswordHash) {
		return newError(ErrValidation, "Current password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to update password")
	}

	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "User not found")
		}
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to update password")
	}

	s.log.Info("Password changed", zap.String("user_id", userID))
	return nil
}

// load fetches a user the actor may see: themselves, or anyone for admins.
func (s *userService) load(ctx context.Context, actor *Actor, userID string) (*entity.User, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if id != actor.ID && !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Access denied")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user")
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	return user, nil
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newError(ErrValidation, "Invalid %s ID", what)
	}
	return id, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
