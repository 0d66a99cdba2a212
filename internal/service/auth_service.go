package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// AuthService provides authentication and account settings services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.User, error)
	UpdateNotifications(ctx context.Context, userID string, req model.UpdateNotificationsRequest) (*model.User, error)
	UpdatePrivacy(ctx context.Context, userID string, req model.UpdatePrivacyRequest) (*model.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account with default settings
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hashedPassword,
		Role:          model.RoleUser,
		Notifications: model.DefaultNotificationSettings(),
		Privacy:       model.DefaultPrivacySettings(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	utils.Logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login authenticates a user and returns a signed token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// GetUserByID returns the user's profile including settings
func (s *authService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial name/email update
func (s *authService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.User, error) {
	if req.Email != nil {
		existing, err := s.userRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrEmailTaken
		}
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateNotifications merges the partial toggles over the stored settings
func (s *authService) UpdateNotifications(ctx context.Context, userID string, req model.UpdateNotificationsRequest) (*model.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := user.Notifications
	if req.OrderUpdates != nil {
		settings.OrderUpdates = *req.OrderUpdates
	}
	if req.Promotions != nil {
		settings.Promotions = *req.Promotions
	}
	if req.Newsletter != nil {
		settings.Newsletter = *req.Newsletter
	}
	if req.SecurityAlerts != nil {
		settings.SecurityAlerts = *req.SecurityAlerts
	}

	if err := s.userRepo.UpdateNotifications(ctx, userID, settings); err != nil {
		return nil, fmt.Errorf("failed to save notification settings: %w", err)
	}
	user.Notifications = settings
	return user, nil
}

// UpdatePrivacy merges the partial privacy fields over the stored settings
func (s *authService) UpdatePrivacy(ctx context.Context, userID string, req model.UpdatePrivacyRequest) (*model.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := user.Privacy
	if req.ProfileVisibility != nil {
		settings.ProfileVisibility = *req.ProfileVisibility
	}
	if req.DataCollection != nil {
		settings.DataCollection = *req.DataCollection
	}
	if req.ThirdPartySharing != nil {
		settings.ThirdPartySharing = *req.ThirdPartySharing
	}
	if req.Analytics != nil {
		settings.Analytics = *req.Analytics
	}

	if err := s.userRepo.UpdatePrivacy(ctx, userID, settings); err != nil {
		return nil, fmt.Errorf("failed to save privacy settings: %w", err)
	}
	user.Privacy = settings
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	utils.Logger.Info("password changed", zap.String("user_id", userID))
	return nil
}
