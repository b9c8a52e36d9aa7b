package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/repository"
	"github.com/yukikurage/blog-api/internal/validator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles account related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// Register validates a sign-up form and creates the user. A uniqueness race
// lost at insert time is reported as the same field error the validator
// would have produced.
func (s *AuthService) Register(ctx context.Context, input validator.RegistrationInput) (*models.User, error) {
	input, err := validator.ValidateRegistration(ctx, input, s.userRepo)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
	}
	if input.Email != "" {
		user.Email = &input.Email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserError(ctx, "registration", user.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// duplicateUserError works out which unique value a failed write collided on.
func (s *AuthService) duplicateUserError(ctx context.Context, form, username string) error {
	verr := &validator.ValidationError{Form: form}

	taken := false
	if username != "" {
		var err error
		taken, err = s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
	}

	if taken {
		verr.Add("username", validator.CodeDuplicateUsername, "Username is already taken.")
	} else {
		verr.Add("email", validator.CodeDuplicateEmail, "Email is already registered.")
	}
	return verr
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ChangePassword replaces the user's password after checking the old one.
// The stored hash is untouched when validation fails.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, input validator.PasswordChangeInput) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	input, err = validator.ValidatePasswordChange(input, user.PasswordHash)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// UpdateProfile saves the user's email and names.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint64, input validator.ProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	input, err = validator.ValidateProfile(ctx, userID, input, s.userRepo)
	if err != nil {
		return nil, err
	}

	user.Email = nil
	if input.Email != "" {
		user.Email = &input.Email
	}
	user.FirstName = input.FirstName
	user.LastName = input.LastName

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserError(ctx, "profile", "")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
