package validator

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/blog-api/internal/constants"
)

// UserLookup answers the existence checks needed by account forms.
type UserLookup interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	// EmailExists reports whether email belongs to a user other than excludeID.
	EmailExists(ctx context.Context, email string, excludeID uint64) (bool, error)
}

type RegistrationInput struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm"`
}

// ValidateRegistration checks a sign-up form. On success the username is
// trimmed and the email trimmed and lower-cased.
func ValidateRegistration(ctx context.Context, in RegistrationInput, users UserLookup) (RegistrationInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	verr := newValidationError("registration")
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Username, required, maxLength(constants.MaxUsernameLength)),
		validation.Field(&in.Email, is.EmailFormat.ErrorObject(
			validation.NewError(CodeInvalid, "Enter a valid email address."),
		)),
		validation.Field(&in.Password, required, maxLength(constants.MaxPasswordLength)),
		validation.Field(&in.PasswordConfirm, required, maxLength(constants.MaxPasswordLength)),
	)
	if err := verr.merge(err); err != nil {
		return in, err
	}

	if !verr.HasField("username") {
		taken, err := users.UsernameExists(ctx, in.Username)
		if err != nil {
			return in, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			verr.Add("username", CodeDuplicateUsername, "Username is already taken.")
		}
	}

	if in.Email != "" && !verr.HasField("email") {
		taken, err := users.EmailExists(ctx, in.Email, 0)
		if err != nil {
			return in, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			verr.Add("email", CodeDuplicateEmail, "Email is already registered.")
		}
	}

	if in.Password != in.PasswordConfirm {
		verr.Add("password_confirm", CodePasswordMismatch, "Passwords do not match.")
	}

	return in, verr.orNil()
}

type PasswordChangeInput struct {
	OldPassword     string `form:"old_password" json:"old_password"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm"`
}

// ValidatePasswordChange checks a password change form against the user's
// stored bcrypt hash.
func ValidatePasswordChange(in PasswordChangeInput, storedHash string) (PasswordChangeInput, error) {
	verr := newValidationError("password_change")
	err := validation.ValidateStruct(&in,
		validation.Field(&in.OldPassword, required),
		validation.Field(&in.Password, required, maxLength(constants.MaxPasswordLength)),
		validation.Field(&in.PasswordConfirm, required, maxLength(constants.MaxPasswordLength)),
	)
	if err := verr.merge(err); err != nil {
		return in, err
	}

	if !verr.HasField("old_password") {
		if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(in.OldPassword)) != nil {
			verr.Add("old_password", CodeInvalidOldPassword, "Old password is incorrect.")
		}
	}

	if in.Password != in.PasswordConfirm {
		verr.Add("password_confirm", CodePasswordMismatch, "Passwords do not match.")
	}

	return in, verr.orNil()
}

type ProfileInput struct {
	Email     string `form:"email" json:"email"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
}

// ValidateProfile checks a profile edit for userID.
func ValidateProfile(ctx context.Context, userID uint64, in ProfileInput, users UserLookup) (ProfileInput, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	verr := newValidationError("profile")
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, is.EmailFormat.ErrorObject(
			validation.NewError(CodeInvalid, "Enter a valid email address."),
		)),
		validation.Field(&in.FirstName, maxLength(constants.MaxNameLength)),
		validation.Field(&in.LastName, maxLength(constants.MaxNameLength)),
	)
	if err := verr.merge(err); err != nil {
		return in, err
	}

	if in.Email != "" && !verr.HasField("email") {
		taken, err := users.EmailExists(ctx, in.Email, userID)
		if err != nil {
			return in, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			verr.Add("email", CodeDuplicateEmail, "Email is already registered.")
		}
	}

	return in, verr.orNil()
}
