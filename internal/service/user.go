package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/repository"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MaxBioLength      = 500
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// reservedUsernames can never be claimed, whatever the reservation table
// says.
var reservedUsernames = map[string]bool{
	"admin": true, "root": true, "system": true, "null": true,
	"undefined": true, "api": true, "www": true, "mail": true,
}

// ProfileInput is the editable slice of a profile. Nil fields are left
// unchanged; link URLs are validated when present.
type ProfileInput struct {
	DisplayName *string             `validate:"omitempty,max=100"`
	Bio         *string             `validate:"omitempty,max=500"`
	IsPublic    *bool               `validate:"-"`
	Links       *model.ProfileLinks `validate:"omitempty"`
}

// UserService manages accounts, profiles and the username registry.
type UserService struct {
	users     repository.UserRepository
	usernames repository.UsernameRepository
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewUserService(users repository.UserRepository, usernames repository.UsernameRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		usernames: usernames,
		validate:  validator.New(),
		logger:    logger,
	}
}

// EnsureProfile creates or refreshes the account after a login. Auth-sourced
// fields are overwritten; profile edits and the username survive.
func (s *UserService) EnsureProfile(ctx context.Context, u *model.User) error {
	if err := s.users.Upsert(ctx, u); err != nil {
		return fmt.Errorf("ensuring profile: %w", err)
	}
	s.logger.Info("profile ensured",
		slog.String("userID", u.ID),
		slog.String("displayName", u.DisplayName),
	)
	return nil
}

// GetProfile returns a user's full profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdateProfile patches the caller's editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) error {
	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return apperror.ValidationFailed(field, fmt.Sprintf("invalid %s", field))
		}
		return apperror.ValidationFailed("profile", "invalid profile data")
	}
	if input.Links != nil {
		if err := validateLinks(*input.Links); err != nil {
			return err
		}
	}

	err := s.users.UpdateProfile(ctx, userID, repository.ProfileUpdate{
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		IsPublic:    input.IsPublic,
		Links:       input.Links,
	})
	if err != nil {
		return err
	}
	s.logger.Info("profile updated", slog.String("userID", userID))
	return nil
}

func validateLinks(links model.ProfileLinks) error {
	for field, url := range map[string]string{
		"github": links.GitHub, "twitter": links.Twitter,
		"linkedin": links.LinkedIn, "website": links.Website,
	} {
		if url == "" {
			continue
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return apperror.ValidationFailed(field, "link must be an http(s) URL")
		}
	}
	return nil
}

// ValidateUsername checks format only — availability is a separate question.
// Rules: 3-20 characters, letters, digits and underscores, not reserved.
func ValidateUsername(username string) error {
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if len(username) < MinUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if len(username) > MaxUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if !usernamePattern.MatchString(username) {
		return apperror.ValidationFailed("username",
			"username can only contain letters, numbers, and underscores")
	}
	if reservedUsernames[strings.ToLower(username)] {
		return apperror.ValidationFailed("username", "this username is reserved")
	}
	return nil
}

// CheckAvailability reports whether the username could be claimed right now.
// Invalid names are simply unavailable, not an error.
func (s *UserService) CheckAvailability(ctx context.Context, username string) (bool, error) {
	if err := ValidateUsername(username); err != nil {
		return false, nil
	}
	_, err := s.usernames.Resolve(ctx, strings.ToLower(username))
	if errors.Is(err, apperror.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking username availability: %w", err)
	}
	return false, nil
}

// ClaimUsername gives userID the handle, atomically.
//
// Order matters: reserve the new name first, release the old one after.
// If the claim loses a race the user keeps their old handle; if the release
// fails afterwards the stale reservation leaks but the user's new handle is
// already safe — the reservation table stays the single authority either
// way.
func (s *UserService) ClaimUsername(ctx context.Context, userID, username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	usernameLower := strings.ToLower(username)

	current, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	// Re-claiming the handle you already hold is a no-op, even with
	// different casing stored.
	if current.UsernameLower == usernameLower {
		return nil
	}

	if err := s.usernames.Claim(ctx, usernameLower, userID); err != nil {
		return err
	}

	if current.UsernameLower != "" {
		if err := s.usernames.Release(ctx, current.UsernameLower); err != nil {
			s.logger.Warn("failed to release old username",
				slog.String("userID", userID),
				slog.String("username", current.UsernameLower),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.users.SetUsername(ctx, userID, username, usernameLower); err != nil {
		return fmt.Errorf("storing username on profile: %w", err)
	}

	s.logger.Info("username claimed",
		slog.String("userID", userID),
		slog.String("username", username),
	)
	return nil
}

// ResolveUsername maps a handle (any casing) to the owning user ID.
func (s *UserService) ResolveUsername(ctx context.Context, username string) (string, error) {
	return s.usernames.Resolve(ctx, strings.ToLower(username))
}
