package userservice

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userevents "github.com/storyweave/storyweave-backend/app/modules/user/events"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

const minPasswordLength = 8

// Register creates an account and announces it so the leaderboard can
// provision a zero-score entry.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Register", uuid.Nil, func(ctx context.Context) (results.OperationResult, error) {
		if vErr := validateRegistration(input); vErr != nil {
			return results.FailureResult(vErr), nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return results.OperationResult{}, err
		}

		user := &userdb.User{
			ID:           uuid.New(),
			Username:     strings.TrimSpace(input.Username),
			Email:        strings.ToLower(strings.TrimSpace(input.Email)),
			FullName:     input.FullName,
			Role:         userdb.RoleUser,
			IsActive:     true,
			PasswordHash: string(hash),
			CreatedAt:    s.now(),
		}

		if err := s.repo.Create(ctx, user); err != nil {
			if errors.Is(err, userdb.ErrUserExists) {
				return results.FailureResult(&ValidationError{Field: "username", Reason: "username or email already taken"}), nil
			}
			return results.FailureResult(UserFailure{UserID: user.ID, Reason: err.Error()}), err
		}

		s.publishEvent(ctx, userevents.UserRegistered, userevents.UserRegisteredPayload{
			UserID:       user.ID,
			Username:     user.Username,
			RegisteredAt: user.CreatedAt,
		})

		return results.SuccessResult(Registered{User: user}), nil
	})
}

// Login verifies credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Login", uuid.Nil, func(ctx context.Context) (results.OperationResult, error) {
		user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			if errors.Is(err, userdb.ErrUserNotFound) {
				return results.FailureResult(ErrInvalidCredentials), nil
			}
			return results.FailureResult(UserFailure{Reason: err.Error()}), err
		}
		if !user.IsActive {
			return results.FailureResult(ErrInvalidCredentials), nil
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return results.FailureResult(ErrInvalidCredentials), nil
		}

		token, err := s.tokens.Sign(user.ID, string(user.Role))
		if err != nil {
			return results.FailureResult(UserFailure{UserID: user.ID, Reason: err.Error()}), err
		}
		return results.SuccessResult(LoggedIn{Token: token, User: user}), nil
	})
}

// UpdateProfile applies edits to the account's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "UpdateProfile", userID, func(ctx context.Context) (results.OperationResult, error) {
		user, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return results.FailureResult(UserFailure{UserID: userID, Reason: err.Error()}), err
		}

		if input.FullName != nil {
			user.FullName = *input.FullName
		}
		if input.AvatarURL != nil {
			user.AvatarURL = *input.AvatarURL
		}
		if input.Bio != nil {
			user.Bio = *input.Bio
		}

		if err := s.repo.UpdateProfile(ctx, user); err != nil {
			return results.FailureResult(UserFailure{UserID: userID, Reason: err.Error()}), err
		}
		return results.SuccessResult(Profile{User: user}), nil
	})
}

// Deactivate disables the account without deleting its data.
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Deactivate", userID, func(ctx context.Context) (results.OperationResult, error) {
		if err := s.repo.SetActive(ctx, userID, false); err != nil {
			return results.FailureResult(UserFailure{UserID: userID, Reason: err.Error()}), err
		}
		return results.SuccessResult(AccountRemoved{UserID: userID, Deactivated: true}), nil
	})
}

// Delete removes the account and announces it so the leaderboard entry
// disappears with it.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Delete", userID, func(ctx context.Context) (results.OperationResult, error) {
		if err := s.repo.Delete(ctx, userID); err != nil {
			return results.FailureResult(UserFailure{UserID: userID, Reason: err.Error()}), err
		}

		s.publishEvent(ctx, userevents.UserDeleted, userevents.UserDeletedPayload{UserID: userID})

		return results.SuccessResult(AccountRemoved{UserID: userID}), nil
	})
}

func validateRegistration(input RegisterInput) *ValidationError {
	if strings.TrimSpace(input.Username) == "" {
		return &ValidationError{Field: "username", Reason: "username is required"}
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Reason: "a valid email is required"}
	}
	if len(input.Password) < minPasswordLength {
		return &ValidationError{Field: "password", Reason: "password must be at least 8 characters"}
	}
	return nil
}
