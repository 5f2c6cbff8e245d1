package userservice

import (
	"context"

	"github.com/google/uuid"

	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// Service defines the account operations exposed to the HTTP API.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (results.OperationResult, error)
	Login(ctx context.Context, email, password string) (results.OperationResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (results.OperationResult, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (results.OperationResult, error)
	Follow(ctx context.Context, followerID, followedID uuid.UUID) (results.OperationResult, error)
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (results.OperationResult, error)
	Deactivate(ctx context.Context, userID uuid.UUID) (results.OperationResult, error)
	Delete(ctx context.Context, userID uuid.UUID) (results.OperationResult, error)
}

var _ Service = (*UserService)(nil)
