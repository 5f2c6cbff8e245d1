package leaderboardadapters

import (
	"context"

	"github.com/google/uuid"

	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
)

// UserReader adapts the user repository for score collection.
type UserReader struct {
	repo userdb.Repository
}

// NewUserReader creates a UserReader over the user repository.
func NewUserReader(repo userdb.Repository) *UserReader {
	return &UserReader{repo: repo}
}

// FollowerCount reads the denormalized counter from the user record.
func (r *UserReader) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.repo.FollowerCount(ctx, userID)
}

// Exists reports whether the account is still present.
func (r *UserReader) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.repo.Exists(ctx, userID)
}
