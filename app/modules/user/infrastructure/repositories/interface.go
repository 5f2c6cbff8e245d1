package userdb

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for accounts and follow edges.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	Delete(ctx context.Context, userID uuid.UUID) error

	// Follow records the edge and bumps both counters. Returns false when the
	// edge already existed.
	Follow(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	// Unfollow removes the edge and decrements both counters. Returns false
	// when there was no edge to remove.
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)

	FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}
