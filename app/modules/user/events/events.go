// Package userevents defines the topics and payloads emitted by the user
// module's account lifecycle.
package userevents

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserRegistered = "user.registered"
	UserDeleted    = "user.deleted"
	UserFollowed   = "user.followed"
)

// UserRegisteredPayload is emitted after a new account is created.
type UserRegisteredPayload struct {
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}

// UserDeletedPayload is emitted after an account is deleted.
type UserDeletedPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// UserFollowedPayload is emitted after a follow edge changes. Unfollowed marks
// removals; either way the followed author's follower count moved.
type UserFollowedPayload struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	Unfollowed bool      `json:"unfollowed"`
}
