package userservice

import (
	"github.com/google/uuid"

	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
)

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	FullName  *string
	AvatarURL *string
	Bio       *string
}

// Registered is the success payload for account creation.
type Registered struct {
	User *userdb.User `json:"user"`
}

// LoggedIn is the success payload for authentication.
type LoggedIn struct {
	Token string       `json:"token"`
	User  *userdb.User `json:"user"`
}

// Profile is the success payload for profile reads, joining the account with
// its leaderboard standing when one exists.
type Profile struct {
	User *userdb.User `json:"user"`
	Rank *RankSummary `json:"rank,omitempty"`
}

// FollowChanged is the success payload for follow and unfollow.
type FollowChanged struct {
	FollowerID uuid.UUID `json:"followerId"`
	FollowedID uuid.UUID `json:"followedId"`
	Removed    bool      `json:"removed"`
	// NoOp marks a follow that already existed or an unfollow with no edge.
	NoOp bool `json:"noOp"`
}

// AccountRemoved is the success payload for deletions and deactivations.
type AccountRemoved struct {
	UserID      uuid.UUID `json:"userId"`
	Deactivated bool      `json:"deactivated"`
}

// UserFailure is the failure payload for account operations.
type UserFailure struct {
	UserID uuid.UUID `json:"userId"`
	Reason string    `json:"reason"`
}
