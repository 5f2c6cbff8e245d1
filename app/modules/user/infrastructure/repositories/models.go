package userdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role gates admin-only surfaces.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStats holds denormalized activity counters stored as JSONB. The
// leaderboard reads followerCount from here instead of scanning follows.
type UserStats struct {
	TotalStories   int64 `json:"totalStories"`
	TotalViews     int64 `json:"totalViews"`
	TotalLikes     int64 `json:"totalLikes"`
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}

// User is the persisted account record.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Username string    `bun:"username,notnull,unique"`
	Email    string    `bun:"email,notnull,unique"`

	FullName  string `bun:"full_name"`
	AvatarURL string `bun:"avatar_url"`
	Bio       string `bun:"bio"`

	Role     Role `bun:"role,notnull,default:'user'"`
	IsActive bool `bun:"is_active,notnull,default:true"`

	Stats UserStats `bun:"stats,type:jsonb,notnull"`

	PasswordHash string `bun:"password_hash,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// IsAdmin reports whether the account may use admin-gated endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Follow is a directed edge between two accounts. The unique pair constraint
// makes Follow idempotent.
type Follow struct {
	bun.BaseModel `bun:"table:user_follows,alias:uf"`

	ID         int64     `bun:"id,pk,autoincrement"`
	FollowerID uuid.UUID `bun:"follower_id,type:uuid,notnull"`
	FollowedID uuid.UUID `bun:"followed_id,type:uuid,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
