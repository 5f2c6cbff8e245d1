package storydb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	storydomain "github.com/storyweave/storyweave-backend/app/modules/story/domain"
)

// StoryStats holds the engagement counters stored as JSONB.
type StoryStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	ReadTime int   `json:"readTime"`
}

// StorySettings holds author-controlled toggles stored as JSONB.
type StorySettings struct {
	Featured      bool `json:"featured"`
	Mature        bool `json:"mature"`
	AllowComments bool `json:"allowComments"`
}

// Story is the persisted story record.
type Story struct {
	bun.BaseModel `bun:"table:stories,alias:s"`

	ID       uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	AuthorID uuid.UUID `bun:"author_id,type:uuid,notnull"`

	Title    string             `bun:"title,notnull"`
	Slug     string             `bun:"slug,notnull,unique"`
	Content  string             `bun:"content,notnull"`
	Excerpt  string             `bun:"excerpt"`
	Category string             `bun:"category"`
	Tags     []string           `bun:"tags,array"`
	Status   storydomain.Status `bun:"status,notnull,default:'draft'"`

	Stats      StoryStats    `bun:"stats,type:jsonb,notnull"`
	Settings   StorySettings `bun:"settings,type:jsonb,notnull"`
	LikedBy    []uuid.UUID   `bun:"liked_by,type:jsonb"`
	DislikedBy []uuid.UUID   `bun:"disliked_by,type:jsonb"`

	WordCount int `bun:"word_count,notnull,default:0"`

	PublishedAt time.Time `bun:"published_at,nullzero"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Rating returns the story's like-ratio rating on a 0-5 scale.
func (s *Story) Rating() float64 {
	return storydomain.Rating(s.Stats.Likes, s.Stats.Dislikes)
}

// IsPublished reports whether the story is visible to readers.
func (s *Story) IsPublished() bool {
	return s.Status == storydomain.StatusPublished
}
