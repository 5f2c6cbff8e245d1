// Package testutils provides seeded fake-data generation for tests.
package testutils

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	storydomain "github.com/storyweave/storyweave-backend/app/modules/story/domain"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
)

// TestDataGenerator produces interrelated test fixtures. A fixed seed gives
// reproducible data across runs.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator with an optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// GenerateUsers creates count active accounts. The first user is always an
// admin so admin-gated paths have a caller available.
func (g *TestDataGenerator) GenerateUsers(count int) []userdb.User {
	users := make([]userdb.User, count)

	for i := 0; i < count; i++ {
		role := userdb.RoleUser
		if i == 0 {
			role = userdb.RoleAdmin
		}

		username := strings.ToLower(g.faker.Username())
		users[i] = userdb.User{
			ID:           uuid.New(),
			Username:     username,
			Email:        strings.ToLower(g.faker.Email()),
			FullName:     g.faker.Name(),
			Bio:          g.faker.Sentence(8),
			Role:         role,
			IsActive:     true,
			PasswordHash: "$2a$10$" + g.faker.LetterN(53),
			CreatedAt:    g.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
		}
	}

	return users
}

// StoryOptions constrains GenerateStoryWithConstraints. Zero values leave the
// generated field in place.
type StoryOptions struct {
	AuthorID  uuid.UUID
	Status    storydomain.Status
	Featured  bool
	Views     int64
	Likes     int64
	Published *time.Time
}

// GenerateStory creates a story for the given author. Roughly two thirds of
// generated stories are published with engagement stats filled in.
func (g *TestDataGenerator) GenerateStory(authorID uuid.UUID) storydb.Story {
	title := g.faker.Sentence(g.faker.Number(3, 7))
	title = strings.TrimSuffix(title, ".")
	content := g.faker.Paragraph(3, 6, 12, " ")

	story := storydb.Story{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    title,
		Slug:     storydomain.Slugify(title) + "-" + g.faker.DigitN(4),
		Content:  content,
		Excerpt:  g.faker.Sentence(12),
		Category: g.faker.RandomString([]string{"fiction", "poetry", "essay", "fanfic"}),
		Tags:     []string{g.faker.Word(), g.faker.Word()},
		Status:   storydomain.StatusDraft,
		Settings: storydb.StorySettings{
			AllowComments: true,
			Featured:      g.faker.Number(0, 9) == 0,
		},
		WordCount: storydomain.WordCount(content),
		CreatedAt: g.faker.DateRange(time.Now().AddDate(0, -6, 0), time.Now()),
	}
	story.Stats.ReadTime = storydomain.ReadTime(content)

	if g.faker.Number(0, 2) > 0 {
		story.Status = storydomain.StatusPublished
		story.PublishedAt = g.faker.DateRange(story.CreatedAt, time.Now())
		story.Stats.Views = int64(g.faker.Number(0, 5000))
		story.Stats.Likes = int64(g.faker.Number(0, 400))
		story.Stats.Dislikes = int64(g.faker.Number(0, 40))
		story.Stats.Comments = int64(g.faker.Number(0, 120))
		story.Stats.Shares = int64(g.faker.Number(0, 60))
	}

	return story
}

// GenerateStoryWithConstraints creates a story and applies the non-zero
// options on top.
func (g *TestDataGenerator) GenerateStoryWithConstraints(options StoryOptions) storydb.Story {
	authorID := options.AuthorID
	if authorID == uuid.Nil {
		authorID = uuid.New()
	}

	story := g.GenerateStory(authorID)

	if options.Status != "" {
		story.Status = options.Status
		if options.Status != storydomain.StatusPublished {
			story.PublishedAt = time.Time{}
		} else if story.PublishedAt.IsZero() {
			story.PublishedAt = time.Now().Add(-24 * time.Hour)
		}
	}
	if options.Featured {
		story.Settings.Featured = true
	}
	if options.Views > 0 {
		story.Stats.Views = options.Views
	}
	if options.Likes > 0 {
		story.Stats.Likes = options.Likes
	}
	if options.Published != nil {
		story.PublishedAt = *options.Published
	}

	return story
}

// GenerateSnapshots converts stories into the metric slices the scoring
// pipeline consumes.
func (g *TestDataGenerator) GenerateSnapshots(stories []storydb.Story) []leaderboarddomain.StorySnapshot {
	snapshots := make([]leaderboarddomain.StorySnapshot, 0, len(stories))
	for i := range stories {
		s := &stories[i]
		snapshots = append(snapshots, leaderboarddomain.StorySnapshot{
			ID:          s.ID,
			Published:   s.IsPublished(),
			Featured:    s.Settings.Featured,
			Views:       s.Stats.Views,
			Likes:       s.Stats.Likes,
			Comments:    s.Stats.Comments,
			Shares:      s.Stats.Shares,
			Rating:      s.Rating(),
			PublishedAt: s.PublishedAt,
		})
	}
	return snapshots
}

// GenerateTestData creates userCount accounts each with storiesPerUser
// stories, keyed by author.
func (g *TestDataGenerator) GenerateTestData(userCount, storiesPerUser int) ([]userdb.User, map[uuid.UUID][]storydb.Story) {
	users := g.GenerateUsers(userCount)
	stories := make(map[uuid.UUID][]storydb.Story, userCount)

	for _, u := range users {
		authored := make([]storydb.Story, storiesPerUser)
		for i := 0; i < storiesPerUser; i++ {
			authored[i] = g.GenerateStory(u.ID)
		}
		stories[u.ID] = authored
	}

	return users, stories
}
