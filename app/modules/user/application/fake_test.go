package userservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
	"github.com/storyweave/storyweave-backend/pkg/jwt"
)

type followEdge struct {
	follower uuid.UUID
	followed uuid.UUID
}

// FakeRepository is an in-memory stand-in for the user repository.
type FakeRepository struct {
	users map[uuid.UUID]*userdb.User
	edges map[followEdge]bool
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		users: map[uuid.UUID]*userdb.User{},
		edges: map[followEdge]bool{},
	}
}

func (f *FakeRepository) User(id uuid.UUID) *userdb.User {
	return f.users[id]
}

func (f *FakeRepository) Create(ctx context.Context, user *userdb.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return userdb.ErrUserExists
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *FakeRepository) GetByID(ctx context.Context, userID uuid.UUID) (*userdb.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, userdb.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *FakeRepository) GetByUsername(ctx context.Context, username string) (*userdb.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, userdb.ErrUserNotFound
}

func (f *FakeRepository) GetByEmail(ctx context.Context, email string) (*userdb.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, userdb.ErrUserNotFound
}

func (f *FakeRepository) UpdateProfile(ctx context.Context, user *userdb.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return userdb.ErrUserNotFound
	}
	stored.FullName = user.FullName
	stored.AvatarURL = user.AvatarURL
	stored.Bio = user.Bio
	return nil
}

func (f *FakeRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	stored, ok := f.users[userID]
	if !ok {
		return userdb.ErrUserNotFound
	}
	stored.IsActive = active
	return nil
}

func (f *FakeRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, ok := f.users[userID]; !ok {
		return userdb.ErrUserNotFound
	}
	delete(f.users, userID)
	for edge := range f.edges {
		if edge.follower == userID || edge.followed == userID {
			delete(f.edges, edge)
		}
	}
	return nil
}

func (f *FakeRepository) Follow(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	edge := followEdge{follower: followerID, followed: followedID}
	if f.edges[edge] {
		return false, nil
	}
	f.edges[edge] = true
	f.bump(followerID, func(s *userdb.UserStats) { s.FollowingCount++ })
	f.bump(followedID, func(s *userdb.UserStats) { s.FollowerCount++ })
	return true, nil
}

func (f *FakeRepository) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	edge := followEdge{follower: followerID, followed: followedID}
	if !f.edges[edge] {
		return false, nil
	}
	delete(f.edges, edge)
	f.bump(followerID, func(s *userdb.UserStats) { s.FollowingCount-- })
	f.bump(followedID, func(s *userdb.UserStats) { s.FollowerCount-- })
	return true, nil
}

func (f *FakeRepository) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	user, ok := f.users[userID]
	if !ok {
		return 0, userdb.ErrUserNotFound
	}
	return user.Stats.FollowerCount, nil
}

func (f *FakeRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, ok := f.users[userID]
	return ok, nil
}

func (f *FakeRepository) bump(userID uuid.UUID, fn func(*userdb.UserStats)) {
	if user, ok := f.users[userID]; ok {
		fn(&user.Stats)
	}
}

var _ userdb.Repository = (*FakeRepository)(nil)

// FakeRankReader serves a canned leaderboard standing.
type FakeRankReader struct {
	RankSummaryFunc func(ctx context.Context, userID uuid.UUID) (*RankSummary, error)
}

func (f *FakeRankReader) RankSummary(ctx context.Context, userID uuid.UUID) (*RankSummary, error) {
	if f.RankSummaryFunc != nil {
		return f.RankSummaryFunc(ctx, userID)
	}
	return nil, nil
}

// FakeEventBus records published topics.
type FakeEventBus struct {
	published []string
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	f.published = append(f.published, topic)
	return nil
}

func (f *FakeEventBus) Publisher() message.Publisher   { return nil }
func (f *FakeEventBus) Subscriber() message.Subscriber { return nil }
func (f *FakeEventBus) Close() error                   { return nil }

func (f *FakeEventBus) Topics() []string {
	out := make([]string, len(f.published))
	copy(out, f.published)
	return out
}

func newTestService(repo *FakeRepository, ranks RankReader, bus *FakeEventBus) *UserService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	tokens := jwt.NewService("test-secret", "storyweave", time.Hour)
	return NewUserService(repo, ranks, tokens, bus, utils.NewHelpers(), logger, observability.NoOpMetrics(), tracer)
}
