package userservice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userevents "github.com/storyweave/storyweave-backend/app/modules/user/events"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
)

func registerUser(t *testing.T, svc *UserService, repo *FakeRepository, username, email string) *userdb.User {
	t.Helper()
	result, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	registered, ok := result.Success.(Registered)
	if !ok {
		t.Fatalf("expected Registered, got %+v", result)
	}
	return repo.User(registered.User.ID)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and announces it", func(t *testing.T) {
		repo := NewFakeRepository()
		bus := &FakeEventBus{}
		svc := newTestService(repo, nil, bus)

		user := registerUser(t, svc, repo, "maren", "Maren@Example.com")

		if user.Email != "maren@example.com" {
			t.Errorf("email = %q, want lowercased", user.Email)
		}
		if user.Role != userdb.RoleUser || !user.IsActive {
			t.Errorf("role = %q, active = %v", user.Role, user.IsActive)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")) != nil {
			t.Error("stored hash does not match the password")
		}
		if topics := bus.Topics(); len(topics) != 1 || topics[0] != userevents.UserRegistered {
			t.Errorf("published topics = %v", topics)
		}
	})

	t.Run("rejects a taken username without erroring", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, nil, &FakeEventBus{})
		registerUser(t, svc, repo, "maren", "first@example.com")

		result, err := svc.Register(ctx, RegisterInput{
			Username: "maren",
			Email:    "second@example.com",
			Password: "long enough password",
		})
		if err != nil {
			t.Fatalf("duplicate registration should not error: %v", err)
		}
		if _, ok := result.Failure.(*ValidationError); !ok {
			t.Fatalf("expected ValidationError failure, got %+v", result.Failure)
		}
	})

	t.Run("rejects weak input", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, nil, &FakeEventBus{})

		cases := []struct {
			name  string
			input RegisterInput
			field string
		}{
			{"blank username", RegisterInput{Email: "a@b.c", Password: "long enough pw"}, "username"},
			{"bad email", RegisterInput{Username: "x", Email: "nope", Password: "long enough pw"}, "email"},
			{"short password", RegisterInput{Username: "x", Email: "a@b.c", Password: "short"}, "password"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				result, err := svc.Register(ctx, tc.input)
				if err != nil {
					t.Fatalf("validation failures should not error: %v", err)
				}
				vErr, ok := result.Failure.(*ValidationError)
				if !ok || vErr.Field != tc.field {
					t.Fatalf("expected %s ValidationError, got %+v", tc.field, result.Failure)
				}
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for good credentials", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, nil, &FakeEventBus{})
		user := registerUser(t, svc, repo, "maren", "maren@example.com")

		result, err := svc.Login(ctx, "maren@example.com", "correct horse battery")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		logged := result.Success.(LoggedIn)
		if logged.Token == "" {
			t.Error("no token issued")
		}
		if logged.User.ID != user.ID {
			t.Errorf("logged in as %s, want %s", logged.User.ID, user.ID)
		}
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, nil, &FakeEventBus{})
		registerUser(t, svc, repo, "maren", "maren@example.com")

		for _, tc := range []struct{ email, password string }{
			{"maren@example.com", "wrong password entirely"},
			{"ghost@example.com", "correct horse battery"},
		} {
			result, err := svc.Login(ctx, tc.email, tc.password)
			if err != nil {
				t.Fatalf("credential failures should not error: %v", err)
			}
			if !errors.Is(failureError(result.Failure), ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %+v", result.Failure)
			}
		}
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, nil, &FakeEventBus{})
		user := registerUser(t, svc, repo, "maren", "maren@example.com")
		if _, err := svc.Deactivate(ctx, user.ID); err != nil {
			t.Fatalf("Deactivate: %v", err)
		}

		result, err := svc.Login(ctx, "maren@example.com", "correct horse battery")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if !errors.Is(failureError(result.Failure), ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %+v", result.Failure)
		}
	})
}

func failureError(failure any) error {
	if err, ok := failure.(error); ok {
		return err
	}
	return nil
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("joins the leaderboard standing", func(t *testing.T) {
		repo := NewFakeRepository()
		ranks := &FakeRankReader{
			RankSummaryFunc: func(ctx context.Context, userID uuid.UUID) (*RankSummary, error) {
				return &RankSummary{Position: 4, TotalScore: 107}, nil
			},
		}
		svc := newTestService(repo, ranks, &FakeEventBus{})
		user := registerUser(t, svc, repo, "maren", "maren@example.com")

		result, err := svc.GetProfile(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		profile := result.Success.(Profile)
		if profile.Rank == nil || profile.Rank.Position != 4 {
			t.Errorf("rank = %+v", profile.Rank)
		}
	})

	t.Run("a rank lookup failure does not sink the profile", func(t *testing.T) {
		repo := NewFakeRepository()
		ranks := &FakeRankReader{
			RankSummaryFunc: func(ctx context.Context, userID uuid.UUID) (*RankSummary, error) {
				return nil, errors.New("leaderboard offline")
			},
		}
		svc := newTestService(repo, ranks, &FakeEventBus{})
		user := registerUser(t, svc, repo, "maren", "maren@example.com")

		result, err := svc.GetProfile(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		profile := result.Success.(Profile)
		if profile.User == nil || profile.Rank != nil {
			t.Errorf("profile = %+v", profile)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the account and announces it", func(t *testing.T) {
		repo := NewFakeRepository()
		bus := &FakeEventBus{}
		svc := newTestService(repo, nil, bus)
		user := registerUser(t, svc, repo, "maren", "maren@example.com")

		if _, err := svc.Delete(ctx, user.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if repo.User(user.ID) != nil {
			t.Error("account survived the delete")
		}
		if topics := bus.Topics(); topics[len(topics)-1] != userevents.UserDeleted {
			t.Errorf("last event = %q", topics[len(topics)-1])
		}
	})

	t.Run("deleting an unknown account errors", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, nil, &FakeEventBus{})

		if _, err := svc.Delete(ctx, uuid.New()); !errors.Is(err, userdb.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
