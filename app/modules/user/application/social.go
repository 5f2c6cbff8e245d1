package userservice

import (
	"context"

	"github.com/google/uuid"

	userevents "github.com/storyweave/storyweave-backend/app/modules/user/events"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// Follow records the follower edge. Both users' counters move independently;
// the leaderboard picks the change up from the follow event.
func (s *UserService) Follow(ctx context.Context, followerID, followedID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Follow", followerID, func(ctx context.Context) (results.OperationResult, error) {
		if followerID == followedID {
			return results.FailureResult(&ValidationError{Field: "followedId", Reason: "cannot follow yourself"}), nil
		}
		if err := s.requireUser(ctx, followedID); err != nil {
			return results.FailureResult(UserFailure{UserID: followedID, Reason: err.Error()}), err
		}

		created, err := s.repo.Follow(ctx, followerID, followedID)
		if err != nil {
			return results.FailureResult(UserFailure{UserID: followerID, Reason: err.Error()}), err
		}
		if !created {
			return results.SuccessResult(FollowChanged{FollowerID: followerID, FollowedID: followedID, NoOp: true}), nil
		}

		s.publishEvent(ctx, userevents.UserFollowed, userevents.UserFollowedPayload{
			FollowerID: followerID,
			FollowedID: followedID,
		})

		return results.SuccessResult(FollowChanged{FollowerID: followerID, FollowedID: followedID}), nil
	})
}

// Unfollow removes the follower edge.
func (s *UserService) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Unfollow", followerID, func(ctx context.Context) (results.OperationResult, error) {
		removed, err := s.repo.Unfollow(ctx, followerID, followedID)
		if err != nil {
			return results.FailureResult(UserFailure{UserID: followerID, Reason: err.Error()}), err
		}
		if !removed {
			return results.SuccessResult(FollowChanged{FollowerID: followerID, FollowedID: followedID, Removed: true, NoOp: true}), nil
		}

		s.publishEvent(ctx, userevents.UserFollowed, userevents.UserFollowedPayload{
			FollowerID: followerID,
			FollowedID: followedID,
			Unfollowed: true,
		})

		return results.SuccessResult(FollowChanged{FollowerID: followerID, FollowedID: followedID, Removed: true}), nil
	})
}

func (s *UserService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return userdb.ErrUserNotFound
	}
	return nil
}
