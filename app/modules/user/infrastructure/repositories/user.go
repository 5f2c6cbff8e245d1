package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// RepositoryImpl handles database operations for accounts.
type RepositoryImpl struct {
	DB *bun.DB
}

// NewRepository creates a user Repository backed by bun.
func NewRepository(db *bun.DB) *RepositoryImpl {
	return &RepositoryImpl{DB: db}
}

// Create inserts a new account. Username and email collisions surface as
// ErrUserExists.
func (r *RepositoryImpl) Create(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.DB.NewInsert().
		Model(user).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *RepositoryImpl) GetByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	user := new(User)
	err := r.DB.NewSelect().
		Model(user).
		Where("id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves an account by its unique username.
func (r *RepositoryImpl) GetByUsername(ctx context.Context, username string) (*User, error) {
	user := new(User)
	err := r.DB.NewSelect().
		Model(user).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves an account by its unique email.
func (r *RepositoryImpl) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := new(User)
	err := r.DB.NewSelect().
		Model(user).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile persists the editable profile fields.
func (r *RepositoryImpl) UpdateProfile(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.DB.NewUpdate().
		Model(user).
		Column("full_name", "avatar_url", "bio", "updated_at").
		Where("id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireRow(res)
}

// SetActive flips the account's active flag.
func (r *RepositoryImpl) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	res, err := r.DB.NewUpdate().
		Model((*User)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set user active flag: %w", err)
	}
	return requireRow(res)
}

// Delete removes the account and its follow edges in one transaction.
func (r *RepositoryImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Follow)(nil)).
			Where("follower_id = ? OR followed_id = ?", userID, userID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete follow edges: %w", err)
		}

		res, err := tx.NewDelete().
			Model((*User)(nil)).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return requireRow(res)
	})
}

// Follow records the edge and bumps both counters. The counters live in
// separate rows and are updated independently.
func (r *RepositoryImpl) Follow(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	edge := &Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now().UTC(),
	}
	res, err := r.DB.NewInsert().
		Model(edge).
		On("CONFLICT (follower_id, followed_id) DO NOTHING").
		Exec(ctx)
	if err != nil && !isUniqueViolation(err) {
		return false, fmt.Errorf("failed to record follow: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to record follow: %w", err)
	}
	if inserted == 0 {
		return false, nil
	}

	if err := r.adjustCounter(ctx, followerID, "followingCount", 1); err != nil {
		return true, err
	}
	if err := r.adjustCounter(ctx, followedID, "followerCount", 1); err != nil {
		return true, err
	}
	return true, nil
}

// Unfollow removes the edge and decrements both counters.
func (r *RepositoryImpl) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	res, err := r.DB.NewDelete().
		Model((*Follow)(nil)).
		Where("follower_id = ?", followerID).
		Where("followed_id = ?", followedID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove follow: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove follow: %w", err)
	}
	if removed == 0 {
		return false, nil
	}

	if err := r.adjustCounter(ctx, followerID, "followingCount", -1); err != nil {
		return true, err
	}
	if err := r.adjustCounter(ctx, followedID, "followerCount", -1); err != nil {
		return true, err
	}
	return true, nil
}

// FollowerCount reads the denormalized counter from the user's stats.
func (r *RepositoryImpl) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.NewSelect().
		Model((*User)(nil)).
		ColumnExpr("COALESCE((stats->>'followerCount')::bigint, 0)").
		Where("id = ?", userID).
		Scan(ctx, &count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to read follower count: %w", err)
	}
	return count, nil
}

// Exists reports whether an account with the ID is present.
func (r *RepositoryImpl) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	exists, err := r.DB.NewSelect().
		Model((*User)(nil)).
		Where("id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// adjustCounter applies a delta to one stats counter atomically.
func (r *RepositoryImpl) adjustCounter(ctx context.Context, userID uuid.UUID, field string, delta int64) error {
	_, err := r.DB.NewUpdate().
		Model((*User)(nil)).
		Set(fmt.Sprintf(
			"stats = jsonb_set(stats, '{%s}', (GREATEST(COALESCE((stats->>'%s')::bigint, 0) + ?, 0))::text::jsonb)",
			field, field), delta).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to adjust %s: %w", field, err)
	}
	return nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
