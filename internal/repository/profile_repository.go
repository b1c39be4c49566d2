package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"socialnetwork/internal/models"
	"time"
)

type ProfileRepositoryImpl struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `SELECT user_id, bio, picture_object, content_type, updated_at FROM profiles WHERE user_id = $1`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			bio = :bio,
			picture_object = :picture_object,
			content_type = :content_type,
			updated_at = :updated_at
		WHERE user_id = :user_id
	`

	profile.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("profile %d: %w", profile.UserID, ErrNotFound)
	}

	return nil
}

// Follow is a no-op when the pair already exists.
func (r *ProfileRepositoryImpl) Follow(ctx context.Context, followerID, followeeID int64) error {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to follow user %d: %w", followeeID, err)
	}

	return nil
}

// Unfollow is a no-op when the pair does not exist.
func (r *ProfileRepositoryImpl) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to unfollow user %d: %w", followeeID, err)
	}

	return nil
}

func (r *ProfileRepositoryImpl) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var following bool
	if err := r.db.GetContext(ctx, &following, query, followerID, followeeID); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return following, nil
}

func (r *ProfileRepositoryImpl) ListFollowees(ctx context.Context, followerID int64) ([]models.User, error) {
	query := `
		SELECT u.* FROM users u
		JOIN follows f ON f.followee_id = u.user_id
		WHERE f.follower_id = $1
		ORDER BY u.username
	`

	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, query, followerID); err != nil {
		return nil, fmt.Errorf("failed to list followed users: %w", err)
	}

	return users, nil
}
