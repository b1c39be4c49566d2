package repository

import (
	"context"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"socialnetwork/internal/models"
	"time"
)

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

type CreateCommentRequest struct {
	PostID    int64
	CreatorID int64
	Text      string
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, creator_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING comment_id
	`

	comment.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowxContext(ctx, query,
		comment.PostID,
		comment.CreatorID,
		comment.Text,
		comment.CreatedAt,
	).Scan(&comment.CommentID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByPostIDs loads the comments of several posts in one query, oldest first.
func (r *CommentRepositoryImpl) ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.Comment, error) {
	comments := []models.Comment{}
	if len(postIDs) == 0 {
		return comments, nil
	}

	query := `
		SELECT c.comment_id, c.post_id, c.creator_id, c.text, c.created_at,
			u.username AS creator_username,
			u.first_name AS creator_first_name,
			u.last_name AS creator_last_name
		FROM comments c
		JOIN users u ON u.user_id = c.creator_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at, c.comment_id
	`

	if err := r.db.SelectContext(ctx, &comments, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}
