package repository

import (
	"context"
	"fmt"
	"socialnetwork/internal/models"
	"time"

	"github.com/jmoiron/sqlx"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID int64
	Text     string
}

const selectPosts = `
	SELECT p.post_id, p.author_id, p.text, p.created_at,
		u.username AS author_username,
		u.first_name AS author_first_name,
		u.last_name AS author_last_name
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
`

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// Create stamps the post with the current server time and fills in the generated ID.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, text, created_at)
		VALUES ($1, $2, $3)
		RETURNING post_id
	`

	post.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowxContext(ctx, query, post.AuthorID, post.Text, post.CreatedAt).Scan(&post.PostID)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Exists(ctx context.Context, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE post_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, postID); err != nil {
		return false, fmt.Errorf("failed to check post %d: %w", postID, err)
	}

	return exists, nil
}

// ListAll returns every post in chronological order.
func (r *PostRepositoryImpl) ListAll(ctx context.Context) ([]models.Post, error) {
	query := selectPosts + `ORDER BY p.created_at, p.post_id`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// ListByFollower returns, in chronological order, the posts of every user followerID follows.
func (r *PostRepositoryImpl) ListByFollower(ctx context.Context, followerID int64) ([]models.Post, error) {
	query := selectPosts + `
	WHERE p.author_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
	ORDER BY p.created_at, p.post_id`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, followerID); err != nil {
		return nil, fmt.Errorf("failed to list followed posts: %w", err)
	}

	return posts, nil
}
