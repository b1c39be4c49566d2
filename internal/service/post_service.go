package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

var ErrEmptyPost = errors.New("post text is empty")

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	GlobalPosts(ctx context.Context) ([]models.Post, error)
	FollowerPosts(ctx context.Context, followerID int64) ([]models.Post, error)
	GlobalStream(ctx context.Context) ([]models.Post, error)
	FollowerStream(ctx context.Context, followerID int64) ([]models.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	if req.Text == "" {
		return nil, ErrEmptyPost
	}

	post := &models.Post{
		AuthorID: req.AuthorID,
		Text:     req.Text,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GlobalPosts returns every post with its comments, oldest first.
func (p *postService) GlobalPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return p.attachComments(ctx, posts)
}

// FollowerPosts returns the posts of followed users with their comments, oldest first.
func (p *postService) FollowerPosts(ctx context.Context, followerID int64) ([]models.Post, error) {
	posts, err := p.postRepo.ListByFollower(ctx, followerID)
	if err != nil {
		return nil, err
	}

	return p.attachComments(ctx, posts)
}

// GlobalStream is GlobalPosts in display order, most recent first.
func (p *postService) GlobalStream(ctx context.Context) ([]models.Post, error) {
	posts, err := p.GlobalPosts(ctx)
	if err != nil {
		return nil, err
	}

	slices.Reverse(posts)
	return posts, nil
}

func (p *postService) FollowerStream(ctx context.Context, followerID int64) ([]models.Post, error) {
	posts, err := p.FollowerPosts(ctx, followerID)
	if err != nil {
		return nil, err
	}

	slices.Reverse(posts)
	return posts, nil
}

func (p *postService) attachComments(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	postIDs := make([]int64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.PostID)
	}

	comments, err := p.commentRepo.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	byPost := make(map[int64][]models.Comment, len(posts))
	for _, comment := range comments {
		byPost[comment.PostID] = append(byPost[comment.PostID], comment)
	}

	for i := range posts {
		posts[i].Comments = byPost[posts[i].PostID]
		if posts[i].Comments == nil {
			posts[i].Comments = []models.Comment{}
		}
	}

	return posts, nil
}
