package service

import (
	"context"
	"errors"
	"fmt"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

var ErrPostNotFound = errors.New("post does not exist")

type CommentService interface {
	AddComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (c *commentService) AddComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	exists, err := c.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("post %d: %w", req.PostID, ErrPostNotFound)
	}

	comment := &models.Comment{
		PostID:    req.PostID,
		CreatorID: req.CreatorID,
		Text:      req.Text,
	}

	if err := c.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}
