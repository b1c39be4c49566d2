package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

func samplePosts() []models.Post {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return []models.Post{
		{PostID: 1, AuthorID: 1, Text: "first", CreatedAt: base},
		{PostID: 2, AuthorID: 2, Text: "second", CreatedAt: base.Add(time.Minute)},
		{PostID: 3, AuthorID: 1, Text: "third", CreatedAt: base.Add(2 * time.Minute)},
	}
}

func TestPostService_CreatePost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.AuthorID == 4 && p.Text == "hello"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Post).PostID = 11
		}).Return(nil)

		svc := NewPostService(postRepo, new(MockCommentRepository))

		post, err := svc.CreatePost(context.Background(), repository.CreatePostRequest{AuthorID: 4, Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, int64(11), post.PostID)
		postRepo.AssertExpectations(t)
	})

	t.Run("empty text", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := NewPostService(postRepo, new(MockCommentRepository))

		_, err := svc.CreatePost(context.Background(), repository.CreatePostRequest{AuthorID: 4, Text: ""})
		assert.ErrorIs(t, err, ErrEmptyPost)
		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("whitespace text is kept", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.Text == "  \n"
		})).Return(nil)
		svc := NewPostService(postRepo, new(MockCommentRepository))

		_, err := svc.CreatePost(context.Background(), repository.CreatePostRequest{AuthorID: 4, Text: "  \n"})
		require.NoError(t, err)
		postRepo.AssertExpectations(t)
	})
}

func TestPostService_GlobalPosts(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)

	postRepo.On("ListAll", mock.Anything).Return(samplePosts(), nil)
	commentRepo.On("ListByPostIDs", mock.Anything, []int64{1, 2, 3}).Return([]models.Comment{
		{CommentID: 1, PostID: 3, Text: "a"},
		{CommentID: 2, PostID: 1, Text: "b"},
		{CommentID: 3, PostID: 3, Text: "c"},
	}, nil)

	svc := NewPostService(postRepo, commentRepo)

	posts, err := svc.GlobalPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, int64(1), posts[0].PostID)
	assert.Len(t, posts[0].Comments, 1)
	assert.NotNil(t, posts[1].Comments)
	assert.Empty(t, posts[1].Comments)
	assert.Equal(t, "a", posts[2].Comments[0].Text)
	assert.Equal(t, "c", posts[2].Comments[1].Text)
}

func TestPostService_Streams(t *testing.T) {
	t.Run("global stream is newest first", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)
		postRepo.On("ListAll", mock.Anything).Return(samplePosts(), nil)
		commentRepo.On("ListByPostIDs", mock.Anything, mock.Anything).Return([]models.Comment{}, nil)

		posts, err := NewPostService(postRepo, commentRepo).GlobalStream(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2, 1}, []int64{posts[0].PostID, posts[1].PostID, posts[2].PostID})
	})

	t.Run("follower stream without followees", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)
		postRepo.On("ListByFollower", mock.Anything, int64(8)).Return([]models.Post{}, nil)

		posts, err := NewPostService(postRepo, commentRepo).FollowerStream(context.Background(), 8)
		require.NoError(t, err)
		assert.Empty(t, posts)
		commentRepo.AssertNotCalled(t, "ListByPostIDs", mock.Anything, mock.Anything)
	})

	t.Run("comment lookup fails", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)
		postRepo.On("ListByFollower", mock.Anything, int64(8)).Return(samplePosts(), nil)
		commentRepo.On("ListByPostIDs", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := NewPostService(postRepo, commentRepo).FollowerPosts(context.Background(), 8)
		assert.Error(t, err)
	})
}

func TestCommentService_AddComment(t *testing.T) {
	req := repository.CreateCommentRequest{PostID: 5, CreatorID: 2, Text: "nice"}

	t.Run("success", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)
		postRepo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
		commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Comment).CommentID = 40
			}).Return(nil)

		comment, err := NewCommentService(postRepo, commentRepo).AddComment(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(40), comment.CommentID)
		assert.Equal(t, int64(5), comment.PostID)
		assert.Equal(t, "nice", comment.Text)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)
		postRepo.On("Exists", mock.Anything, int64(5)).Return(false, nil)

		_, err := NewCommentService(postRepo, commentRepo).AddComment(context.Background(), req)
		assert.ErrorIs(t, err, ErrPostNotFound)
		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTablesService_Health(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		tablesRepo := new(MockTablesRepository)
		tablesRepo.On("Ping", mock.Anything).Return(nil)
		tablesRepo.On("CountTablesDB", mock.Anything).Return(5, nil)

		status, err := NewTablesService(tablesRepo).Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", status.Status)
		assert.Equal(t, 5, status.CountTables)
	})

	t.Run("database down", func(t *testing.T) {
		tablesRepo := new(MockTablesRepository)
		tablesRepo.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		_, err := NewTablesService(tablesRepo).Health(context.Background())
		assert.Error(t, err)
		tablesRepo.AssertNotCalled(t, "CountTablesDB", mock.Anything)
	})
}
