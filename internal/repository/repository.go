package repository

import (
	"context"
	"errors"
	"github.com/jmoiron/sqlx"
	"socialnetwork/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserRepository interface {
	CreateUserWithProfile(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFollowees(ctx context.Context, followerID int64) ([]models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Exists(ctx context.Context, postID int64) (bool, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByFollower(ctx context.Context, followerID int64) ([]models.Post, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPostIDs(ctx context.Context, postIDs []int64) ([]models.Comment, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	User    UserRepository
	Profile ProfileRepository
	Post    PostRepository
	Comment CommentRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Profile: NewProfileRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
