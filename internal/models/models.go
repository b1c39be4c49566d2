package models

import (
	"time"
)

type User struct {
	UserID       int64     `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Profile shares its primary key with the owning user.
type Profile struct {
	UserID        int64     `json:"userId" db:"user_id"`
	Bio           string    `json:"bio" db:"bio"`
	PictureObject string    `json:"-" db:"picture_object"`
	ContentType   string    `json:"contentType" db:"content_type"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

func (p Profile) HasPicture() bool {
	return p.PictureObject != ""
}

// ProfileView is a profile together with its owner and, when rendered for another user, the viewer's relation to it.
type ProfileView struct {
	User      User
	Profile   Profile
	Following bool
	Followees []User
}

type Post struct {
	PostID          int64     `json:"id" db:"post_id"`
	AuthorID        int64     `json:"userId" db:"author_id"`
	AuthorUsername  string    `json:"-" db:"author_username"`
	AuthorFirstName string    `json:"-" db:"author_first_name"`
	AuthorLastName  string    `json:"-" db:"author_last_name"`
	Text            string    `json:"text" db:"text"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	Comments        []Comment `json:"comments" db:"-"`
}

type Comment struct {
	CommentID        int64     `json:"id" db:"comment_id"`
	PostID           int64     `json:"postId" db:"post_id"`
	CreatorID        int64     `json:"userId" db:"creator_id"`
	CreatorUsername  string    `json:"-" db:"creator_username"`
	CreatorFirstName string    `json:"-" db:"creator_first_name"`
	CreatorLastName  string    `json:"-" db:"creator_last_name"`
	Text             string    `json:"text" db:"text"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}
