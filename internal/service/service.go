package service

import (
	"socialnetwork/internal/config"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/session"
	"socialnetwork/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Profile ProfileService
	Tables  TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, store session.Store) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, store, cfg),
		Post:    NewPostService(rep.Post, rep.Comment),
		Comment: NewCommentService(rep.Post, rep.Comment),
		Profile: NewProfileService(rep.User, rep.Profile, storage),
		Tables:  NewTablesService(rep.Tables),
	}
}
