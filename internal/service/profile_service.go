package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/storage"
)

var ErrPictureNotFound = errors.New("picture not found")

type UpdateProfileRequest struct {
	UserID      int64
	Bio         string
	FileName    string
	ContentType string
	File        io.Reader
	Size        int64
}

type ProfileService interface {
	OwnProfile(ctx context.Context, userID int64) (*models.ProfileView, error)
	ViewProfile(ctx context.Context, viewerID, userID int64) (*models.ProfileView, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	Follow(ctx context.Context, followerID, targetID int64) (*models.ProfileView, error)
	Unfollow(ctx context.Context, followerID, targetID int64) (*models.ProfileView, error)
	GetPicture(ctx context.Context, profileID int64) (*storage.Picture, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	storage     storage.Storage
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, storage storage.Storage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		storage:     storage,
	}
}

func (s *profileService) OwnProfile(ctx context.Context, userID int64) (*models.ProfileView, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followees, err := s.profileRepo.ListFollowees(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.ProfileView{
		User:      *user,
		Profile:   *profile,
		Followees: followees,
	}, nil
}

func (s *profileService) ViewProfile(ctx context.Context, viewerID, userID int64) (*models.ProfileView, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.profileRepo.IsFollowing(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}

	return &models.ProfileView{
		User:      *user,
		Profile:   *profile,
		Following: following,
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	profile, err := s.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return err
	}

	objectName, err := s.storage.UploadPicture(ctx, req.UserID, req.FileName, req.ContentType, req.File, req.Size)
	if err != nil {
		return err
	}

	previousObject := profile.PictureObject

	profile.Bio = req.Bio
	profile.PictureObject = objectName
	profile.ContentType = req.ContentType

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if delErr := s.storage.DeletePicture(ctx, objectName); delErr != nil {
			log.Printf("warning: orphaned picture %s: %v", objectName, delErr)
		}
		return err
	}

	if previousObject != "" {
		if err := s.storage.DeletePicture(ctx, previousObject); err != nil {
			log.Printf("warning: failed to delete previous picture %s: %v", previousObject, err)
		}
	}

	return nil
}

func (s *profileService) Follow(ctx context.Context, followerID, targetID int64) (*models.ProfileView, error) {
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Follow(ctx, followerID, targetID); err != nil {
		return nil, err
	}

	return s.ViewProfile(ctx, followerID, targetID)
}

func (s *profileService) Unfollow(ctx context.Context, followerID, targetID int64) (*models.ProfileView, error) {
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return nil, err
	}

	return s.ViewProfile(ctx, followerID, targetID)
}

// GetPicture opens the stored picture, reporting the content type recorded with the profile.
func (s *profileService) GetPicture(ctx context.Context, profileID int64) (*storage.Picture, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if !profile.HasPicture() {
		return nil, fmt.Errorf("profile %d: %w", profileID, ErrPictureNotFound)
	}

	picture, err := s.storage.GetPicture(ctx, profile.PictureObject)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("profile %d: %w", profileID, ErrPictureNotFound)
		}
		return nil, err
	}

	if profile.ContentType != "" {
		picture.ContentType = profile.ContentType
	}

	return picture, nil
}
