package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/service"
	"socialnetwork/internal/session"
	"socialnetwork/internal/web"
)

var allowedPictureTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type ProfileForm struct {
	Bio string `validate:"required,max=200"`
}

// multipart headers and the bio field ride on top of the picture itself
const multipartOverhead = 1 << 20

func (h *Handlers) MyProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	page := h.newPage(r)

	if r.Method != http.MethodPost {
		h.renderMyProfile(w, r, page, identity.UserID, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			page.Errors = []string{fmt.Sprintf("File too big (max size is %s).", humanize.Bytes(uint64(h.Cfg.MaxUploadSize)))}
			h.renderMyProfile(w, r, page, identity.UserID, "")
			return
		}
		page.Errors = []string{"Picture is required."}
		h.renderMyProfile(w, r, page, identity.UserID, r.FormValue("bio"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := ProfileForm{Bio: r.FormValue("bio")}
	if err := h.Validate.Struct(form); err != nil {
		page.Errors = formErrors(err)
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		page.Errors = append(page.Errors, "Picture is required.")
		h.renderMyProfile(w, r, page, identity.UserID, form.Bio)
		return
	}
	defer file.Close()

	contentType, problem := h.checkPicture(file, header)
	if problem != "" {
		page.Errors = append(page.Errors, problem)
	}

	if len(page.Errors) > 0 {
		h.renderMyProfile(w, r, page, identity.UserID, form.Bio)
		return
	}

	err = h.ProfileService.UpdateProfile(r.Context(), service.UpdateProfileRequest{
		UserID:      identity.UserID,
		Bio:         form.Bio,
		FileName:    header.Filename,
		ContentType: contentType,
		File:        file,
		Size:        header.Size,
	})
	if err != nil {
		serverError(w, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusFound)
}

// checkPicture sniffs the upload and rewinds it. A non-empty problem is a message for the form.
func (h *Handlers) checkPicture(file multipart.File, header *multipart.FileHeader) (string, string) {
	if header.Size > h.Cfg.MaxUploadSize {
		return "", fmt.Sprintf("File too big (max size is %s).", humanize.Bytes(uint64(h.Cfg.MaxUploadSize)))
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", "Could not read the uploaded picture."
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", "Could not read the uploaded picture."
	}

	if !mimetype.EqualsAny(detected.String(), allowedPictureTypes...) {
		return "", fmt.Sprintf("File type %s is not an image.", detected.String())
	}

	return detected.String(), ""
}

func (h *Handlers) renderMyProfile(w http.ResponseWriter, r *http.Request, page *web.Page, userID int64, bio string) {
	view, err := h.ProfileService.OwnProfile(r.Context(), userID)
	if err != nil {
		serverError(w, err)
		return
	}

	if bio == "" {
		bio = view.Profile.Bio
	}

	page.Profile = view
	page.Form["bio"] = bio
	h.render(w, "my_profile", page)
}

func (h *Handlers) OtherProfile(w http.ResponseWriter, r *http.Request) {
	h.withTarget(w, r, h.ProfileService.ViewProfile)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	h.withTarget(w, r, h.ProfileService.Follow)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.withTarget(w, r, h.ProfileService.Unfollow)
}

type profileAction func(ctx context.Context, viewerID, targetID int64) (*models.ProfileView, error)

// withTarget resolves the {id} route variable, runs the action, and renders the target's profile.
func (h *Handlers) withTarget(w http.ResponseWriter, r *http.Request, action profileAction) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view, err := action(r.Context(), identity.UserID, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, err)
		return
	}

	page := h.newPage(r)
	page.Profile = view
	h.render(w, "other_profile", page)
}

func (h *Handlers) Photo(w http.ResponseWriter, r *http.Request) {
	profileID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	picture, err := h.ProfileService.GetPicture(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, service.ErrPictureNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, err)
		return
	}
	defer picture.Body.Close()

	w.Header().Set("Content-Type", picture.ContentType)
	if picture.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(picture.Size, 10))
	}

	if _, err := io.Copy(w, picture.Body); err != nil {
		log.Printf("Failed to stream picture for profile %d: %v", profileID, err)
	}
}
