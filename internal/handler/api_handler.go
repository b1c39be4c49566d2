package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/service"
	"socialnetwork/internal/session"
)

const (
	notLoggedInMessage  = "You must be logged in to do this operation"
	postRequiredMessage = "You must use a POST request for this operation"
	emptyCommentMessage = "You must enter an comment to add."
)

type CommentResponse struct {
	ID            int64  `json:"id"`
	PostID        int64  `json:"post_id"`
	UserID        int64  `json:"user_id"`
	UserFirstName string `json:"user_firstname"`
	UserLastName  string `json:"user_lastname"`
	Text          string `json:"text"`
	CreationTime  string `json:"creation_time"`
}

type PostResponse struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	UserFirstName string            `json:"user_firstname"`
	UserLastName  string            `json:"user_lastname"`
	Text          string            `json:"text"`
	CreationTime  string            `json:"creation_time"`
	Comments      []CommentResponse `json:"comments"`
}

type CommentForm struct {
	PostID string `validate:"required,number"`
	Text   string `validate:"required"`
}

// isoTime renders ISO-8601 with microseconds, dropping the fraction when it is zero.
func isoTime(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}

func toPostResponses(posts []models.Post) []PostResponse {
	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		comments := make([]CommentResponse, 0, len(post.Comments))
		for _, comment := range post.Comments {
			comments = append(comments, CommentResponse{
				ID:            comment.CommentID,
				PostID:        comment.PostID,
				UserID:        comment.CreatorID,
				UserFirstName: comment.CreatorFirstName,
				UserLastName:  comment.CreatorLastName,
				Text:          comment.Text,
				CreationTime:  isoTime(comment.CreatedAt),
			})
		}

		response = append(response, PostResponse{
			ID:            post.PostID,
			UserID:        post.AuthorID,
			UserFirstName: post.AuthorFirstName,
			UserLastName:  post.AuthorLastName,
			Text:          post.Text,
			CreationTime:  isoTime(post.CreatedAt),
			Comments:      comments,
		})
	}
	return response
}

func (h *Handlers) GetGlobal(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); !ok {
		writeJSONError(w, notLoggedInMessage, http.StatusUnauthorized)
		return
	}

	h.writeGlobal(w, r)
}

func (h *Handlers) GetFollower(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		writeJSONError(w, notLoggedInMessage, http.StatusUnauthorized)
		return
	}

	h.writeFollower(w, r, identity.UserID)
}

func (h *Handlers) writeGlobal(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GlobalPosts(r.Context())
	if err != nil {
		jsonServerError(w, err)
		return
	}
	writeSuccess(w, toPostResponses(posts), http.StatusOK)
}

func (h *Handlers) writeFollower(w http.ResponseWriter, r *http.Request, userID int64) {
	posts, err := h.PostService.FollowerPosts(r.Context(), userID)
	if err != nil {
		jsonServerError(w, err)
		return
	}
	writeSuccess(w, toPostResponses(posts), http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		writeJSONError(w, notLoggedInMessage, http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodPost {
		writeJSONError(w, postRequiredMessage, http.StatusMethodNotAllowed)
		return
	}

	if err := parseCommentForm(r); err != nil {
		writeJSONError(w, emptyCommentMessage, http.StatusBadRequest)
		return
	}

	form := CommentForm{
		PostID: r.PostForm.Get("post_id"),
		Text:   r.PostForm.Get("comment_text"),
	}
	if err := h.Validate.Struct(form); err != nil {
		writeJSONError(w, emptyCommentMessage, http.StatusBadRequest)
		return
	}

	notFound := fmt.Sprintf("Post with id=%s does not exist.", form.PostID)

	postID, err := strconv.ParseInt(form.PostID, 10, 64)
	if err != nil {
		writeJSONError(w, notFound, http.StatusBadRequest)
		return
	}

	_, err = h.CommentService.AddComment(r.Context(), repository.CreateCommentRequest{
		PostID:    postID,
		CreatorID: identity.UserID,
		Text:      form.Text,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSONError(w, notFound, http.StatusBadRequest)
			return
		}
		jsonServerError(w, err)
		return
	}

	if _, follower := r.PostForm["follower"]; follower {
		h.writeFollower(w, r, identity.UserID)
		return
	}
	h.writeGlobal(w, r)
}

// maxCommentFormMemory caps the multipart bytes held in memory for a comment.
const maxCommentFormMemory = 1 << 20

// parseCommentForm accepts both urlencoded and multipart bodies.
func parseCommentForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxCommentFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}
