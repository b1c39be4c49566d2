package handlers

import (
	"errors"
	"net/http"

	"socialnetwork/internal/repository"
	"socialnetwork/internal/service"
	"socialnetwork/internal/session"
	"socialnetwork/internal/web"
)

const emptyPostMessage = "You must enter an post to add."

type PostForm struct {
	Text string `validate:"required"`
}

func (h *Handlers) GlobalStream(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(r)

	if r.Method != http.MethodPost {
		h.renderGlobalStream(w, r, page)
		return
	}

	identity, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Malformed form data", http.StatusBadRequest)
		return
	}

	form := PostForm{Text: r.PostForm.Get("text")}
	if err := h.Validate.Struct(form); err != nil {
		page.Errors = []string{emptyPostMessage}
		h.renderGlobalStream(w, r, page)
		return
	}

	_, err := h.PostService.CreatePost(r.Context(), repository.CreatePostRequest{
		AuthorID: identity.UserID,
		Text:     form.Text,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyPost) {
			page.Errors = []string{emptyPostMessage}
			h.renderGlobalStream(w, r, page)
			return
		}
		serverError(w, err)
		return
	}

	http.Redirect(w, r, "/global", http.StatusFound)
}

func (h *Handlers) renderGlobalStream(w http.ResponseWriter, r *http.Request, page *web.Page) {
	posts, err := h.PostService.GlobalStream(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	page.Posts = posts
	h.render(w, "global_stream", page)
}

func (h *Handlers) FollowerStream(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	posts, err := h.PostService.FollowerStream(r.Context(), identity.UserID)
	if err != nil {
		serverError(w, err)
		return
	}

	page := h.newPage(r)
	page.Posts = posts
	page.Follower = true
	h.render(w, "follower_stream", page)
}
