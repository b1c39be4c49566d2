package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"socialnetwork/internal/repository"
	"socialnetwork/internal/session"
)

type LoginForm struct {
	Username string `validate:"required,max=20"`
	Password string `validate:"required,max=200"`
}

type RegisterForm struct {
	Username        string `validate:"required,max=20"`
	Password        string `validate:"required,max=200"`
	ConfirmPassword string `validate:"required,max=200,eqfield=Password"`
	Email           string `validate:"required,email,max=50"`
	FirstName       string `validate:"required,max=20"`
	LastName        string `validate:"required,max=20"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(r)

	if r.Method == http.MethodGet {
		if _, ok := session.FromContext(r.Context()); ok {
			h.renderGlobalStream(w, r, page)
			return
		}
		page.Next = r.URL.Query().Get("next")
		h.render(w, "login", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Malformed form data", http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	page.Form["username"] = form.Username
	page.Next = r.PostForm.Get("next")

	if err := h.Validate.Struct(form); err != nil {
		page.Errors = formErrors(err)
		h.render(w, "login", page)
		return
	}

	user, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			page.Errors = []string{"Invalid username/password"}
			h.render(w, "login", page)
			return
		}
		serverError(w, err)
		return
	}

	token, expiresAt, err := h.AuthService.StartSession(r.Context(), user)
	if err != nil {
		serverError(w, err)
		return
	}

	h.setSessionCookie(w, token, expiresAt)
	http.Redirect(w, r, safeRedirect(page.Next, "/global"), http.StatusFound)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(r)

	if r.Method == http.MethodGet {
		h.render(w, "register", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Malformed form data", http.StatusBadRequest)
		return
	}

	form := RegisterForm{
		Username:        r.PostForm.Get("username"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
		Email:           r.PostForm.Get("email"),
		FirstName:       r.PostForm.Get("first_name"),
		LastName:        r.PostForm.Get("last_name"),
	}
	page.Form["username"] = form.Username
	page.Form["email"] = form.Email
	page.Form["first_name"] = form.FirstName
	page.Form["last_name"] = form.LastName

	if err := h.Validate.Struct(form); err != nil {
		page.Errors = formErrors(err)
		h.render(w, "register", page)
		return
	}

	user, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			page.Errors = []string{"Username is already taken."}
			h.render(w, "register", page)
			return
		}
		serverError(w, err)
		return
	}

	token, expiresAt, err := h.AuthService.StartSession(r.Context(), user)
	if err != nil {
		serverError(w, err)
		return
	}

	h.setSessionCookie(w, token, expiresAt)
	http.Redirect(w, r, "/global", http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.Cfg.Session.CookieName); err == nil {
		if err := h.AuthService.EndSession(r.Context(), cookie.Value); err != nil {
			log.Printf("Failed to end session: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.Cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.Cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
