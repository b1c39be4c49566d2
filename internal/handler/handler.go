package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"socialnetwork/internal/config"
	"socialnetwork/internal/service"
	"socialnetwork/internal/session"
	"socialnetwork/internal/web"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	ProfileService service.ProfileService
	TablesService  service.TablesService
	Renderer       *web.Renderer
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, renderer *web.Renderer, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		ProfileService: service.Profile,
		TablesService:  service.Tables,
		Renderer:       renderer,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

// newPage fills in what every template needs about the request.
func (h *Handlers) newPage(r *http.Request) *web.Page {
	identity, _ := session.FromContext(r.Context())
	return &web.Page{
		Identity:      identity,
		CSRFField:     csrf.TemplateField(r),
		CSRFToken:     csrf.Token(r),
		Form:          map[string]string{},
		MaxUploadSize: h.Cfg.MaxUploadSize,
	}
}

// render buffers the page so a template failure never leaves half a page on the wire.
func (h *Handlers) render(w http.ResponseWriter, page string, data *web.Page) {
	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, page, data); err != nil {
		log.Printf("Failed to render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to write %s: %v", page, err)
	}
}

var fieldLabels = map[string]string{
	"Username":        "Username",
	"Password":        "Password",
	"ConfirmPassword": "Confirm password",
	"Email":           "E-mail",
	"FirstName":       "First name",
	"LastName":        "Last name",
	"Bio":             "Bio",
	"Text":            "Text",
}

// formErrors turns validator output into messages for the form page.
func formErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}

		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required.", label))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters.", label, fe.Param()))
		case "email":
			messages = append(messages, "Enter a valid email address.")
		case "eqfield":
			messages = append(messages, "Passwords did not match.")
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid.", label))
		}
	}

	return messages
}

// safeRedirect accepts only local absolute paths.
func safeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
