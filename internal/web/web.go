package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"socialnetwork/internal/models"
	"socialnetwork/internal/session"
)

// Page is the data every template receives.
type Page struct {
	Identity      *session.Identity
	CSRFField     template.HTML
	CSRFToken     string
	Errors        []string
	Form          map[string]string
	Next          string
	Posts         []models.Post
	Follower      bool
	Profile       *models.ProfileView
	MaxUploadSize int64
}

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"login",
	"register",
	"global_stream",
	"follower_stream",
	"my_profile",
	"other_profile",
}

var funcs = template.FuncMap{
	"naturaltime": func(t time.Time) string {
		return humanize.Time(t)
	},
	"bytes": func(n int64) string {
		if n < 0 {
			n = 0
		}
		return humanize.Bytes(uint64(n))
	},
}

// Renderer holds one parsed template set per page, each layered over base.html.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/posts.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, page string, data *Page) error {
	if data.Form == nil {
		data.Form = map[string]string{}
	}
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}
