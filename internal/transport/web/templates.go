package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"article_board/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "new", "show", "edit"}

var funcs = template.FuncMap{
	// text renders an optional field, nil as empty.
	"text": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// viewData is the model handed to every page. Article may be nil.
type viewData struct {
	Article  *domain.Article
	Articles []domain.Article
	Flash    string
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data viewData) {
	t, ok := h.pages[page]
	if !ok {
		h.logger.Error("unknown page", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("execute template", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
