package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"article_board/internal/domain"
)

// decodeForm reads an ArticleForm from a posted HTML form. A field that was
// not submitted stays nil; a submitted empty field becomes "".
func decodeForm(r *http.Request) (domain.ArticleForm, error) {
	var form domain.ArticleForm
	if err := r.ParseForm(); err != nil {
		return form, fmt.Errorf("parse form: %w", err)
	}

	if values, ok := r.PostForm["id"]; ok && strings.TrimSpace(values[0]) != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 64)
		if err != nil {
			return form, fmt.Errorf("invalid id %q", values[0])
		}
		form.ID = &id
	}
	if values, ok := r.PostForm["title"]; ok {
		title := values[0]
		form.Title = &title
	}
	if values, ok := r.PostForm["content"]; ok {
		content := values[0]
		form.Content = &content
	}

	return form, nil
}
