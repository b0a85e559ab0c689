package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"article_board/internal/domain"
)

// ArticleRequest is the request payload for create and update.
// Fields left out of the JSON body stay nil and are not applied on update.
type ArticleRequest struct {
	domain.ArticleForm
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	if a.ID != nil && *a.ID <= 0 {
		return errors.New("id must be positive")
	}
	return nil
}

// ArticleResponse is the response payload for the Article data model.
type ArticleResponse struct {
	*domain.Article
}

func NewArticleResponse(article *domain.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewArticleListResponse(articles []domain.Article) []render.Renderer {
	list := make([]render.Renderer, 0, len(articles))
	for i := range articles {
		list = append(list, NewArticleResponse(&articles[i]))
	}
	return list
}

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrInternal hides the underlying error from the client; it is logged instead.
func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}
