package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"article_board/internal/domain"
)

// ArticleService is the subset of the service layer the REST API drives.
// A nil article with a nil error means the request was rejected or the
// article does not exist.
type ArticleService interface {
	List(ctx context.Context) ([]domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	Create(ctx context.Context, form domain.ArticleForm) (*domain.Article, error)
	Update(ctx context.Context, id int64, form domain.ArticleForm) (*domain.Article, error)
	Delete(ctx context.Context, id int64) (*domain.Article, error)
}

type Handler struct {
	articles ArticleService
	logger   *slog.Logger
}

func NewHandler(articles ArticleService, logger *slog.Logger) *Handler {
	return &Handler{
		articles: articles,
		logger:   logger.With("component", "rest"),
	}
}

// Routes is meant to be mounted under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/hello", h.Hello)

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", h.ListArticles)   // GET /api/articles
		r.Post("/", h.CreateArticle) // POST /api/articles

		r.Route("/{articleID}", func(r chi.Router) {
			r.Use(ArticleIDCtx)
			r.Get("/", h.GetArticle)       // GET /api/articles/1
			r.Patch("/", h.UpdateArticle)  // PATCH /api/articles/1
			r.Delete("/", h.DeleteArticle) // DELETE /api/articles/1
		})
	})

	return r
}

func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "hello world!")
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	if err := render.RenderList(w, r, NewArticleListResponse(articles)); err != nil {
		h.renderError(w, r, err)
	}
}

// GetArticle answers 200 with a JSON null body when the article does not exist.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.articles.Get(r.Context(), articleIDFrom(r.Context()))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if article == nil {
		render.JSON(w, r, nil)
		return
	}

	if err := render.Render(w, r, NewArticleResponse(article)); err != nil {
		h.renderError(w, r, err)
	}
}

// CreateArticle persists the posted article and returns it with its new id.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		_ = render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	created, err := h.articles.Create(r.Context(), data.ArticleForm)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if created == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := render.Render(w, r, NewArticleResponse(created)); err != nil {
		h.renderError(w, r, err)
	}
}

// UpdateArticle applies a partial update. The body must repeat the path id.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	data := &ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		_ = render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	updated, err := h.articles.Update(r.Context(), articleIDFrom(r.Context()), data.ArticleForm)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if updated == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := render.Render(w, r, NewArticleResponse(updated)); err != nil {
		h.renderError(w, r, err)
	}
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.articles.Delete(r.Context(), articleIDFrom(r.Context()))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if deleted == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	render.NoContent(w, r)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	if rerr := render.Render(w, r, ErrInternal(err)); rerr != nil {
		h.logger.Error("render error response", "error", rerr)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("render response", "error", err)
	if rerr := render.Render(w, r, ErrRender(err)); rerr != nil {
		h.logger.Error("render error response", "error", rerr)
	}
}
