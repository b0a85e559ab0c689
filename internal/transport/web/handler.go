package web

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"article_board/internal/domain"
)

const deletedMessage = "Article deleted."

type ArticleService interface {
	List(ctx context.Context) ([]domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	Create(ctx context.Context, form domain.ArticleForm) (*domain.Article, error)
	Update(ctx context.Context, id int64, form domain.ArticleForm) (*domain.Article, error)
	Delete(ctx context.Context, id int64) (*domain.Article, error)
}

// Handler serves the server-rendered article pages.
type Handler struct {
	articles ArticleService
	pages    map[string]*template.Template
	logger   *slog.Logger
}

func NewHandler(articles ArticleService, logger *slog.Logger) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Handler{
		articles: articles,
		pages:    pages,
		logger:   logger.With("component", "web"),
	}, nil
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/articles", http.StatusFound)
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", h.Index)
		r.Get("/new", h.New)
		r.Post("/create", h.Create)
		r.Post("/update", h.Update)
		r.Get("/{articleID}", h.Show)
		r.Get("/{articleID}/edit", h.Edit)
		r.Get("/{articleID}/delete", h.Delete)
	})

	return r
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "index", viewData{
		Articles: articles,
		Flash:    popFlash(w, r),
	})
}

func (h *Handler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "new", viewData{})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.articles.Create(r.Context(), form)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if created == nil {
		http.Error(w, "article could not be created", http.StatusBadRequest)
		return
	}

	h.logger.Info("article created from form", "id", created.ID)
	http.Redirect(w, r, articlePath(created.ID), http.StatusFound)
}

// Show renders the detail page. A missing article still renders, with an
// empty model.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	h.renderArticle(w, r, "show")
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	h.renderArticle(w, r, "edit")
}

// Update takes the id from the form body and redirects to the detail page
// whether or not the update was accepted.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if form.ID == nil {
		http.Error(w, "missing article id", http.StatusBadRequest)
		return
	}

	updated, err := h.articles.Update(r.Context(), *form.ID, form)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if updated == nil {
		h.logger.Warn("article update not applied", "id", *form.ID)
	}

	http.Redirect(w, r, articlePath(*form.ID), http.StatusFound)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.articleID(w, r)
	if !ok {
		return
	}

	deleted, err := h.articles.Delete(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if deleted != nil {
		setFlash(w, deletedMessage)
	}

	http.Redirect(w, r, "/articles", http.StatusFound)
}

func (h *Handler) renderArticle(w http.ResponseWriter, r *http.Request, page string) {
	id, ok := h.articleID(w, r)
	if !ok {
		return
	}

	article, err := h.articles.Get(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, page, viewData{Article: article})
}

func (h *Handler) articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "articleID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid article id %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("page request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func articlePath(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}
