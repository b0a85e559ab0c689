package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"article_board/internal/domain"
	"article_board/internal/metrics"
)

// ArticleService enforces the article lifecycle rules on top of an ArticleStore.
//
// Every precondition failure (unknown id, id supplied on create, id mismatch on
// update) is reported as a nil article with a nil error. A non-nil error always
// comes from the store.
type ArticleService struct {
	articles  ArticleStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

func NewArticleService(
	articles ArticleStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "article_service"),
	}
}

// List returns all articles in ascending id order.
func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	s.logger.Debug("list articles")

	articles, err := s.articles.FindAll(ctx)
	if err != nil {
		metrics.ObserveArticleOperation("list", metrics.ResultError)
		return nil, fmt.Errorf("find articles: %w", err)
	}

	metrics.ObserveArticleOperation("list", metrics.ResultOK)
	return articles, nil
}

// Get returns the article with the given id, or nil if there is none.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	s.logger.Debug("get article", "id", id)

	article, err := s.articles.Find(ctx, id)
	if err != nil {
		metrics.ObserveArticleOperation("get", metrics.ResultError)
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}
	if article == nil {
		metrics.ObserveArticleOperation("get", metrics.ResultAbsent)
		return nil, nil
	}

	metrics.ObserveArticleOperation("get", metrics.ResultOK)
	return article, nil
}

// Create persists a new article. A form that already carries an id is rejected.
func (s *ArticleService) Create(ctx context.Context, form domain.ArticleForm) (*domain.Article, error) {
	if form.HasID() {
		s.logger.Warn("create rejected: id supplied", "form_id", *form.ID)
		metrics.ObserveArticleOperation("create", metrics.ResultRejected)
		return nil, nil
	}

	draft := form.ToEntity()
	created, err := s.articles.Insert(ctx, &draft)
	if err != nil {
		metrics.ObserveArticleOperation("create", metrics.ResultError)
		return nil, fmt.Errorf("insert article: %w", err)
	}

	s.logger.Info("article created", "id", created.ID)
	metrics.ObserveArticleOperation("create", metrics.ResultOK)
	s.publish(ctx, domain.ActionCreated, created)

	return created, nil
}

// Update merges the non-nil fields of form onto the stored article with the
// given id. The form must carry the same id as the path.
func (s *ArticleService) Update(ctx context.Context, id int64, form domain.ArticleForm) (*domain.Article, error) {
	draft := form.ToEntity()
	s.logger.Debug("update article", "id", id)

	var updated *domain.Article
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.articles.Find(txCtx, id)
		if err != nil {
			return fmt.Errorf("find article %d: %w", id, err)
		}
		if target == nil || !form.HasID() || *form.ID != id {
			s.logger.Warn("update rejected", "id", id, "form_has_id", form.HasID(), "found", target != nil)
			return nil
		}

		target.Patch(draft)
		if err := s.articles.Update(txCtx, target); err != nil {
			return fmt.Errorf("update article %d: %w", id, err)
		}

		updated = target
		return nil
	})
	if err != nil {
		metrics.ObserveArticleOperation("update", metrics.ResultError)
		return nil, err
	}
	if updated == nil {
		metrics.ObserveArticleOperation("update", metrics.ResultRejected)
		return nil, nil
	}

	s.logger.Info("article updated", "id", updated.ID)
	metrics.ObserveArticleOperation("update", metrics.ResultOK)
	s.publish(ctx, domain.ActionUpdated, updated)

	return updated, nil
}

// Delete removes the article with the given id and returns its last state.
func (s *ArticleService) Delete(ctx context.Context, id int64) (*domain.Article, error) {
	var deleted *domain.Article
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.articles.Find(txCtx, id)
		if err != nil {
			return fmt.Errorf("find article %d: %w", id, err)
		}
		if target == nil {
			return nil
		}

		if err := s.articles.Delete(txCtx, target); err != nil {
			return fmt.Errorf("delete article %d: %w", id, err)
		}

		deleted = target
		return nil
	})
	if err != nil {
		metrics.ObserveArticleOperation("delete", metrics.ResultError)
		return nil, err
	}
	if deleted == nil {
		s.logger.Warn("delete rejected: not found", "id", id)
		metrics.ObserveArticleOperation("delete", metrics.ResultAbsent)
		return nil, nil
	}

	s.logger.Info("article deleted", "id", deleted.ID)
	metrics.ObserveArticleOperation("delete", metrics.ResultOK)
	s.publish(ctx, domain.ActionDeleted, deleted)

	return deleted, nil
}

// Seed creates the given articles when the store holds none. It returns how
// many were created.
func (s *ArticleService) Seed(ctx context.Context, forms []domain.ArticleForm) (int, error) {
	if len(forms) == 0 {
		return 0, nil
	}

	existing, err := s.articles.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("find articles: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug("seed skipped", "existing", len(existing))
		return 0, nil
	}

	created := 0
	for _, form := range forms {
		article, err := s.Create(ctx, form)
		if err != nil {
			return created, fmt.Errorf("seed article %d: %w", created, err)
		}
		if article != nil {
			created++
		}
	}

	s.logger.Info("seeded articles", "count", created)
	return created, nil
}

func (s *ArticleService) publish(ctx context.Context, action domain.Action, article *domain.Article) {
	if s.publisher == nil {
		return
	}

	event := domain.ArticleEvent{
		Action:    action,
		Article:   *article,
		Timestamp: time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish article event failed", "id", article.ID, "action", action, "error", err)
		metrics.ObserveEventPublished(string(action), false)
		return
	}
	metrics.ObserveEventPublished(string(action), true)
}
