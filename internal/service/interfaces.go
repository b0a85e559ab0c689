package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"article_board/internal/domain"
)

// ArticleStore owns the authoritative copy of every article.
// Find returns nil, nil when no article has the given id.
type ArticleStore interface {
	Insert(ctx context.Context, article *domain.Article) (*domain.Article, error)
	Find(ctx context.Context, id int64) (*domain.Article, error)
	FindAll(ctx context.Context) ([]domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, article *domain.Article) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event domain.ArticleEvent) error
	Close() error
}
