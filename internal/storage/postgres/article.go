package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"article_board/internal/domain"
)

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Insert lets the database assign the id (BIGSERIAL), so the caller's ID is ignored.
func (s *ArticleStore) Insert(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	query := `
		INSERT INTO articles (title, content)
		VALUES ($1, $2)
		RETURNING id, title, content`

	var created domain.Article
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		article.Title,
		article.Content,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}

	return &created, nil
}

func (s *ArticleStore) Find(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	query := `SELECT id, title, content FROM articles WHERE id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) FindAll(ctx context.Context) ([]domain.Article, error) {
	articles := []domain.Article{}
	query := `SELECT id, title, content FROM articles ORDER BY id`

	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &articles, query); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleStore) Update(ctx context.Context, article *domain.Article) error {
	query := `UPDATE articles SET title = $1, content = $2 WHERE id = $3`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		article.Title,
		article.Content,
		article.ID,
	)
	return err
}

func (s *ArticleStore) Delete(ctx context.Context, article *domain.Article) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM articles WHERE id = $1",
		article.ID,
	)
	return err
}

func (s *ArticleStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
