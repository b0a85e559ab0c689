package memory

import (
	"context"
	"sort"
	"sync"

	"article_board/internal/domain"
)

// ArticleStore keeps articles in process memory. Identifiers start at 1 and
// are never reused, even after a delete.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[int64]domain.Article
	lastID   int64
}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{articles: make(map[int64]domain.Article)}
}

func (s *ArticleStore) Insert(_ context.Context, article *domain.Article) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	stored := clone(*article)
	stored.ID = s.lastID
	s.articles[stored.ID] = stored

	created := clone(stored)
	return &created, nil
}

func (s *ArticleStore) Find(_ context.Context, id int64) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.articles[id]
	if !ok {
		return nil, nil
	}

	found := clone(stored)
	return &found, nil
}

func (s *ArticleStore) FindAll(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		result = append(result, clone(a))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Update overwrites the stored record. Unknown ids are ignored.
func (s *ArticleStore) Update(_ context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[article.ID]; ok {
		s.articles[article.ID] = clone(*article)
	}
	return nil
}

func (s *ArticleStore) Delete(_ context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.articles, article.ID)
	return nil
}

// Ping always succeeds; it lets the health check treat both stores alike.
func (s *ArticleStore) Ping(_ context.Context) error {
	return nil
}

func clone(a domain.Article) domain.Article {
	out := domain.Article{ID: a.ID}
	if a.Title != nil {
		title := *a.Title
		out.Title = &title
	}
	if a.Content != nil {
		content := *a.Content
		out.Content = &content
	}
	return out
}
