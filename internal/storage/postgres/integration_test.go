//go:build integration

package postgres

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"article_board/internal/domain"
	"article_board/migrations"
	"article_board/testdata/utils"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.Require().NoError(Migrate(db.DB, migrations.FS, logger))
	// second run is a no-op
	s.Require().NoError(Migrate(db.DB, migrations.FS, logger))
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM articles")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestArticleStore_InsertAndFind() {
	store := NewArticleStore(s.db)

	created, err := store.Insert(s.ctx, &domain.Article{
		Title:   utils.Ptr("Test Article"),
		Content: utils.Ptr("Test Content"),
	})
	s.NoError(err)
	s.Greater(created.ID, int64(0))

	found, err := store.Find(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(created, found)
}

func (s *PostgresIntegrationSuite) TestArticleStore_NullFieldsRoundTrip() {
	store := NewArticleStore(s.db)

	created, err := store.Insert(s.ctx, &domain.Article{Title: utils.Ptr("")})
	s.NoError(err)

	found, err := store.Find(s.ctx, created.ID)
	s.NoError(err)
	s.Require().NotNil(found.Title)
	s.Equal("", *found.Title)
	s.Nil(found.Content)
}

func (s *PostgresIntegrationSuite) TestArticleStore_IDsIncreaseAndAreNotReused() {
	store := NewArticleStore(s.db)

	first, err := store.Insert(s.ctx, &domain.Article{Title: utils.Ptr("A")})
	s.NoError(err)
	s.NoError(store.Delete(s.ctx, first))

	second, err := store.Insert(s.ctx, &domain.Article{Title: utils.Ptr("B")})
	s.NoError(err)
	s.Greater(second.ID, first.ID)
}

func (s *PostgresIntegrationSuite) TestArticleStore_FindAllOrdered() {
	store := NewArticleStore(s.db)

	for _, title := range []string{"A", "B", "C"} {
		_, err := store.Insert(s.ctx, &domain.Article{Title: utils.Ptr(title)})
		s.NoError(err)
	}

	all, err := store.FindAll(s.ctx)
	s.NoError(err)
	s.Require().Len(all, 3)
	s.Equal("A", *all[0].Title)
	s.Equal("B", *all[1].Title)
	s.Equal("C", *all[2].Title)
	s.Less(all[0].ID, all[1].ID)
	s.Less(all[1].ID, all[2].ID)
}

func (s *PostgresIntegrationSuite) TestArticleStore_Update() {
	store := NewArticleStore(s.db)

	created, err := store.Insert(s.ctx, &domain.Article{Title: utils.Ptr("A"), Content: utils.Ptr("B")})
	s.NoError(err)

	created.Title = utils.Ptr("C")
	s.NoError(store.Update(s.ctx, created))

	found, err := store.Find(s.ctx, created.ID)
	s.NoError(err)
	s.Equal("C", *found.Title)
	s.Equal("B", *found.Content)
}

func (s *PostgresIntegrationSuite) TestArticleStore_DeleteThenFind() {
	store := NewArticleStore(s.db)

	created, err := store.Insert(s.ctx, &domain.Article{Title: utils.Ptr("A")})
	s.NoError(err)
	s.NoError(store.Delete(s.ctx, created))

	found, err := store.Find(s.ctx, created.ID)
	s.NoError(err)
	s.Nil(found)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	store := NewArticleStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		_, err := store.Insert(ctx, &domain.Article{Title: utils.Ptr("Transaction Article")})
		return err
	})
	s.NoError(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM articles WHERE title = $1", "Transaction Article")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	store := NewArticleStore(s.db)

	_, err := store.Insert(s.ctx, &domain.Article{Title: utils.Ptr("Pre-existing")})
	s.NoError(err)

	err = tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := store.Insert(ctx, &domain.Article{Title: utils.Ptr("Should Rollback")}); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM articles WHERE title = $1", "Should Rollback")
	s.NoError(err)
	s.Equal(0, count)

	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM articles WHERE title = $1", "Pre-existing")
	s.NoError(err)
	s.Equal(1, count)
}
