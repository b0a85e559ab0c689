package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article_board/internal/domain"
	"article_board/testdata/utils"
)

func TestArticleStore_InsertAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	store := NewArticleStore()

	var last int64
	for i := 0; i < 5; i++ {
		created, err := store.Insert(ctx, &domain.Article{Title: utils.Ptr("t")})
		require.NoError(t, err)
		assert.Greater(t, created.ID, last)
		last = created.ID
	}
}

func TestArticleStore_IDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	store := NewArticleStore()

	first, err := store.Insert(ctx, &domain.Article{})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, first))

	second, err := store.Insert(ctx, &domain.Article{})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestArticleStore_InsertIgnoresCallerID(t *testing.T) {
	ctx := context.Background()
	store := NewArticleStore()

	created, err := store.Insert(ctx, &domain.Article{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestArticleStore_FindMissing(t *testing.T) {
	store := NewArticleStore()

	found, err := store.Find(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestArticleStore_FindAllOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewArticleStore()

	for _, title := range []string{"A", "B", "C"} {
		_, err := store.Insert(ctx, &domain.Article{Title: utils.Ptr(title)})
		require.NoError(t, err)
	}

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, title := range []string{"A", "B", "C"} {
		assert.Equal(t, int64(i+1), all[i].ID)
		assert.Equal(t, title, *all[i].Title)
	}
}

func TestArticleStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewArticleStore()

	input := &domain.Article{Title: utils.Ptr("A")}
	created, err := store.Insert(ctx, input)
	require.NoError(t, err)

	*input.Title = "mutated input"
	*created.Title = "mutated result"

	found, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", *found.Title)
}

func TestArticleStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewArticleStore()

	created, err := store.Insert(ctx, &domain.Article{Title: utils.Ptr("A"), Content: utils.Ptr("B")})
	require.NoError(t, err)

	created.Title = utils.Ptr("C")
	require.NoError(t, store.Update(ctx, created))

	found, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", *found.Title)
	assert.Equal(t, "B", *found.Content)

	require.NoError(t, store.Update(ctx, &domain.Article{ID: 99}))
	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestArticleStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store := NewArticleStore()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := store.Insert(ctx, &domain.Article{})
			if err == nil {
				ids <- created.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestTransactionManager_PropagatesError(t *testing.T) {
	tm := NewTransactionManager()
	want := errors.New("boom")

	err := tm.WithTransaction(context.Background(), func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)

	called := false
	err = tm.WithTransaction(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
