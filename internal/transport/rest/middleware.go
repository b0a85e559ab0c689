package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ctxKey int

const articleIDKey ctxKey = iota

// ArticleIDCtx parses the {articleID} URL parameter and stores it on the
// request context. Anything that is not an integer is a 400.
func ArticleIDCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "articleID")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			_ = render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid article id %q", raw)))
			return
		}

		ctx := context.WithValue(r.Context(), articleIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func articleIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(articleIDKey).(int64)
	return id
}
