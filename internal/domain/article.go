package domain

// Article is the persisted entity. ID is zero until the store assigns one.
type Article struct {
	ID      int64   `db:"id" json:"id"`
	Title   *string `db:"title" json:"title"`
	Content *string `db:"content" json:"content"`
}

// Patch copies every non-nil field of draft onto a. The identifier is never touched.
func (a *Article) Patch(draft Article) {
	if draft.Title != nil {
		a.Title = draft.Title
	}
	if draft.Content != nil {
		a.Content = draft.Content
	}
}

// ArticleForm carries article data in and out of a single request.
// A nil field means "leave unchanged"; an empty string is a value.
type ArticleForm struct {
	ID      *int64  `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (f ArticleForm) ToEntity() Article {
	var a Article
	if f.ID != nil {
		a.ID = *f.ID
	}
	a.Title = f.Title
	a.Content = f.Content
	return a
}

// HasID reports whether the form references an existing article.
func (f ArticleForm) HasID() bool {
	return f.ID != nil
}
