package domain

import "time"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ArticleEvent describes a completed write on an article.
type ArticleEvent struct {
	Action    Action    `json:"action"`
	Article   Article   `json:"article"`
	Timestamp time.Time `json:"timestamp"`
}
