package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Feedback is a post-transaction rating from one party to another, at most
// one per (transaction, author) pair.
type Feedback struct {
	bun.BaseModel `bun:"table:feedback,alias:f"`

	ID            int64     `bun:"feedback_id,pk,autoincrement"`
	TransactionID int64     `bun:"transaction_id,notnull,unique:feedback_transaction_author"`
	AuthorID      int64     `bun:"author_user_id,notnull,unique:feedback_transaction_author"`
	TargetID      int64     `bun:"target_user_id,notnull"`
	Rating        int       `bun:"rating,notnull"`
	Sentiment     Sentiment `bun:"sentiment,notnull"`
	Comment       string    `bun:"comment"`
	Reciprocated  bool      `bun:"reciprocated,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
