package models

import (
	"time"

	"github.com/uptrace/bun"
)

type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
	UserTypeBoth   UserType = "both"
)

func (t UserType) Valid() bool {
	return t == UserTypeBuyer || t == UserTypeSeller || t == UserTypeBoth
}

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusClosed    AccountStatus = "closed"
)

func (s AccountStatus) Valid() bool {
	return s == AccountStatusActive || s == AccountStatusSuspended || s == AccountStatusClosed
}

// UserAccount is a marketplace participant. Rating is derived state: it always
// equals the rounded mean of feedback ratings targeting the account, or 0 when
// none exist, and is rewritten only by feedback submission.
type UserAccount struct {
	bun.BaseModel `bun:"table:user_accounts,alias:ua"`

	ID             int64         `bun:"user_id,pk,autoincrement"`
	Username       string        `bun:"username,notnull,unique"`
	Email          string        `bun:"email,notnull,unique"`
	UserType       UserType      `bun:"user_type,notnull"`
	Status         AccountStatus `bun:"account_status,notnull"`
	Rating         float64       `bun:"rating,notnull,default:0"`
	PaymentMethods []string      `bun:"payment_methods,type:jsonb"`
	Phone          string        `bun:"phone"`
	Address        string        `bun:"address"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
