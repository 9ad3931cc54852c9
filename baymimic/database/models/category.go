package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Category is a node in the product taxonomy. The tree is kept acyclic by the
// repository (path is recomputed from the parent on insert), not by a database
// constraint.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID       int64  `bun:"category_id,pk,autoincrement"`
	Name     string `bun:"name,notnull"`
	ParentID *int64 `bun:"parent_category_id"`
	// Path is the materialized ancestry, e.g. "/Electronics/Phones".
	Path       string         `bun:"path,notnull"`
	Attributes map[string]any `bun:"attributes,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
