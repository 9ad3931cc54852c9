package repositories

import (
	"context"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetChildren(ctx context.Context, parentID int64) ([]*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

type categoryRepository struct {
	*BaseRepository
}

func NewCategoryRepository(db *bun.DB) CategoryRepository {
	return &categoryRepository{BaseRepository: NewBaseRepository(db)}
}

// Create inserts a category, deriving its materialized path from the parent.
// Deriving from the stored parent path keeps the tree acyclic: a node can
// only ever extend an existing ancestry.
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return &ValidationError{Entity: "category", Field: "name", Reason: "must not be empty"}
	}

	category.Path = "/" + category.Name
	if category.ParentID != nil {
		parent, err := r.GetByID(ctx, *category.ParentID)
		if err != nil {
			return err
		}
		category.Path = parent.Path + "/" + category.Name
	}
	category.CreatedAt = time.Now()

	_, err := r.GetDB().NewInsert().Model(category).Exec(ctx)
	return r.HandleError("create", "category", err)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	category := new(models.Category)
	err := r.GetDB().NewSelect().
		Model(category).
		Where("category_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "category", id, err)
	}
	return category, nil
}

func (r *categoryRepository) GetChildren(ctx context.Context, parentID int64) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.GetDB().NewSelect().
		Model(&categories).
		Where("parent_category_id = ?", parentID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_children", "category", err)
	}
	return categories, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.GetDB().NewSelect().
		Model(&categories).
		Order("path ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "category", err)
	}
	return categories, nil
}
