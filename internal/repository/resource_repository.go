package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"universo/internal/model"
)

// ResourceRepository manages the shared resource directory.
type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// List returns resources newest first. Admin-only entries are included only
// when includeRestricted is set.
func (r *ResourceRepository) List(ctx context.Context, includeRestricted bool) ([]model.Resource, error) {
	var resources []model.Resource
	q := r.db.WithContext(ctx).Preload("Sector")
	if !includeRestricted {
		q = q.Where("visibility = ?", model.VisibilityPublic)
	}
	if err := q.Order("created_at DESC, id DESC").Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uint) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).Preload("Sector").First(&resource, id).Error; err != nil {
		return nil, notFound("find resource", err)
	}
	return &resource, nil
}

func (r *ResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(resource).Error; err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) Save(ctx context.Context, resource *model.Resource) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(resource).Error; err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Resource{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete resource: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
