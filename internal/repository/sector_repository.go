package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"universo/internal/model"
)

// SectorRepository manages organizational sectors.
type SectorRepository struct {
	db *gorm.DB
}

func NewSectorRepository(db *gorm.DB) *SectorRepository {
	return &SectorRepository{db: db}
}

// GetOrCreate returns the sector called name, creating it when missing.
func (r *SectorRepository) GetOrCreate(ctx context.Context, name string) (*model.Sector, bool, error) {
	var sector model.Sector
	db := r.db.WithContext(ctx)
	err := db.Where("name = ?", name).First(&sector).Error
	switch {
	case err == nil:
		return &sector, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sector = model.Sector{Name: name}
		if err := db.Create(&sector).Error; err != nil {
			return nil, false, fmt.Errorf("create sector: %w", err)
		}
		return &sector, true, nil
	default:
		return nil, false, fmt.Errorf("find sector: %w", err)
	}
}

func (r *SectorRepository) List(ctx context.Context) ([]model.Sector, error) {
	var sectors []model.Sector
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&sectors).Error; err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	return sectors, nil
}

func (r *SectorRepository) GetByID(ctx context.Context, id uint) (*model.Sector, error) {
	var sector model.Sector
	if err := r.db.WithContext(ctx).First(&sector, id).Error; err != nil {
		return nil, notFound("find sector", err)
	}
	return &sector, nil
}

// Exists reports whether a sector with id is stored.
func (r *SectorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Sector{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count sector: %w", err)
	}
	return count > 0, nil
}

// NameTaken reports whether another sector already uses name.
func (r *SectorRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Sector{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count sector names: %w", err)
	}
	return count > 0, nil
}

func (r *SectorRepository) Create(ctx context.Context, sector *model.Sector) error {
	if err := r.db.WithContext(ctx).Create(sector).Error; err != nil {
		return fmt.Errorf("create sector: %w", err)
	}
	return nil
}

func (r *SectorRepository) Save(ctx context.Context, sector *model.Sector) error {
	if err := r.db.WithContext(ctx).Save(sector).Error; err != nil {
		return fmt.Errorf("update sector: %w", err)
	}
	return nil
}

func (r *SectorRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Sector{}, id).Error; err != nil {
		return fmt.Errorf("delete sector: %w", err)
	}
	return nil
}
