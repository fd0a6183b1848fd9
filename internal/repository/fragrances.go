package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"parfumerie/models"
)

type Fragrances struct {
	db *gorm.DB
}

func NewFragrances(db *gorm.DB) *Fragrances {
	return &Fragrances{db: db}
}

// FragranceFields carries the writable columns of a fragrance.
type FragranceFields struct {
	Name        string
	Code        int
	Description string
}

func (r *Fragrances) List(ctx context.Context) ([]models.Fragrance, error) {
	var fragrances []models.Fragrance
	err := r.db.WithContext(ctx).Order("name asc").Find(&fragrances).Error
	return fragrances, err
}

func (r *Fragrances) Get(ctx context.Context, id uint) (models.Fragrance, error) {
	var fragrance models.Fragrance
	if err := r.db.WithContext(ctx).First(&fragrance, id).Error; err != nil {
		return models.Fragrance{}, notFound(err)
	}
	return fragrance, nil
}

// FindByCode returns the first fragrance carrying the catalog code.
func (r *Fragrances) FindByCode(ctx context.Context, code int) (models.Fragrance, error) {
	var fragrance models.Fragrance
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		Order("fragrance_id asc").
		First(&fragrance).Error
	if err != nil {
		return models.Fragrance{}, notFound(err)
	}
	return fragrance, nil
}

// Search matches term as a case-insensitive substring of name or description.
func (r *Fragrances) Search(ctx context.Context, term string) ([]models.Fragrance, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var fragrances []models.Fragrance
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Or("LOWER(description) LIKE ?", pattern).
		Order("name asc").
		Find(&fragrances).Error
	return fragrances, err
}

func (r *Fragrances) Create(ctx context.Context, fields FragranceFields) (models.Fragrance, error) {
	fragrance := models.Fragrance{
		Name:        fields.Name,
		Code:        fields.Code,
		Description: fields.Description,
	}
	if err := r.db.WithContext(ctx).Create(&fragrance).Error; err != nil {
		return models.Fragrance{}, err
	}
	return fragrance, nil
}

func (r *Fragrances) Update(ctx context.Context, id uint, fields FragranceFields) (models.Fragrance, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Fragrance{}).
		Where("fragrance_id = ?", id).
		Updates(map[string]any{
			"name":        fields.Name,
			"code":        fields.Code,
			"description": fields.Description,
		})
	if result.Error != nil {
		return models.Fragrance{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Fragrance{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a fragrance. Detail rows that still reference it make the
// store reject the delete.
func (r *Fragrances) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Fragrance{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
