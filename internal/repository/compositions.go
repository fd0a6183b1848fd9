package repository

import (
	"context"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parfumerie/models"
)

// Compositions owns the only multi-row write of the studio: a composition and
// its detail lines are stored together or not at all.
type Compositions struct {
	db           *gorm.DB
	enforceTotal bool
	created      func(models.Composition)
}

type CompositionOption func(*Compositions)

// WithTotalEnforcement makes Create reject compositions that are not 50 or
// 100 ml or whose details disagree with the declared total.
func WithTotalEnforcement(enabled bool) CompositionOption {
	return func(r *Compositions) {
		r.enforceTotal = enabled
	}
}

// OnCreated registers a callback invoked after a composition was committed.
func OnCreated(fn func(models.Composition)) CompositionOption {
	return func(r *Compositions) {
		r.created = fn
	}
}

func NewCompositions(db *gorm.DB, opts ...CompositionOption) *Compositions {
	r := &Compositions{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewComposition is the input of Create.
type NewComposition struct {
	CustomerID  uint
	Name        string
	TotalAmount float64
	Details     []NewDetail
}

type NewDetail struct {
	FragranceID uint
	Amount      float64
}

type CompositionUpdate struct {
	Name        string
	TotalAmount float64
}

// DetailView is a detail row joined with the current name and code of its
// fragrance.
type DetailView struct {
	ID            uint    `gorm:"column:detail_id" json:"detail_id"`
	CompositionID uint    `gorm:"column:composition_id" json:"composition_id"`
	FragranceID   uint    `gorm:"column:fragrance_id" json:"fragrance_id"`
	Amount        float64 `gorm:"column:amount" json:"amount"`
	FragranceName string  `gorm:"column:fragrance_name" json:"fragrance_name"`
	FragranceCode int     `gorm:"column:fragrance_code" json:"fragrance_code"`
}

func (r *Compositions) ListAll(ctx context.Context) ([]models.Composition, error) {
	var compositions []models.Composition
	err := r.newest(ctx).Find(&compositions).Error
	return compositions, err
}

func (r *Compositions) ListByCustomer(ctx context.Context, customerID uint) ([]models.Composition, error) {
	var compositions []models.Composition
	err := r.newest(ctx).Where("customer_id = ?", customerID).Find(&compositions).Error
	return compositions, err
}

func (r *Compositions) newest(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Order("created_at desc").
		Order("composition_id desc")
}

func (r *Compositions) Get(ctx context.Context, id uint) (models.Composition, error) {
	var composition models.Composition
	if err := r.db.WithContext(ctx).First(&composition, id).Error; err != nil {
		return models.Composition{}, notFound(err)
	}
	return composition, nil
}

func (r *Compositions) Details(ctx context.Context, compositionID uint) ([]DetailView, error) {
	views := make([]DetailView, 0)
	err := r.db.WithContext(ctx).
		Table("composition_details").
		Select("composition_details.detail_id, composition_details.composition_id, composition_details.fragrance_id, " +
			"composition_details.amount, fragrances.name AS fragrance_name, fragrances.code AS fragrance_code").
		Joins("JOIN fragrances ON fragrances.fragrance_id = composition_details.fragrance_id").
		Where("composition_details.composition_id = ?", compositionID).
		Order("composition_details.detail_id asc").
		Scan(&views).Error
	return views, err
}

func (r *Compositions) RawDetails(ctx context.Context, compositionID uint) ([]models.CompositionDetail, error) {
	details := make([]models.CompositionDetail, 0)
	err := r.db.WithContext(ctx).
		Where("composition_id = ?", compositionID).
		Order("detail_id asc").
		Find(&details).Error
	return details, err
}

// Create inserts the composition and then each detail in order inside one
// transaction. Any failing insert rolls back the composition as well. Store
// errors are returned unchanged.
func (r *Compositions) Create(ctx context.Context, input NewComposition) (models.Composition, error) {
	if r.enforceTotal && !totalMatches(input) {
		return models.Composition{}, ErrInvalidTotal
	}

	composition := models.Composition{
		CustomerID:  input.CustomerID,
		Name:        input.Name,
		TotalAmount: input.TotalAmount,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&composition).Error; err != nil {
			return err
		}

		composition.Details = make([]models.CompositionDetail, 0, len(input.Details))
		for _, line := range input.Details {
			detail := models.CompositionDetail{
				CompositionID: composition.ID,
				FragranceID:   line.FragranceID,
				Amount:        line.Amount,
			}
			if err := tx.Omit(clause.Associations).Create(&detail).Error; err != nil {
				return err
			}
			composition.Details = append(composition.Details, detail)
		}
		return nil
	})
	if err != nil {
		return models.Composition{}, err
	}

	if r.created != nil {
		r.created(composition)
	}
	return composition, nil
}

func totalMatches(input NewComposition) bool {
	if !models.ValidTotal(input.TotalAmount) {
		return false
	}
	var sum float64
	for _, line := range input.Details {
		sum += line.Amount
	}
	return math.Abs(sum-input.TotalAmount) < 1e-9
}

// Update changes name and total of a composition. Its details are not
// re-validated against the new total.
func (r *Compositions) Update(ctx context.Context, id uint, update CompositionUpdate) (models.Composition, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Composition{}).
		Where("composition_id = ?", id).
		Updates(map[string]any{
			"name":         update.Name,
			"total_amount": update.TotalAmount,
		})
	if result.Error != nil {
		return models.Composition{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Composition{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a composition together with its details.
func (r *Compositions) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("composition_id = ?", id).Delete(&models.CompositionDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Composition{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// AddDetail appends one line to an existing composition without checking the
// composition total.
func (r *Compositions) AddDetail(ctx context.Context, compositionID uint, line NewDetail) (models.CompositionDetail, error) {
	detail := models.CompositionDetail{
		CompositionID: compositionID,
		FragranceID:   line.FragranceID,
		Amount:        line.Amount,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&detail).Error; err != nil {
		return models.CompositionDetail{}, err
	}
	return detail, nil
}

func (r *Compositions) UpdateDetail(ctx context.Context, detailID uint, amount float64) (models.CompositionDetail, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CompositionDetail{}).
		Where("detail_id = ?", detailID).
		Update("amount", amount)
	if result.Error != nil {
		return models.CompositionDetail{}, result.Error
	}

	var detail models.CompositionDetail
	if err := r.db.WithContext(ctx).First(&detail, detailID).Error; err != nil {
		return models.CompositionDetail{}, notFound(err)
	}
	return detail, nil
}

func (r *Compositions) DeleteDetail(ctx context.Context, detailID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.CompositionDetail{}, detailID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// OrphanDetail is a detail row whose fragrance no longer exists.
type OrphanDetail struct {
	DetailID      uint `gorm:"column:detail_id"`
	CompositionID uint `gorm:"column:composition_id"`
	FragranceID   uint `gorm:"column:fragrance_id"`
}

// Orphans lists detail rows referencing missing fragrances. Databases created
// with foreign keys disabled can contain them.
func (r *Compositions) Orphans(ctx context.Context) ([]OrphanDetail, error) {
	var rows []OrphanDetail
	err := r.db.WithContext(ctx).
		Table("composition_details").
		Select("composition_details.detail_id, composition_details.composition_id, composition_details.fragrance_id").
		Joins("LEFT JOIN fragrances ON fragrances.fragrance_id = composition_details.fragrance_id").
		Where("fragrances.fragrance_id IS NULL").
		Order("composition_details.detail_id asc").
		Scan(&rows).Error
	return rows, err
}

// InvalidComposition is a composition whose detail volumes do not add up to a
// bottle size.
type InvalidComposition struct {
	CompositionID uint    `gorm:"column:composition_id"`
	CustomerID    uint    `gorm:"column:customer_id"`
	Name          string  `gorm:"column:name"`
	TotalAmount   float64 `gorm:"column:total_amount"`
	Volume        float64 `gorm:"column:volume"`
}

func (r *Compositions) Invalid(ctx context.Context) ([]InvalidComposition, error) {
	var rows []InvalidComposition
	err := r.db.WithContext(ctx).
		Table("compositions").
		Select("compositions.composition_id, compositions.customer_id, compositions.name, compositions.total_amount, " +
			"COALESCE(SUM(composition_details.amount), 0) AS volume").
		Joins("LEFT JOIN composition_details ON composition_details.composition_id = compositions.composition_id").
		Group("compositions.composition_id").
		Having("COALESCE(SUM(composition_details.amount), 0) NOT IN ?", []float64{models.VolumeSmall, models.VolumeLarge}).
		Order("compositions.composition_id asc").
		Scan(&rows).Error
	return rows, err
}
