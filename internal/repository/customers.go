package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"parfumerie/models"
)

// fullNameExpr is the SQL rendering of models.Customer.FullName.
const fullNameExpr = "first_name || ' ' || last_name"

type Customers struct {
	db *gorm.DB
}

func NewCustomers(db *gorm.DB) *Customers {
	return &Customers{db: db}
}

// CustomerFields carries the writable columns of a customer.
type CustomerFields struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Street     string
	PostalCode string
	City       string
}

func (f CustomerFields) columns() map[string]any {
	return map[string]any{
		"first_name":  f.FirstName,
		"last_name":   f.LastName,
		"email":       f.Email,
		"phone":       f.Phone,
		"street":      f.Street,
		"postal_code": f.PostalCode,
		"city":        f.City,
	}
}

// CustomerCompositionCount is a customer together with the number of
// compositions whose detail volumes do not add up to a bottle size.
type CustomerCompositionCount struct {
	models.Customer
	InvalidCompositionCount int64 `gorm:"column:invalid_composition_count"`
}

func (r *Customers) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Order("last_name asc").
		Order("first_name asc").
		Find(&customers).Error
	return customers, err
}

func (r *Customers) Get(ctx context.Context, id uint) (models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return models.Customer{}, notFound(err)
	}
	return customer, nil
}

// Search matches term as a case-insensitive substring of the first name, last
// name, email or full name.
func (r *Customers) Search(ctx context.Context, term string) ([]models.Customer, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ?", pattern).
		Or("LOWER(last_name) LIKE ?", pattern).
		Or("LOWER(email) LIKE ?", pattern).
		Or("LOWER("+fullNameExpr+") LIKE ?", pattern).
		Order("last_name asc").
		Order("first_name asc").
		Find(&customers).Error
	return customers, err
}

func (r *Customers) Create(ctx context.Context, fields CustomerFields) (models.Customer, error) {
	customer := models.Customer{
		FirstName:  fields.FirstName,
		LastName:   fields.LastName,
		Email:      fields.Email,
		Phone:      fields.Phone,
		Street:     fields.Street,
		PostalCode: fields.PostalCode,
		City:       fields.City,
	}
	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

func (r *Customers) Update(ctx context.Context, id uint, fields CustomerFields) (models.Customer, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("customer_id = ?", id).
		Updates(fields.columns())
	if result.Error != nil {
		return models.Customer{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Customer{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a customer. It fails with a store error while compositions
// still reference the customer.
func (r *Customers) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Customers) WithInvalidCompositions(ctx context.Context) ([]CustomerCompositionCount, error) {
	totals := r.db.
		Table("compositions").
		Select("compositions.composition_id, compositions.customer_id, COALESCE(SUM(composition_details.amount), 0) AS volume").
		Joins("LEFT JOIN composition_details ON composition_details.composition_id = compositions.composition_id").
		Group("compositions.composition_id, compositions.customer_id")

	var rows []CustomerCompositionCount
	err := r.db.WithContext(ctx).
		Table("customers").
		Select("customers.*, COUNT(totals.composition_id) AS invalid_composition_count").
		Joins("JOIN (?) AS totals ON totals.customer_id = customers.customer_id", totals).
		Where("totals.volume NOT IN ?", []float64{models.VolumeSmall, models.VolumeLarge}).
		Group("customers.customer_id").
		Order("customers.last_name asc").
		Order("customers.first_name asc").
		Scan(&rows).Error
	return rows, err
}
