package models

import "time"

// Fragrance is a reusable base scent from the studio catalog. Code is the
// catalog number printed on the bottles; it is unique by convention only.
// Details declares the foreign key of composition_details.fragrance_id.
type Fragrance struct {
	ID          uint                `gorm:"column:fragrance_id;primaryKey" json:"fragrance_id"`
	Name        string              `gorm:"not null" json:"name"`
	Code        int                 `gorm:"not null;index" json:"code"`
	Description string              `gorm:"type:text" json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Details     []CompositionDetail `gorm:"foreignKey:FragranceID" json:"-"`
}
