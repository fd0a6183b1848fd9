package models

// CompositionDetail is one fragrance line of a composition. The same
// fragrance may appear more than once.
type CompositionDetail struct {
	ID            uint    `gorm:"column:detail_id;primaryKey" json:"detail_id"`
	CompositionID uint    `gorm:"not null;index" json:"composition_id"`
	FragranceID   uint    `gorm:"not null;index" json:"fragrance_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
}
