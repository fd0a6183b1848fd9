package models

import (
	"math"
	"time"
)

// Bottle sizes offered by the studio, in millilitres.
const (
	VolumeSmall = 50.0
	VolumeLarge = 100.0
)

const volumeTolerance = 1e-9

type Composition struct {
	ID          uint                `gorm:"column:composition_id;primaryKey" json:"composition_id"`
	CustomerID  uint                `gorm:"not null;index" json:"customer_id"`
	Name        string              `json:"name"`
	TotalAmount float64             `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Details     []CompositionDetail `gorm:"foreignKey:CompositionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// ValidTotal reports whether total matches one of the bottle sizes.
func ValidTotal(total float64) bool {
	return math.Abs(total-VolumeSmall) < volumeTolerance || math.Abs(total-VolumeLarge) < volumeTolerance
}

// SumAmounts adds up the volumes of the given detail rows.
func SumAmounts(details []CompositionDetail) float64 {
	var sum float64
	for _, d := range details {
		sum += d.Amount
	}
	return sum
}
