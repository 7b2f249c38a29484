package models

// Supplier represents a company products are bought from.
// TaxID is the supplier's registration number and is unique.
type Supplier struct {
	ID    uint   `gorm:"primaryKey"`
	TaxID string `gorm:"uniqueIndex;not null"`
	Name  string `gorm:"not null"`
	Email *string
}

func (s *Supplier) TableName() string {
	return "suppliers"
}
