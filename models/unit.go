package models

type UnitOfMeasure struct {
	ID           uint   `gorm:"primaryKey"`
	Description  string `gorm:"not null"`
	Abbreviation *string
}

func (u *UnitOfMeasure) TableName() string {
	return "units_of_measure"
}

// All returns every catalog model in dependency order, for schema migration.
func All() []any {
	return []any{&Category{}, &Supplier{}, &UnitOfMeasure{}, &Product{}}
}
