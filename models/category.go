package models

// Category represents a product category.
// Categories are maintained outside the catalog and only read here.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
