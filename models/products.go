package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mytheresa/product-catalog/photo"
	"github.com/shopspring/decimal"
)

// ErrNoPhoto is returned when a product without a photo is asked for one.
var ErrNoPhoto = errors.New("product has no photo")

// Prices are stored as decimal(10,2).
const priceScale = 2

var maxPrice = decimal.New(1, 10-priceScale)

// Product represents a product in the catalog.
// Category and supplier are optional references; the photo is stored as
// encoded text along with the media type describing it.
type Product struct {
	ID             uint            `gorm:"primaryKey"`
	Name           string          `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID     *uint
	Category       *Category `gorm:"foreignKey:CategoryID"`
	SupplierID     *uint
	Supplier       *Supplier `gorm:"foreignKey:SupplierID"`
	Description    *string
	Photo          *string `gorm:"type:text"`
	PhotoMediaType *string
	CreatedAt      *time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// HasPhoto reports whether the product carries photo data.
func (p *Product) HasPhoto() bool {
	return p.Photo != nil && *p.Photo != ""
}

// Attachment returns the product photo named after the product.
func (p *Product) Attachment() (photo.Attachment, error) {
	if !p.HasPhoto() {
		return photo.Attachment{}, ErrNoPhoto
	}
	if p.PhotoMediaType == nil {
		return photo.Attachment{}, fmt.Errorf("product %d: photo without media type", p.ID)
	}
	return photo.Attachment{
		Name:      p.Name,
		MediaType: *p.PhotoMediaType,
		Data:      *p.Photo,
	}, nil
}

// ProductDraft is a product that has not been stored yet. It has no ID; the
// store assigns one on insert.
type ProductDraft struct {
	Name           string
	Price          decimal.Decimal
	CategoryID     *uint
	SupplierID     *uint
	Description    *string
	Photo          *string
	PhotoMediaType *string
	CreatedAt      *time.Time
}

// NewDraftFromAttachment builds a draft carrying the attachment as its photo
// and the attachment name as the product name.
func NewDraftFromAttachment(a photo.Attachment, price decimal.Decimal) ProductDraft {
	data, mediaType := a.Data, a.MediaType
	return ProductDraft{
		Name:           a.Name,
		Price:          price,
		Photo:          &data,
		PhotoMediaType: &mediaType,
	}
}

// Validate checks the draft against the product invariants.
func (d ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	if d.Price.IsNegative() {
		return fmt.Errorf("price %s is negative", d.Price)
	}
	if !d.Price.Equal(d.Price.Truncate(priceScale)) {
		return fmt.Errorf("price %s has more than %d decimal places", d.Price, priceScale)
	}
	if d.Price.GreaterThanOrEqual(maxPrice) {
		return fmt.Errorf("price %s exceeds %s", d.Price, maxPrice.Sub(decimal.New(1, -priceScale)).StringFixed(priceScale))
	}
	if d.Photo == nil {
		return nil
	}
	if d.PhotoMediaType == nil {
		return errors.New("photo requires a media type")
	}
	if _, err := photo.ParseMediaType(*d.PhotoMediaType); err != nil {
		return err
	}
	if _, err := photo.Decode(*d.Photo); err != nil {
		return err
	}
	return nil
}

func (d ProductDraft) product(now time.Time) Product {
	createdAt := now
	if d.CreatedAt != nil {
		createdAt = *d.CreatedAt
	}
	createdAt = createdAt.UTC().Truncate(time.Microsecond)

	return Product{
		Name:           d.Name,
		Price:          d.Price,
		CategoryID:     d.CategoryID,
		SupplierID:     d.SupplierID,
		Description:    d.Description,
		Photo:          d.Photo,
		PhotoMediaType: d.PhotoMediaType,
		CreatedAt:      &createdAt,
	}
}
