package models

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository stores products and reads the reference tables.
type CatalogRepository struct {
	db  *gorm.DB
	now func() time.Time
}

type RepositoryOption func(*CatalogRepository)

// WithClock replaces the clock used for products inserted without a
// creation time.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *CatalogRepository) {
		r.now = now
	}
}

func NewCatalogRepository(db *gorm.DB, opts ...RepositoryOption) *CatalogRepository {
	r := &CatalogRepository{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InsertProduct stores the draft and returns the product with its assigned ID.
func (r *CatalogRepository) InsertProduct(ctx context.Context, draft ProductDraft) (*Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, &StoreError{Op: "insert product", Kind: KindConstraintViolation, Err: err}
	}

	product := draft.product(r.now())
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&product).Error; err != nil {
		return nil, storeError("insert product", err)
	}
	return &product, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, storeError("list products", err)
	}
	return products, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

func (r *CatalogRepository) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	if err := r.db.WithContext(ctx).Order("id").Find(&suppliers).Error; err != nil {
		return nil, storeError("list suppliers", err)
	}
	return suppliers, nil
}

func (r *CatalogRepository) ListUnitsOfMeasure(ctx context.Context) ([]UnitOfMeasure, error) {
	var units []UnitOfMeasure
	if err := r.db.WithContext(ctx).Order("id").Find(&units).Error; err != nil {
		return nil, storeError("list units of measure", err)
	}
	return units, nil
}
