package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/mytheresa/product-catalog/models"
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogStore is the set of store operations that are instrumented.
type CatalogStore interface {
	InsertProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	ListUnitsOfMeasure(ctx context.Context) ([]models.UnitOfMeasure, error)
}

// InstrumentedStore records the count, outcome and latency of every store
// operation.
type InstrumentedStore struct {
	next       CatalogStore
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewInstrumentedStore(next CatalogStore, reg prometheus.Registerer) (*InstrumentedStore, error) {
	s := &InstrumentedStore{
		next: next,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Catalog store operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Catalog store operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{s.operations, s.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	s.operations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, models.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func (s *InstrumentedStore) InsertProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	start := time.Now()
	p, err := s.next.InsertProduct(ctx, draft)
	s.observe("insert_product", start, err)
	return p, err
}

func (s *InstrumentedStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	start := time.Now()
	products, err := s.next.ListProducts(ctx)
	s.observe("list_products", start, err)
	return products, err
}

func (s *InstrumentedStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	start := time.Now()
	categories, err := s.next.ListCategories(ctx)
	s.observe("list_categories", start, err)
	return categories, err
}

func (s *InstrumentedStore) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	start := time.Now()
	suppliers, err := s.next.ListSuppliers(ctx)
	s.observe("list_suppliers", start, err)
	return suppliers, err
}

func (s *InstrumentedStore) ListUnitsOfMeasure(ctx context.Context) ([]models.UnitOfMeasure, error) {
	start := time.Now()
	units, err := s.next.ListUnitsOfMeasure(ctx)
	s.observe("list_units_of_measure", start, err)
	return units, err
}
