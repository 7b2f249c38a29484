package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/app/tasks"
	"github.com/mytheresa/product-catalog/models"
	"github.com/mytheresa/product-catalog/photo"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Price          float64    `json:"price"`
	CategoryID     *uint      `json:"category_id,omitempty"`
	SupplierID     *uint      `json:"supplier_id,omitempty"`
	Description    *string    `json:"description,omitempty"`
	PhotoMediaType *string    `json:"photo_media_type,omitempty"`
	HasPhoto       bool       `json:"has_photo"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

type ExportResponse struct {
	Exported []string `json:"exported"`
}

type ProductProvider interface {
	InsertProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type CatalogHandler struct {
	repo      ProductProvider
	runner    *tasks.Runner
	imports   afero.Fs
	files     afero.Fs
	exportDir string
	log       *zap.Logger
}

// NewCatalogHandler builds the catalog handler. Imports are read from
// importDir only; exports are written to exportDir.
func NewCatalogHandler(r ProductProvider, runner *tasks.Runner, files afero.Fs, importDir, exportDir string, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:      r,
		runner:    runner,
		imports:   afero.NewReadOnlyFs(afero.NewBasePathFs(files, importDir)),
		files:     files,
		exportDir: exportDir,
		log:       log,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := tasks.Run(r.Context(), h.runner, h.repo.ListProducts)
	if err != nil {
		h.fail(w, "failed to get products", err)
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Total:    len(products),
		Products: products,
	})
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name           string          `json:"name"`
		Price          decimal.Decimal `json:"price"`
		CategoryID     *uint           `json:"category_id"`
		SupplierID     *uint           `json:"supplier_id"`
		Description    *string         `json:"description"`
		Photo          *string         `json:"photo"`
		PhotoMediaType *string         `json:"photo_media_type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	h.insert(w, r, models.ProductDraft{
		Name:           input.Name,
		Price:          input.Price,
		CategoryID:     input.CategoryID,
		SupplierID:     input.SupplierID,
		Description:    input.Description,
		Photo:          input.Photo,
		PhotoMediaType: input.PhotoMediaType,
	})
}

// HandleImport creates a product from a photo file in the import directory.
// The path is relative to that directory and the product is named after the
// file unless a name is given.
func (h *CatalogHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Path        string          `json:"path"`
		Name        string          `json:"name"`
		Price       decimal.Decimal `json:"price"`
		CategoryID  *uint           `json:"category_id"`
		SupplierID  *uint           `json:"supplier_id"`
		Description *string         `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(input.Path) == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing path")
		return
	}
	if !filepath.IsLocal(input.Path) {
		h.log.Warn("import path outside import directory", zap.String("path", input.Path))
		api.WriteError(w, http.StatusBadRequest, "Path must be relative to the import directory")
		return
	}

	attachment, err := photo.Import(h.imports, input.Path)
	if err != nil {
		h.fail(w, "Failed to read photo", err)
		return
	}

	draft := models.NewDraftFromAttachment(attachment, input.Price)
	if input.Name != "" {
		draft.Name = input.Name
	}
	draft.CategoryID = input.CategoryID
	draft.SupplierID = input.SupplierID
	draft.Description = input.Description

	h.insert(w, r, draft)
}

func (h *CatalogHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	paths, err := tasks.Run(r.Context(), h.runner, func(ctx context.Context) ([]string, error) {
		return ExportPhotos(ctx, h.repo, h.files, h.exportDir)
	})
	if err != nil {
		h.fail(w, "Failed to export photos", err)
		return
	}

	h.log.Info("photos exported", zap.Int("count", len(paths)), zap.String("dir", h.exportDir))
	api.WriteJSON(w, http.StatusOK, ExportResponse{Exported: paths})
}

func (h *CatalogHandler) insert(w http.ResponseWriter, r *http.Request, draft models.ProductDraft) {
	product, err := tasks.Run(r.Context(), h.runner, func(ctx context.Context) (*models.Product, error) {
		return h.repo.InsertProduct(ctx, draft)
	})
	if err != nil {
		h.fail(w, "Failed to create product", err)
		return
	}

	h.log.Info("product created", zap.Uint("id", product.ID), zap.String("name", product.Name))
	api.WriteJSON(w, http.StatusCreated, toProduct(product))
}

func (h *CatalogHandler) fail(w http.ResponseWriter, msg string, err error) {
	status := api.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(msg, zap.Error(err), zap.Int("status", status))
	} else {
		h.log.Warn(msg, zap.Error(err), zap.Int("status", status))
	}
	api.WriteError(w, status, msg)
}

func toProduct(p *models.Product) Product {
	return Product{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price.InexactFloat64(),
		CategoryID:     p.CategoryID,
		SupplierID:     p.SupplierID,
		Description:    p.Description,
		PhotoMediaType: p.PhotoMediaType,
		HasPhoto:       p.HasPhoto(),
		CreatedAt:      p.CreatedAt,
	}
}
