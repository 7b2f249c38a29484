package suppliers

import (
	"context"
	"net/http"

	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/app/tasks"
	"github.com/mytheresa/product-catalog/models"
	"go.uber.org/zap"
)

type SupplierResponse struct {
	ID    uint    `json:"id"`
	TaxID string  `json:"tax_id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

type SupplierProvider interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
}

type SupplierHandler struct {
	repo   SupplierProvider
	runner *tasks.Runner
	log    *zap.Logger
}

func NewSupplierHandler(r SupplierProvider, runner *tasks.Runner, log *zap.Logger) *SupplierHandler {
	return &SupplierHandler{repo: r, runner: runner, log: log}
}

func (h *SupplierHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	suppliers, err := tasks.Run(r.Context(), h.runner, h.repo.ListSuppliers)
	if err != nil {
		h.log.Error("failed to fetch suppliers", zap.Error(err))
		api.WriteError(w, api.StatusFor(err), "failed to fetch suppliers")
		return
	}

	response := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		response[i] = SupplierResponse{
			ID:    s.ID,
			TaxID: s.TaxID,
			Name:  s.Name,
			Email: s.Email,
		}
	}

	api.WriteJSON(w, http.StatusOK, response)
}
