package units

import (
	"context"
	"net/http"

	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/app/tasks"
	"github.com/mytheresa/product-catalog/models"
	"go.uber.org/zap"
)

type UnitResponse struct {
	ID           uint    `json:"id"`
	Description  string  `json:"description"`
	Abbreviation *string `json:"abbreviation,omitempty"`
}

type UnitProvider interface {
	ListUnitsOfMeasure(ctx context.Context) ([]models.UnitOfMeasure, error)
}

type UnitHandler struct {
	repo   UnitProvider
	runner *tasks.Runner
	log    *zap.Logger
}

func NewUnitHandler(r UnitProvider, runner *tasks.Runner, log *zap.Logger) *UnitHandler {
	return &UnitHandler{repo: r, runner: runner, log: log}
}

func (h *UnitHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	units, err := tasks.Run(r.Context(), h.runner, h.repo.ListUnitsOfMeasure)
	if err != nil {
		h.log.Error("failed to fetch units of measure", zap.Error(err))
		api.WriteError(w, api.StatusFor(err), "failed to fetch units of measure")
		return
	}

	response := make([]UnitResponse, len(units))
	for i, u := range units {
		response[i] = UnitResponse{
			ID:           u.ID,
			Description:  u.Description,
			Abbreviation: u.Abbreviation,
		}
	}

	api.WriteJSON(w, http.StatusOK, response)
}
