package categories

import (
	"context"
	"net/http"

	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/app/tasks"
	"github.com/mytheresa/product-catalog/models"
	"go.uber.org/zap"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryProvider interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type CategoryHandler struct {
	repo   CategoryProvider
	runner *tasks.Runner
	log    *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, runner *tasks.Runner, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, runner: runner, log: log}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := tasks.Run(r.Context(), h.runner, h.repo.ListCategories)
	if err != nil {
		h.log.Error("failed to fetch categories", zap.Error(err))
		api.WriteError(w, api.StatusFor(err), "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:   c.ID,
			Name: c.Name,
		}
	}

	api.WriteJSON(w, http.StatusOK, response)
}
