package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mytheresa/product-catalog/models"
	"github.com/mytheresa/product-catalog/photo"
	"github.com/spf13/afero"
)

type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ExportPhotos writes the photo of every product that has one into dir and
// returns the written paths. Products without a photo are skipped; any other
// failure stops the export. A product whose name was already exported in the
// same run gets its id appended to the file name, e.g. Ball-7.png.
func ExportPhotos(ctx context.Context, repo ProductLister, fs afero.Fs, dir string) ([]string, error) {
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	paths := []string{}
	names := make(map[string]struct{}, len(products))
	for i := range products {
		p := &products[i]
		attachment, err := p.Attachment()
		if errors.Is(err, models.ErrNoPhoto) {
			continue
		}
		if err != nil {
			return paths, err
		}

		for _, taken := names[attachment.Name]; taken; _, taken = names[attachment.Name] {
			attachment.Name = fmt.Sprintf("%s-%d", attachment.Name, p.ID)
		}
		names[attachment.Name] = struct{}{}

		path, err := photo.Export(fs, dir, attachment)
		if err != nil {
			return paths, fmt.Errorf("export product %d: %w", p.ID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
