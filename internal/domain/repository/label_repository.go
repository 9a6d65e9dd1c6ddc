package repository

import (
	"context"

	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
)

// LabelFilter criterios de listado. Search vacío no filtra; se aplica con LIKE
// sobre nombre y reemplazo.
type LabelFilter struct {
	Search string
	Limit  int
	Offset int
}

// LabelRepository define el puerto de persistencia para Label (DIP).
type LabelRepository interface {
	Create(ctx context.Context, label *entity.Label) error
	GetByID(ctx context.Context, id string) (*entity.Label, error)
	GetByName(ctx context.Context, name string) (*entity.Label, error)
	Update(ctx context.Context, label *entity.Label) error
	Delete(ctx context.Context, id string) error
	// List devuelve la página filtrada y el total de filas que cumplen el filtro.
	List(ctx context.Context, filter LabelFilter) ([]*entity.Label, int, error)
	Count(ctx context.Context) (int, error)
	// All recorre todas las etiquetas ordenadas por nombre (exportación).
	All(ctx context.Context) ([]*entity.Label, error)
}
