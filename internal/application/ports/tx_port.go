package ports

import (
	"context"

	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
)

// LabelTxRunner ejecuta fn con un repositorio de etiquetas atado a una única
// transacción. Si fn retorna error se hace rollback de todo el lote.
type LabelTxRunner interface {
	RunLabels(ctx context.Context, fn func(labels repository.LabelRepository) error) error
}
