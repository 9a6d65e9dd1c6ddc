package memory

import (
	"context"

	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
)

// TxRunner emula una transacción sobre LabelRepo. El lote trabaja sobre una
// copia privada y la publica solo si fn termina sin error. Mientras dura el
// lote el repositorio queda bloqueado: las escrituras externas esperan y nadie
// ve cambios a medias.
type TxRunner struct {
	labels *LabelRepo
}

// NewTxRunner construye el runner sobre el repositorio dado.
func NewTxRunner(labels *LabelRepo) *TxRunner {
	return &TxRunner{labels: labels}
}

// RunLabels ejecuta fn con la vista del lote. fn no debe usar el LabelRepo
// original: el mutex está tomado y se bloquearía.
func (r *TxRunner) RunLabels(_ context.Context, fn func(labels repository.LabelRepository) error) error {
	r.labels.mu.Lock()
	defer r.labels.mu.Unlock()

	work := r.labels.store.clone()
	if err := fn(&labelTx{store: &work}); err != nil {
		return err
	}
	r.labels.store = work
	return nil
}
