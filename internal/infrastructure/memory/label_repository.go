// Package memory implementa los repositorios en memoria. Se usa con
// STORAGE_DRIVER=memory (desarrollo sin PostgreSQL) y en los tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/ne-taxonomy/internal/domain"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
)

var (
	_ repository.LabelRepository = (*LabelRepo)(nil)
	_ repository.LabelRepository = (*labelTx)(nil)
)

// LabelRepo repositorio de etiquetas protegido por un RWMutex.
type LabelRepo struct {
	mu    sync.RWMutex
	store labelStore
}

// NewLabelRepository construye el repositorio vacío.
func NewLabelRepository() *LabelRepo {
	return &LabelRepo{store: labelStore{byID: make(map[string]entity.Label)}}
}

// Create persiste una nueva etiqueta; nombre repetido → ErrDuplicate.
func (r *LabelRepo) Create(_ context.Context, label *entity.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.create(label)
}

// GetByID devuelve (nil, nil) si no existe.
func (r *LabelRepo) GetByID(_ context.Context, id string) (*entity.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.getByID(id), nil
}

// GetByName devuelve (nil, nil) si no existe.
func (r *LabelRepo) GetByName(_ context.Context, name string) (*entity.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.getByName(name), nil
}

// Update reemplaza la etiqueta; ErrNotFound si no existe.
func (r *LabelRepo) Update(_ context.Context, label *entity.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.update(label)
}

// Delete elimina por ID; ErrNotFound si no existe.
func (r *LabelRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.delete(id)
}

// List filtra por subcadena (sin distinguir mayúsculas) en nombre o reemplazo.
func (r *LabelRepo) List(_ context.Context, filter repository.LabelFilter) ([]*entity.Label, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, total := r.store.list(filter)
	return list, total, nil
}

// Count total de etiquetas.
func (r *LabelRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store.byID), nil
}

// All todas las etiquetas ordenadas por nombre.
func (r *LabelRepo) All(_ context.Context) ([]*entity.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.sorted(), nil
}

// labelStore operaciones sin bloqueo; el llamador sostiene el mutex.
type labelStore struct {
	byID map[string]entity.Label
}

func (s *labelStore) clone() labelStore {
	return labelStore{byID: maps.Clone(s.byID)}
}

func (s *labelStore) create(label *entity.Label) error {
	for _, l := range s.byID {
		if l.Name == label.Name {
			return domain.ErrDuplicate
		}
	}
	s.byID[label.ID] = *label
	return nil
}

func (s *labelStore) getByID(id string) *entity.Label {
	l, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &l
}

func (s *labelStore) getByName(name string) *entity.Label {
	for _, l := range s.byID {
		if l.Name == name {
			return &l
		}
	}
	return nil
}

func (s *labelStore) update(label *entity.Label) error {
	if _, ok := s.byID[label.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, l := range s.byID {
		if id != label.ID && l.Name == label.Name {
			return domain.ErrDuplicate
		}
	}
	s.byID[label.ID] = *label
	return nil
}

func (s *labelStore) delete(id string) error {
	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *labelStore) list(filter repository.LabelFilter) ([]*entity.Label, int) {
	q := strings.ToLower(filter.Search)
	var matched []*entity.Label
	for _, l := range s.sorted() {
		if q == "" || strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.Replacement), q) {
			matched = append(matched, l)
		}
	}
	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total
}

func (s *labelStore) sorted() []*entity.Label {
	out := make([]*entity.Label, 0, len(s.byID))
	for _, l := range s.byID {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// labelTx vista de un lote: trabaja sobre una copia privada del mapa.
type labelTx struct {
	store *labelStore
}

func (t *labelTx) Create(_ context.Context, label *entity.Label) error {
	return t.store.create(label)
}

func (t *labelTx) GetByID(_ context.Context, id string) (*entity.Label, error) {
	return t.store.getByID(id), nil
}

func (t *labelTx) GetByName(_ context.Context, name string) (*entity.Label, error) {
	return t.store.getByName(name), nil
}

func (t *labelTx) Update(_ context.Context, label *entity.Label) error {
	return t.store.update(label)
}

func (t *labelTx) Delete(_ context.Context, id string) error {
	return t.store.delete(id)
}

func (t *labelTx) List(_ context.Context, filter repository.LabelFilter) ([]*entity.Label, int, error) {
	list, total := t.store.list(filter)
	return list, total, nil
}

func (t *labelTx) Count(_ context.Context) (int, error) {
	return len(t.store.byID), nil
}

func (t *labelTx) All(_ context.Context) ([]*entity.Label, error) {
	return t.store.sorted(), nil
}
