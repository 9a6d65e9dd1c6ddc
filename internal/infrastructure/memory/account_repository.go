package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/ne-taxonomy/internal/domain"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo repositorio de cuentas en memoria.
type AccountRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.Account
}

// NewAccountRepository construye el repositorio vacío.
func NewAccountRepository() *AccountRepo {
	return &AccountRepo{byID: make(map[string]entity.Account)}
}

// Create persiste una cuenta; email repetido → ErrEmailAlreadyExists.
func (r *AccountRepo) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.byID[a.ID] = *a
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *AccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// GetByEmail devuelve (nil, nil) si no existe.
func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

// List todas las cuentas ordenadas por email.
func (r *AccountRepo) List(_ context.Context) ([]*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Delete elimina por ID; ErrNotFound si no existe.
func (r *AccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *AccountRepo) UpdatePassword(_ context.Context, id, passwordHash string, at time.Time) error {
	return r.modify(id, func(a *entity.Account) {
		a.PasswordHash = passwordHash
		a.UpdatedAt = at
	})
}

// UpdateStatus cambia el estado (active / inactive).
func (r *AccountRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	return r.modify(id, func(a *entity.Account) {
		a.Status = status
		a.UpdatedAt = at
	})
}

func (r *AccountRepo) modify(id string, fn func(a *entity.Account)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&a)
	r.byID[id] = a
	return nil
}
