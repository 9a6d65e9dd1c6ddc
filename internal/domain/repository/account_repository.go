package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Delete, UpdatePassword y UpdateStatus devuelven domain.ErrNotFound si el id no existe.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	List(ctx context.Context) ([]*entity.Account, error)
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}
