package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ne-taxonomy/internal/domain"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, full_name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.FullName, a.Role, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// GetByEmail obtiene una cuenta por email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

const accountColumns = `id, email, password_hash, full_name, role, status, created_at, updated_at`

func (r *AccountRepo) findOne(ctx context.Context, where string, arg any) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ` + where + ` LIMIT 1`
	a, err := scanAccount(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	if err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// List devuelve todas las cuentas ordenadas por email.
func (r *AccountRepo) List(ctx context.Context) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina una cuenta por ID.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *AccountRepo) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	return r.updateColumn(ctx, "password_hash", id, passwordHash, at)
}

// UpdateStatus cambia el estado de la cuenta.
func (r *AccountRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	return r.updateColumn(ctx, "status", id, status, at)
}

// updateColumn column siempre es una constante del paquete, nunca entrada del cliente.
func (r *AccountRepo) updateColumn(ctx context.Context, column, id, value string, at time.Time) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	query := `UPDATE accounts SET ` + column + ` = $2, updated_at = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, value, at)
	if err != nil {
		return fmt.Errorf("update account %s: %w", column, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
