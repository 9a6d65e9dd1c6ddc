package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ne-taxonomy/internal/domain"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
)

var _ repository.LabelRepository = (*LabelRepo)(nil)

// LabelRepo implementación del puerto LabelRepository sobre PostgreSQL.
type LabelRepo struct {
	q Querier
}

// NewLabelRepository construye el adaptador de persistencia para etiquetas.
func NewLabelRepository(q Querier) *LabelRepo {
	return &LabelRepo{q: q}
}

const labelColumns = `id, name, replacement, created_at, updated_at`

// Create persiste una nueva etiqueta.
func (r *LabelRepo) Create(ctx context.Context, label *entity.Label) error {
	query := `
		INSERT INTO labels (id, name, replacement, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		label.ID, label.Name, label.Replacement, label.CreatedAt, label.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert label: %w", err)
	}
	return nil
}

// GetByID obtiene una etiqueta por ID. Devuelve (nil, nil) si no existe.
func (r *LabelRepo) GetByID(ctx context.Context, id string) (*entity.Label, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + labelColumns + ` FROM labels WHERE id = $1`
	l, err := scanLabel(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get label: %w", err)
	}
	return l, nil
}

// GetByName obtiene una etiqueta por nombre exacto. Devuelve (nil, nil) si no existe.
func (r *LabelRepo) GetByName(ctx context.Context, name string) (*entity.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE name = $1`
	l, err := scanLabel(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get label by name: %w", err)
	}
	return l, nil
}

// Update actualiza nombre y reemplazo.
func (r *LabelRepo) Update(ctx context.Context, label *entity.Label) error {
	if !isUUID(label.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE labels SET name = $2, replacement = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, label.ID, label.Name, label.Replacement, label.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update label: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una etiqueta por ID.
func (r *LabelRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista etiquetas filtradas por nombre o reemplazo, con paginación.
func (r *LabelRepo) List(ctx context.Context, filter repository.LabelFilter) ([]*entity.Label, int, error) {
	where := ``
	args := []any{}
	if filter.Search != "" {
		where = ` WHERE name ILIKE $1 OR replacement ILIKE $1`
		args = append(args, likePattern(filter.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM labels`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count labels: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM labels%s ORDER BY name LIMIT $%d OFFSET $%d`,
		labelColumns, where, n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()
	list, err := collectLabels(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Count total de etiquetas sin filtrar.
func (r *LabelRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM labels`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count labels: %w", err)
	}
	return n, nil
}

// All devuelve todas las etiquetas ordenadas por nombre.
func (r *LabelRepo) All(ctx context.Context) ([]*entity.Label, error) {
	rows, err := r.q.Query(ctx, `SELECT `+labelColumns+` FROM labels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("all labels: %w", err)
	}
	defer rows.Close()
	return collectLabels(rows)
}

func scanLabel(row pgx.Row) (*entity.Label, error) {
	var l entity.Label
	if err := row.Scan(&l.ID, &l.Name, &l.Replacement, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLabels(rows pgx.Rows) ([]*entity.Label, error) {
	var list []*entity.Label
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
