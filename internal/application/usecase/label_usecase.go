package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/ne-taxonomy/internal/application/dto"
	"github.com/jhoicas/ne-taxonomy/internal/application/ports"
	"github.com/jhoicas/ne-taxonomy/internal/domain"
	"github.com/jhoicas/ne-taxonomy/internal/domain/entity"
	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
	"github.com/jhoicas/ne-taxonomy/pkg/labelcsv"
)

// Campos editables de una etiqueta.
const (
	LabelFieldName        = "label"
	LabelFieldReplacement = "replacement"
)

// MaxLabelLength longitud máxima (en caracteres) de label y replacement; coincide con VARCHAR(255).
const MaxLabelLength = 255

// LabelUseCase casos de uso para etiquetas de seudonimización.
type LabelUseCase struct {
	repo repository.LabelRepository
	tx   ports.LabelTxRunner
	now  func() time.Time
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(repo repository.LabelRepository, tx ports.LabelTxRunner) *LabelUseCase {
	return &LabelUseCase{repo: repo, tx: tx, now: time.Now}
}

// List lista etiquetas con búsqueda opcional. El reemplazo solo se expone a administradores.
func (uc *LabelUseCase) List(ctx context.Context, search string, page dto.PageRequest, admin bool) (*dto.LabelListResponse, error) {
	page.DefaultPage()
	notFiltered, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.LabelFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LabelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLabelResponse(l, admin))
	}
	return &dto.LabelListResponse{
		Items:            items,
		Total:            total,
		TotalNotFiltered: notFiltered,
		Page:             dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Create crea una nueva etiqueta.
func (uc *LabelUseCase) Create(ctx context.Context, in dto.CreateLabelRequest) (*dto.LabelResponse, error) {
	name := strings.TrimSpace(in.Label)
	if name == "" {
		return nil, fmt.Errorf("%w: label es requerido", domain.ErrInvalidInput)
	}
	replacement := strings.TrimSpace(in.Replacement)
	if err := checkLength(LabelFieldName, name); err != nil {
		return nil, err
	}
	if err := checkLength(LabelFieldReplacement, replacement); err != nil {
		return nil, err
	}
	now := uc.now()
	label := &entity.Label{
		ID:          uuid.New().String(),
		Name:        name,
		Replacement: replacement,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, label); err != nil {
		return nil, err
	}
	return toLabelResponse(label, true), nil
}

// Update cambia un único campo (label o replacement) de una etiqueta existente.
func (uc *LabelUseCase) Update(ctx context.Context, id string, in dto.UpdateLabelRequest) (*dto.LabelResponse, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	label, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, domain.ErrNotFound
	}
	value := strings.TrimSpace(in.Value)
	if err := checkLength(in.Name, value); err != nil {
		return nil, err
	}
	switch in.Name {
	case LabelFieldName:
		if value == "" {
			return nil, fmt.Errorf("%w: label no puede quedar vacío", domain.ErrInvalidInput)
		}
		label.Name = value
	case LabelFieldReplacement:
		label.Replacement = value
	default:
		return nil, fmt.Errorf("%w: campo %q no editable", domain.ErrInvalidInput, in.Name)
	}
	label.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, label); err != nil {
		return nil, err
	}
	return toLabelResponse(label, true), nil
}

// Delete elimina una etiqueta. domain.ErrNotFound si no existe.
func (uc *LabelUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// ExportCSV escribe todas las etiquetas como CSV label,replacement.
func (uc *LabelUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	list, err := uc.repo.All(ctx)
	if err != nil {
		return err
	}
	rows := make([]labelcsv.Row, 0, len(list))
	for _, l := range list {
		rows = append(rows, labelcsv.Row{Label: l.Name, Replacement: l.Replacement})
	}
	return labelcsv.Write(w, rows)
}

// ImportCSV carga un CSV label,replacement en una sola transacción. Las
// etiquetas existentes actualizan su reemplazo si el archivo trae uno; las
// nuevas se crean. Cualquier error revierte el lote completo.
func (uc *LabelUseCase) ImportCSV(ctx context.Context, r io.Reader, charset string) (*dto.ImportLabelsResponse, error) {
	rows, skipped, err := labelcsv.Read(r, charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for i, row := range rows {
		if err := checkLength(LabelFieldName, row.Label); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
		if err := checkLength(LabelFieldReplacement, row.Replacement); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
	}
	out := &dto.ImportLabelsResponse{Skipped: skipped}
	err = uc.tx.RunLabels(ctx, func(labels repository.LabelRepository) error {
		for _, row := range rows {
			existing, err := labels.GetByName(ctx, row.Label)
			if err != nil {
				return err
			}
			now := uc.now()
			if existing != nil {
				if row.Replacement == "" || row.Replacement == existing.Replacement {
					out.Skipped++
					continue
				}
				existing.Replacement = row.Replacement
				existing.UpdatedAt = now
				if err := labels.Update(ctx, existing); err != nil {
					return err
				}
				out.Updated++
				continue
			}
			if err := labels.Create(ctx, &entity.Label{
				ID:          uuid.New().String(),
				Name:        row.Label,
				Replacement: row.Replacement,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return err
			}
			out.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toLabelResponse(l *entity.Label, admin bool) *dto.LabelResponse {
	if l == nil {
		return nil
	}
	out := &dto.LabelResponse{
		ID:        l.ID,
		Label:     l.Name,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if admin {
		replacement := l.Replacement
		out.Replacement = &replacement
	}
	return out
}

// validID los ids de etiqueta son UUID; cualquier otro valor no puede existir.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func checkLength(field, value string) error {
	if utf8.RuneCountInString(value) > MaxLabelLength {
		return fmt.Errorf("%w: %s supera %d caracteres", domain.ErrInvalidInput, field, MaxLabelLength)
	}
	return nil
}
