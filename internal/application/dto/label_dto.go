package dto

import "time"

// CreateLabelRequest entrada para crear una etiqueta.
type CreateLabelRequest struct {
	Label       string `json:"label" form:"label" validate:"required,min=1,max=255"`
	Replacement string `json:"replacement" form:"replacement" validate:"max=255"`
}

// UpdateLabelRequest edición en línea de un solo campo (label o replacement).
type UpdateLabelRequest struct {
	Name  string `json:"name" form:"name" validate:"required,oneof=label replacement"`
	Value string `json:"value" form:"value"`
}

// LabelResponse salida de una etiqueta. Replacement solo se incluye para administradores.
type LabelResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Replacement *string   `json:"replacement,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LabelListResponse lista paginada de etiquetas (formato rows/total/totalNotFiltered
// que consume la tabla del frontend de anotación).
type LabelListResponse struct {
	Items            []LabelResponse `json:"rows"`
	Total            int             `json:"total"`
	TotalNotFiltered int             `json:"totalNotFiltered"`
	Page             PageResponse    `json:"page"`
}

// StatusResponse respuesta mínima para operaciones sin cuerpo.
type StatusResponse struct {
	Status string `json:"status"`
}

// ImportLabelsResponse resultado de una importación CSV.
type ImportLabelsResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
