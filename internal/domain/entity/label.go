package entity

import "time"

// Label etiqueta de seudonimización: el texto marcado y el reemplazo que se
// usa al publicar el documento anonimizado.
type Label struct {
	ID          string
	Name        string
	Replacement string // vacío si aún no se asignó reemplazo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
