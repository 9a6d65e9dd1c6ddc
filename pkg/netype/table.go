package netype

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Errores de la taxonomía.
var (
	ErrUnknownCode   = errors.New("netype: código desconocido")
	ErrInvalidCode   = errors.New("netype: formato de código inválido")
	ErrEmptyLabel    = errors.New("netype: etiqueta vacía")
	ErrDuplicateCode = errors.New("netype: código duplicado")
)

// Category asocia un código con su etiqueta.
type Category struct {
	Code  Code
	Label string
}

// Table es una taxonomía inmutable. No expone métodos de escritura, así que
// puede compartirse entre goroutines sin sincronización.
type Table struct {
	byCode  map[Code]string
	ordered []Category
}

// New valida las entradas y construye la tabla. Rechaza códigos mal formados,
// etiquetas vacías y códigos repetidos.
func New(entries ...Category) (*Table, error) {
	t := &Table{
		byCode:  make(map[Code]string, len(entries)),
		ordered: make([]Category, 0, len(entries)),
	}
	for i, e := range entries {
		if !wellFormed(string(e.Code)) {
			return nil, fmt.Errorf("entrada %d: %w: %q", i, ErrInvalidCode, e.Code)
		}
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("entrada %d (%s): %w", i, e.Code, ErrEmptyLabel)
		}
		if _, dup := t.byCode[e.Code]; dup {
			return nil, fmt.Errorf("entrada %d: %w: %q", i, ErrDuplicateCode, e.Code)
		}
		t.byCode[e.Code] = e.Label
		t.ordered = append(t.ordered, e)
	}
	return t, nil
}

// MustNew es como New pero entra en pánico si la tabla es inválida.
func MustNew(entries ...Category) *Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup devuelve la etiqueta del código; ok es false si no existe.
func (t *Table) Lookup(code Code) (label string, ok bool) {
	label, ok = t.byCode[code]
	return label, ok
}

// Contains indica si el código pertenece a la tabla.
func (t *Table) Contains(code Code) bool {
	_, ok := t.byCode[code]
	return ok
}

// Category busca un código que llega como texto externo (parámetros HTTP, CSV).
func (t *Table) Category(code string) (Category, error) {
	c := Code(code)
	label, ok := t.byCode[c]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return Category{Code: c, Label: label}, nil
}

// All recorre las entradas en orden de inserción. Cada llamada produce una
// secuencia nueva.
func (t *Table) All() iter.Seq[Category] {
	return func(yield func(Category) bool) {
		for _, c := range t.ordered {
			if !yield(c) {
				return
			}
		}
	}
}

// Len número de entradas.
func (t *Table) Len() int { return len(t.ordered) }

// Codes devuelve una copia de los códigos en orden de inserción.
func (t *Table) Codes() []Code {
	out := make([]Code, len(t.ordered))
	for i, c := range t.ordered {
		out[i] = c.Code
	}
	return out
}

// Search filtra por subcadena (sin distinguir mayúsculas) en código o etiqueta.
// Una consulta vacía devuelve todas las entradas.
func (t *Table) Search(query string) []Category {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Category, 0, len(t.ordered))
	for _, c := range t.ordered {
		if q == "" || strings.Contains(string(c.Code), q) || strings.Contains(strings.ToLower(c.Label), q) {
			out = append(out, c)
		}
	}
	return out
}

// CodesForLabel búsqueda inversa: códigos cuya etiqueta coincide exactamente
// (sin distinguir mayúsculas).
func (t *Table) CodesForLabel(label string) []Code {
	var out []Code
	for _, c := range t.ordered {
		if strings.EqualFold(c.Label, strings.TrimSpace(label)) {
			out = append(out, c.Code)
		}
	}
	return out
}
