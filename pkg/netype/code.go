package netype

import (
	"fmt"
	"strings"
)

// Code código de tipo de entidad: dos caracteres ASCII en minúscula. El
// segundo puede ser '_' para el tipo no especificado del supertipo.
type Code string

// ParseCode normaliza texto externo (espacios, mayúsculas) y lo valida contra
// la taxonomía estándar.
func ParseCode(s string) (Code, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if !wellFormed(norm) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, s)
	}
	c := Code(norm)
	if !defaultTable.Contains(c) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}
	return c, nil
}

// Label etiqueta en la taxonomía estándar; vacío si el código no existe.
func (c Code) Label() string {
	label, _ := defaultTable.Lookup(c)
	return label
}

// Valid indica si el código existe en la taxonomía estándar.
func (c Code) Valid() bool { return defaultTable.Contains(c) }

// Underspecified indica los códigos "x_" (p. ej. p_ nombre personal sin precisar).
func (c Code) Underspecified() bool {
	return len(c) == 2 && c[1] == '_'
}

// Supertype primer carácter del código ('p' para pf, ps, ...). 0 si el código está vacío.
func (c Code) Supertype() byte {
	if len(c) == 0 {
		return 0
	}
	return c[0]
}

func (c Code) String() string { return string(c) }

func wellFormed(s string) bool {
	if len(s) != 2 {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	return (s[1] >= 'a' && s[1] <= 'z') || s[1] == '_'
}
