// Package labelcsv lee y escribe archivos CSV de etiquetas (label,replacement),
// incluidos los exportados por herramientas antiguas en codificaciones checas.
package labelcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedCharset la codificación pedida no está soportada.
var ErrUnsupportedCharset = errors.New("labelcsv: codificación no soportada")

// Row una fila del archivo.
type Row struct {
	Label       string
	Replacement string
}

// Decoder devuelve el decodificador para charset. Vacío o "utf-8" no transforma
// (salvo quitar el BOM).
func Decoder(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "windows-1250", "cp1250":
		return charmap.Windows1250.NewDecoder(), nil
	case "iso-8859-2", "iso8859-2", "latin2":
		return charmap.ISO8859_2.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, charset)
	}
}

// Read lee filas label,replacement. La cabecera es opcional y se detecta por
// la primera celda "label". Filas sin label se descartan; skipped cuenta cuántas.
func Read(r io.Reader, charset string) (rows []Row, skipped int, err error) {
	dec, err := Decoder(charset)
	if err != nil {
		return nil, 0, err
	}
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("labelcsv: %w", err)
		}
		if first {
			first = false
			if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "label") {
				continue
			}
		}
		row := Row{}
		if len(rec) > 0 {
			row.Label = strings.TrimSpace(rec[0])
		}
		if len(rec) > 1 {
			row.Replacement = strings.TrimSpace(rec[1])
		}
		if row.Label == "" {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

// Write escribe la cabecera label,replacement seguida de las filas en UTF-8.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "replacement"}); err != nil {
		return fmt.Errorf("labelcsv: cabecera: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Label, r.Replacement}); err != nil {
			return fmt.Errorf("labelcsv: fila %q: %w", r.Label, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
