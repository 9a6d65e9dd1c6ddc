// seed_labels genera un script SQL que precarga etiquetas de seudonimización
// a partir de un CSV label,replacement.
//
// Uso: go run ./cmd/seed_labels [-charset windows-1250] [-out ruta.sql] labels.csv
// Por defecto escribe internal/infrastructure/postgres/migrations/003_seed_labels.sql,
// que ApplyMigrations ejecuta en el siguiente arranque.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/ne-taxonomy/pkg/labelcsv"
)

// labelNamespace fija los UUID generados: la misma etiqueta produce siempre el mismo id.
var labelNamespace = uuid.MustParse("3f1c6a52-6c0e-4b8e-9a53-2d1f0d3c7e41")

func main() {
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8 | windows-1250 | iso-8859-2")
	outFlag := flag.String("out", "", "archivo SQL de salida")
	flag.Parse()

	csvPath := "labels.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := labelcsv.Read(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "003_seed_labels.sql")
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	n, err := writeSeed(out, csvPath, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d etiquetas (%d filas descartadas)\n", outPath, n, skipped)
}

// writeSeed emite un único INSERT idempotente. Las etiquetas repetidas en el
// CSV conservan la última aparición. Devuelve cuántas etiquetas escribió.
func writeSeed(w io.Writer, source string, rows []labelcsv.Row) (int, error) {
	byName := make(map[string]string, len(rows))
	for _, r := range rows {
		byName[r.Label] = r.Replacement
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("-- Etiquetas de seudonimización\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", filepath.Base(source))
	if len(names) == 0 {
		b.WriteString("-- (sin etiquetas)\n")
		_, err := io.WriteString(w, b.String())
		return 0, err
	}
	b.WriteString("INSERT INTO labels (id, name, replacement) VALUES\n")
	for i, name := range names {
		id := uuid.NewSHA1(labelNamespace, []byte(name))
		sep := ","
		if i == len(names)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s')%s\n", id, escapeSQL(name), escapeSQL(byName[name]), sep)
	}
	b.WriteString("ON CONFLICT (name) DO NOTHING;\n")
	_, err := io.WriteString(w, b.String())
	return len(names), err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
