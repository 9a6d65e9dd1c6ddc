package migrations

import "embed"

// FS contiene las migraciones SQL embebidas de la base de etiquetas y cuentas.
//
//go:embed *.sql
var FS embed.FS
