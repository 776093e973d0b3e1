// Package migrations contiene el esquema versionado (goose) embebido en el binario.
package migrations

import "embed"

// FS migraciones SQL en orden de versión.
//
//go:embed *.sql
var FS embed.FS
