// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// InitialSQL creates the catalog tables and reporting views.
//
//go:embed sql/001_initial.sql
var InitialSQL string
