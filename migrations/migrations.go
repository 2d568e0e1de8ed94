// Package migrations carries the SQL schemas installed by POST /system/install.
package migrations

import "embed"

//go:embed postgres/*.sql clickhouse/*.sql
var FS embed.FS

// Schema paths inside FS.
const (
	PostgresSchema   = "postgres/001_initial_schema.sql"
	ClickHouseSchema = "clickhouse/001_initial_schema.sql"
)
