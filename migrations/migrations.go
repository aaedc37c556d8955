// Package migrations embeds the goose SQL migration set shared by every
// service that owns a Postgres table (audit-svc, history-svc, auth-svc,
// simulation-svc, report-svc), so each can run mapfnet/pkg/database's
// RunMigrations against its own schema from one place.
package migrations

import "embed"

//go:embed postgres/*.sql
var PostgresMigrations embed.FS
