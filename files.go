package contacts

import "io/fs"

const migrationsRoot = "data/sql/migrations"

// GetMigrationsFS exposes the SQL migration files rooted at the migrations
// directory so host applications can register them with go-persistence-bun
// (or another migration runner).
func GetMigrationsFS() (fs.FS, error) {
	return fs.Sub(MigrationsFS, migrationsRoot)
}
