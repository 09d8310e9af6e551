package migrations

import (
	contacts "github.com/goliatone/go-contacts"
)

func init() {
	coreFS, err := contacts.GetMigrationsFS()
	if err != nil {
		return
	}
	Register(coreFS)
}
