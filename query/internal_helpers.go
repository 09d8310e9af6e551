package query

import (
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/scope"
)

func safeScopeGuard(g scope.Guard) scope.Guard {
	return scope.Ensure(g)
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func surfaceError(logger types.Logger, op string, err error) error {
	if err == nil || types.IsCategorized(err) {
		return err
	}
	safeLogger(logger).Error("go-contacts: "+op+" failed", err)
	return types.Unexpected(err)
}
