package api

import (
	"context"
	"net/http"

	"supergrid/business"
)

// ContextKey differentiates values stored in request contexts.
type ContextKey int

const (
	// AliasesKey is the context key used to store the server's alias table.
	AliasesKey ContextKey = iota
)

// AliasesMiddleware injects the shared node alias table into the request
// context. Horizontal aggregation uses it to translate node names into the
// column headers of the posted table.
func AliasesMiddleware(aliases business.AliasTable) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = context.WithValue(ctx, AliasesKey, aliases)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getAliases(ctx context.Context) business.AliasTable {
	aliases, ok := ctx.Value(AliasesKey).(business.AliasTable)
	if !ok {
		return nil
	}
	return aliases
}
