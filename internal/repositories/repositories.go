// Package repositories contains the sqlx-backed persistence layer for the two
// game tables, users and user_progress.
package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mlevkov/gamebackend/internal/logger"
	"github.com/mlevkov/gamebackend/internal/middlewares"
)

// execer returns the request transaction when one is present in the context
// (the delete-user route runs under TxMiddleware), otherwise the shared handle.
func execer(ctx context.Context, db *sqlx.DB) sqlx.ExecerContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

// logQuery logs an executed statement with the query collapsed to a single line.
func logQuery(query string, args []any, err error) {
	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)
}
