// Package db provides database connection and transaction management.
//
// This package is responsible for:
//   - PostgreSQL connection pool initialization
//   - Connection health checks
//   - Transactions carried through context.Context
//   - Embedded schema migrations (goose)
//   - Query tracing through the app logger (APP_DB_LOG_QUERIES)
//
// Example usage:
//
//	db, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	err = db.WithinTx(ctx, ports.TxOptions{}, func(ctx context.Context) error {
//	    _, err := db.Conn(ctx).Exec(ctx, "...")
//	    return err
//	})
package db
