// Package postgres contains the PostgreSQL implementations of the store
// interfaces. All stores work against store.DBTX so the same code runs
// on a connection pool or inside a transaction.
package postgres
