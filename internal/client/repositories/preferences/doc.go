// Package preferences persists flat string preferences of the client in the
// local SQLite "preferences" table. Repositories are bound to a dbx.DBTX so
// the same code runs against a *sql.DB or inside a transaction.
package preferences
