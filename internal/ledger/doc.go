// Package ledger records completed pipeline runs in a SQLite database so the
// history command can show what was processed and when.
package ledger
