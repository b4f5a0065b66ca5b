// Package barstore loads OHLCV bars for a symbol and a time range.
//
// Two stores are provided: FileStore reads `<dir>/<symbol>.<ext>` files in
// CSV, parquet or JSON form, and PostgresStore queries a bars table through
// a pgx connection pool. Both apply the half-open range [start, end), treat
// a zero bound as unbounded and return ErrNoBars when nothing matches.
package barstore
