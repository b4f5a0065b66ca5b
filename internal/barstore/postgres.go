package barstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
)

const selectBars = `SELECT ts, open, high, low, close, volume
FROM bars
WHERE symbol = $1
  AND ($2::timestamptz IS NULL OR ts >= $2)
  AND ($3::timestamptz IS NULL OR ts < $3)
ORDER BY ts`

type barRow struct {
	Ts     time.Time       `db:"ts"`
	Open   decimal.Decimal `db:"open"`
	High   decimal.Decimal `db:"high"`
	Low    decimal.Decimal `db:"low"`
	Close  decimal.Decimal `db:"close"`
	Volume decimal.Decimal `db:"volume"`
}

type barsRepository interface {
	QueryBars(ctx context.Context, symbol string, start, end *time.Time) ([]barRow, error)
}

// PostgresStore loads bars from a `bars(symbol, ts, open, high, low, close,
// volume)` table.
type PostgresStore struct {
	bars barsRepository
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and verifies connectivity.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{bars: pgxBars{pool: pool}, pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Load(ctx context.Context, symbol string, start, end time.Time) ([]bars.Bar, error) {
	rows, err := s.bars.QueryBars(ctx, symbol, optionalTime(start), optionalTime(end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoBars
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoBars
	}

	ctxlog.FromContext(ctx).Debug("PostgresStore: bars loaded.", "symbol", symbol, "rows", len(rows))
	return convertRows(rows), nil
}

func convertRows(rows []barRow) []bars.Bar {
	out := make([]bars.Bar, len(rows))
	for i, r := range rows {
		out[i] = bars.Bar{
			Timestamp: r.Ts.UnixMilli(),
			Open:      r.Open.InexactFloat64(),
			High:      r.High.InexactFloat64(),
			Low:       r.Low.InexactFloat64(),
			Close:     r.Close.InexactFloat64(),
			Volume:    r.Volume.InexactFloat64(),
		}
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

type pgxBars struct {
	pool *pgxpool.Pool
}

func (q pgxBars) QueryBars(ctx context.Context, symbol string, start, end *time.Time) ([]barRow, error) {
	rows, err := q.pool.Query(ctx, selectBars, symbol, start, end)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[barRow])
}
