package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// New 建立 pgx 连接池。连接池在进程启动时建立一次，之后注入各 repo 复用。
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}
