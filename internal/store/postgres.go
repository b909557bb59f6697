package store

import (
	"context"
	"database/sql"
	"fmt"
	"region-names/internal/logger"
	"region-names/internal/migrate"

	_ "github.com/lib/pq"
)

const upsertRegionSQL = `INSERT INTO _region_names(code, name, full_name, level, updated_at)
        VALUES($1,$2,$3,$4,now())
        ON CONFLICT (code) DO UPDATE SET name=EXCLUDED.name, full_name=EXCLUDED.full_name, level=EXCLUDED.level, updated_at=now()`

// PG：PostgreSQL 字典表同步
type PG struct {
	db        *sql.DB
	BatchSize int
}

func AttachDB(db *sql.DB) *PG { return &PG{db: db, BatchSize: 5000} }

func (p *PG) Name() string { return "postgres" }

// 文档注释：批量 UPSERT 区划全称
// 背景：每 BatchSize 行提交一次事务，降低锁持有与 WAL 压力；同代码重复出现时后者覆盖前者。
// 异常：建表、预编译、执行或提交失败直接返回，不做重试；已提交的批次保留。
func (p *PG) Sync(ctx context.Context, entries []Entry) (int, error) {
	if err := migrate.EnsureSchema(ctx, p.db); err != nil {
		return 0, fmt.Errorf("ensure schema: %w", err)
	}
	count := 0
	for _, b := range batches(len(entries), p.BatchSize) {
		n, err := p.syncBatch(ctx, entries[b[0]:b[1]])
		count += n
		if err != nil {
			return count, err
		}
		logger.L().Debug("pg_sync_progress", "count", count)
	}
	return count, nil
}

func (p *PG) syncBatch(ctx context.Context, entries []Entry) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, upsertRegionSQL)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Code, e.Name, e.FullName, e.Level.String()); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", e.Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}
