package migrate

import (
	"context"
	"database/sql"
	"region-names/internal/logger"
)

// 背景：首次同步时自动创建区划字典表与索引
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, s := range Statements() {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}

// Statements：建表语句，按顺序执行
func Statements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS _region_names (
            code TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            full_name TEXT NOT NULL,
            level TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_region_names_level ON _region_names(level)`,
	}
}
