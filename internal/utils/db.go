package utils

import (
	"database/sql"
	"net"
	"net/url"
	"strconv"

	_ "github.com/lib/pq"
)

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// 文档注释：由 PG_* 变量生成连接串
// 约束：用户名与密码经 URL 转义，含 @ : / 的密码也能正确解析；PG_PASSWORD 为空时不带密码段。
func BuildPostgresDSN(getenv func(string) string) string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(envOr(getenv, "PG_HOST", "localhost"), envOr(getenv, "PG_PORT", "5432")),
		Path:     "/" + envOr(getenv, "PG_DB", "regions"),
		RawQuery: url.Values{"sslmode": {envOr(getenv, "PG_SSLMODE", "disable")}}.Encode(),
	}
	user := envOr(getenv, "PG_USER", "postgres")
	if pass := getenv("PG_PASSWORD"); pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// OpenPostgres：批处理只有单条写入流，连接池默认很小
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	return db, nil
}

// OpenPostgresWith：按 PG_* 变量打开连接池；PG_MAX_OPEN_CONNS / PG_MAX_IDLE_CONNS 可覆盖池大小
func OpenPostgresWith(getenv func(string) string) (*sql.DB, error) {
	db, err := OpenPostgres(BuildPostgresDSN(getenv))
	if err != nil {
		return nil, err
	}
	if n, err := strconv.Atoi(getenv("PG_MAX_OPEN_CONNS")); err == nil {
		db.SetMaxOpenConns(n)
	}
	if n, err := strconv.Atoi(getenv("PG_MAX_IDLE_CONNS")); err == nil {
		db.SetMaxIdleConns(n)
	}
	return db, nil
}
