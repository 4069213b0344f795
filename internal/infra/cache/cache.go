package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store 提供 <dir>/responses.db 下的接口响应缓存（按 URL 取原始字节）。
//
// 约束：
// - 缓存内容只认 URL，不理解其语义；键值以外的决策（是否允许用缓存）由调用方做
// - 磁盘格式不做兼容性承诺：表结构变化时直接删库重建即可
type Store struct {
	db *sql.DB
}

var ErrClosed = errors.New("cache: closed")

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	url        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// Open 打开（必要时创建）缓存库。dir 为空时返回错误，由调用方决定默认目录。
func Open(dir string) (*Store, error) {
	dir = filepath.Clean(strings.TrimSpace(dir))
	if dir == "" || dir == "." {
		return nil, fmt.Errorf("cache: 目录不能为空")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: 创建目录失败：%w", err)
	}

	dsn := filepath.Join(dir, "responses.db")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: 打开数据库失败：%w", err)
	}
	// SQLite 单写者：限制连接数避免 SQLITE_BUSY。
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: 建表失败：%w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get 按 URL 读缓存；未命中时 ok=false 且无错误。
func (s *Store) Get(url string) (body []byte, ok bool, err error) {
	if s == nil || s.db == nil {
		return nil, false, ErrClosed
	}
	row := s.db.QueryRow(`SELECT body FROM responses WHERE url = ?`, url)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return body, true, nil
}

// Put 写入或覆盖一条响应。
func (s *Store) Put(url string, body []byte) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(`
		INSERT INTO responses (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			body=excluded.body,
			fetched_at=excluded.fetched_at
	`, url, body, time.Now().Unix())
	return err
}
