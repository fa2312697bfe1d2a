package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

// MySQL error numbers treated as the backend refusing more data.
const (
	errDataTooLong    = 1406
	errRecordFileFull = 1114
	errPacketTooLarge = 1153
)

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv_store (
	namespace  VARCHAR(64)  NOT NULL,
	k          VARCHAR(191) NOT NULL,
	v          MEDIUMTEXT   NOT NULL,
	updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (namespace, k)
)`

// MySQLAdapter keeps key-value pairs in the kv_store table, one row per key
// within a namespace.
type MySQLAdapter struct {
	db        *sql.DB
	namespace string
}

func NewMySQLAdapter(db *sql.DB, namespace string) *MySQLAdapter {
	if namespace == "" {
		namespace = "default"
	}
	return &MySQLAdapter{db: db, namespace: namespace}
}

// EnsureSchema creates the kv_store table when it is missing.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createKVTable); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := m.db.QueryRowContext(ctx, `
		SELECT v FROM kv_store WHERE namespace = ? AND k = ?`, m.namespace, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query kv %s: %w: %v", key, domain.ErrStorageUnavailable, err)
	}
	return value, true, nil
}

func (m *MySQLAdapter) Set(ctx context.Context, key, value string) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO kv_store (namespace, k, v) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE v = VALUES(v)`,
		m.namespace, key, value,
	)
	if err != nil {
		if isQuotaError(err) {
			return fmt.Errorf("upsert kv %s: %w: quota exceeded: %v", key, domain.ErrStorageUnavailable, err)
		}
		return fmt.Errorf("upsert kv %s: %w: %v", key, domain.ErrStorageUnavailable, err)
	}
	return nil
}

func isQuotaError(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	switch myErr.Number {
	case errDataTooLong, errRecordFileFull, errPacketTooLarge:
		return true
	}
	return false
}
