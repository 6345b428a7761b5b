// Package dbtest opens throwaway sqlite databases carrying the real schema.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/customercore-backend/pkg/config"
	"github.com/angelmondragon/customercore-backend/pkg/db"
	"github.com/angelmondragon/customercore-backend/pkg/migrate"
)

// DSN returns a private shared-cache in-memory database name with foreign keys on.
func DSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
}

// OpenSQLite returns a client on a fresh in-memory database migrated to the
// latest schema. The database is closed when the test ends.
func OpenSQLite(t testing.TB) *db.Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(DSN()), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection keeps the in-memory database alive and serializes access
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrate.SetLogger(nil)
	if err := migrate.Up(context.Background(), sqlDB, config.DriverSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db.NewFromGorm(conn)
}
