package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/subtrack/backend/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite database that stands in for PostgreSQL
// during integration tests.
type Db struct {
	Conn   *gorm.DB
	models []any
}

// NewDb opens (once) the shared in-memory database with the application schema
// migrated. Scenarios call Reset between runs instead of reopening.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	// A single connection keeps the shared cache alive for the whole suite.
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	d := &Db{
		Conn: conn,
		models: []any{
			&model.SubscriptionModel{},
			&model.PaymentStreamModel{},
			&model.DeviceModel{},
			&model.ReminderJobModel{},
		},
	}

	if err := conn.AutoMigrate(d.models...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}
	for _, m := range d.models {
		if !conn.Migrator().HasTable(m) {
			panic(fmt.Sprintf("table for model %T was not created", m))
		}
	}

	return d
}

// Reset empties every table so the next scenario starts from a clean slate.
func (d *Db) Reset() error {
	for _, m := range d.models {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", m, err)
		}
	}
	return nil
}
