package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ethioagri/gebeya/config"
	"github.com/ethioagri/gebeya/pkg/metrics"
)

// Record is one row of the kv_records table: a JSON document under a
// unique string key. The whole value is overwritten on every Put; there
// is no field-level update at this layer.
type Record struct {
	Key       string    `gorm:"column:record_key;primaryKey;size:255"`
	Value     []byte    `gorm:"column:record_value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Record) TableName() string { return "kv_records" }

// Database is a Store backed by a single GORM table. With the default
// sqlite driver this is the durable local medium standing in for the
// browser localStorage the stores were designed around.
type Database struct {
	db *gorm.DB
}

// OpenDatabase opens the configured SQL database and migrates the
// kv_records table.
func OpenDatabase() (*Database, error) {
	dialector, err := buildDialector(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("kv/database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent), // pkg/logger owns output
	})
	if err != nil {
		return nil, fmt.Errorf("kv/database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("kv/database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("kv/database: migrate: %w", err)
	}

	return &Database{db: db}, nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

func (d *Database) Get(key string, dest interface{}) bool {
	var rec Record
	err := d.db.First(&rec, "record_key = ?", key).Error
	if err != nil {
		metrics.RecordKVMiss("database")
		return false
	}
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		metrics.RecordKVMiss("database")
		return false
	}

	metrics.RecordKVOp("database", "get")
	return true
}

func (d *Database) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	rec := Record{Key: key, Value: raw, UpdatedAt: time.Now()}
	err = d.db.Save(&rec).Error
	if err != nil {
		return fmt.Errorf("kv/database: save %s: %w", key, err)
	}

	metrics.RecordKVOp("database", "put")
	return nil
}

func (d *Database) Delete(key string) error {
	err := d.db.Delete(&Record{}, "record_key = ?", key).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("kv/database: delete %s: %w", key, err)
	}

	metrics.RecordKVOp("database", "delete")
	return nil
}

func (d *Database) Keys(prefix string) []string {
	var keys []string
	err := d.db.Model(&Record{}).
		Where("record_key LIKE ?", prefix+"%").
		Pluck("record_key", &keys).Error
	if err != nil {
		return nil
	}
	return keys
}
