package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultDatabasePath       = "mogbrew.db"
	defaultErrorsDatabasePath = "mogbrew-errors.db"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// ErrorsDB 是错误日志库的连接，与业务库分离，写入失败不影响业务请求。
var ErrorsDB *gorm.DB

// Init 初始化业务数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 mogbrew.db。
func Init(databasePath string) error {
	gdb, err := Open(databasePath, defaultDatabasePath)
	if err != nil {
		return err
	}

	if err := Migrate(gdb); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// InitErrors 初始化错误日志数据库。
func InitErrors(databasePath string) error {
	gdb, err := Open(databasePath, defaultErrorsDatabasePath)
	if err != nil {
		return err
	}

	if err := MigrateErrors(gdb); err != nil {
		return err
	}

	ErrorsDB = gdb
	return nil
}

// Open 打开 sqlite 数据库，时间统一按 UTC 写入。
func Open(databasePath, fallback string) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = fallback
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	return gorm.Open(sqlite.Open(path), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
}

// Migrate 为业务模型建表
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&BeerLog{})
}

// MigrateErrors 为错误日志建表
func MigrateErrors(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&ErrorRecord{})
}

// ensureParentDir 为文件型数据库创建所在目录，内存库与 file: DSN 跳过。
func ensureParentDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database dir %s: %w", dir, err)
	}
	return nil
}
