package meta

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config 数据库配置
type Config struct {
	Driver string // "sqlite" (默认) 或 "postgres"

	// sqlite
	Path string

	// postgres
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable" for local
}

// DB 封装了 GORM 实例，作为历史记录层的入口
type DB struct {
	conn *gorm.DB
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "", DriverSQLite:
		if c.Path == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		// 数据库文件所在目录可能还不存在 (例如 .jv)
		if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history dir: %w", err)
		}
		return sqlite.Open(c.Path), nil
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
			c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported history driver: %s", c.Driver)
	}
}

// NewDB 初始化数据库连接并迁移表结构
func NewDB(ctx context.Context, cfg Config) (*DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	// CLI 场景下不打印 SQL，避免干扰输出
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	metaDB := &DB{conn: db}
	if err := metaDB.AutoMigrate(&OperationModel{}); err != nil {
		return nil, fmt.Errorf("auto migration failed: %w", err)
	}
	return metaDB, nil
}

// NewWithConn 允许使用现有的 GORM 连接初始化 DB (单元测试用内存 SQLite)
func NewWithConn(conn *gorm.DB) *DB {
	return &DB{conn: conn}
}

// AutoMigrate 自动迁移表结构
func (d *DB) AutoMigrate(models ...any) error {
	return d.conn.AutoMigrate(models...)
}

func (d *DB) GetConn() *gorm.DB {
	return d.conn
}

// Close 关闭底层连接池
func (d *DB) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
