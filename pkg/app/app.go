// pkg/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"jpegvault/pkg/config"
	"jpegvault/pkg/exporter"
	"jpegvault/pkg/ignore"
	"jpegvault/pkg/ingester"
	"jpegvault/pkg/meta"
	"jpegvault/pkg/storage"
	"jpegvault/pkg/storage/cache"
	"jpegvault/pkg/storage/disk"
	"jpegvault/pkg/storage/s3"

	"github.com/spf13/viper"
)

// App 是整个应用程序的依赖容器 (Dependency Container)
// 它持有所有“单例”服务
type App struct {
	Store    storage.Store
	Ingester *ingester.Ingester
	Exporter *exporter.Exporter
	// History 为 nil 表示未开启历史记录
	History *meta.Repository

	ContainerName string
	ExtractDir    string

	closers []func() error
}

// NewApp 是工厂函数，负责组装这一台机器
// 它遵循 Viper 的配置，但不知道具体的 CLI 命令
func NewApp(ctx context.Context) (*App, error) {
	// 1. 获取存储根路径 (Single Source of Truth)
	root := viper.GetString(config.KeyStoragePath)
	if root == "" {
		return nil, fmt.Errorf("storage path not set")
	}

	a := &App{
		ContainerName: viper.GetString(config.KeyContainerName),
		ExtractDir:    viper.GetString(config.KeyExtractDir),
	}

	// 2. 初始化存储层 (Dependency Injection)
	store, err := initStore(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	a.Store = store

	// 3. 可选的 Redis 存在性缓存
	if url := viper.GetString(config.KeyRedisURL); url != "" {
		cached, err := cache.NewCachedStore(store, cache.Config{
			RedisURL:  url,
			TTL:       viper.GetDuration(config.KeyCacheTTL),
			Namespace: cacheNamespace(store),
		})
		if err != nil {
			return nil, err
		}
		slog.Debug("redis cache enabled", slog.String("url", url))
		a.Store = cached
		a.closers = append(a.closers, cached.Close)
	}

	// 4. 目录展开只对本地磁盘有意义
	walkRoot := ""
	if d, ok := store.(*disk.Adapter); ok {
		walkRoot = d.Root()
	}
	matcher, err := ignore.NewMatcher(walkRoot, a.ContainerName, a.ExtractDir)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load ignore rules: %w", err)
	}

	a.Ingester = ingester.NewIngester(a.Store, ingester.Config{
		WalkRoot:    walkRoot,
		Matcher:     matcher,
		Concurrency: viper.GetInt(config.KeyReadConcurrency),
	})
	a.Exporter = exporter.NewExporter(a.Store)

	// 5. 历史记录 (默认关闭)
	if viper.GetBool(config.KeyHistoryEnabled) {
		db, err := meta.NewDB(ctx, historyConfig())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		a.History = meta.NewRepository(db)
		a.closers = append(a.closers, db.Close)
	}

	return a, nil
}

// initStore 根据 storage.type 选择存储后端
func initStore(ctx context.Context, root string) (storage.Store, error) {
	storageType := viper.GetString(config.KeyStorageType)

	switch storageType {
	case "", "disk":
		d, err := disk.NewAdapter(root)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "s3":
		bucket := viper.GetString(config.KeyS3Bucket)
		if bucket == "" {
			return nil, fmt.Errorf("s3 bucket is required")
		}
		s, err := s3.NewAdapter(ctx, s3.Config{
			Endpoint:        viper.GetString(config.KeyS3Endpoint),
			Region:          viper.GetString(config.KeyS3Region),
			Bucket:          bucket,
			AccessKeyID:     viper.GetString(config.KeyS3AccessKey),
			SecretAccessKey: viper.GetString(config.KeyS3SecretKey),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// cacheNamespace 返回标识存储后端的缓存前缀: 磁盘用绝对根目录，S3 用 endpoint + bucket
func cacheNamespace(store storage.Store) string {
	if d, ok := store.(*disk.Adapter); ok {
		root, err := filepath.Abs(d.Root())
		if err != nil {
			root = d.Root()
		}
		return "disk:" + filepath.ToSlash(root)
	}
	return "s3:" + viper.GetString(config.KeyS3Endpoint) + "/" + viper.GetString(config.KeyS3Bucket)
}

func historyConfig() meta.Config {
	return meta.Config{
		Driver:   viper.GetString(config.KeyHistoryDriver),
		Path:     viper.GetString(config.KeyHistoryPath),
		Host:     viper.GetString(config.KeyDBHost),
		Port:     viper.GetInt(config.KeyDBPort),
		User:     viper.GetString(config.KeyDBUser),
		Password: viper.GetString(config.KeyDBPassword),
		DBName:   viper.GetString(config.KeyDBName),
		SSLMode:  viper.GetString(config.KeyDBSSLMode),
	}
}

// Close 释放 Redis 连接和数据库连接
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
