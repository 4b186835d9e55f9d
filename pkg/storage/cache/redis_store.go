package cache

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"jpegvault/pkg/storage"

	"github.com/redis/go-redis/v9"
)

// CachedStore 是一个装饰器，它为底层的 storage.Store 添加 Redis 存在性缓存
// 只缓存 "存在" 这一事实，文件内容一律透传
type CachedStore struct {
	backend   storage.Store
	client    *redis.Client
	ttl       time.Duration
	namespace string
}

type Config struct {
	RedisURL string        // 标准连接字符串: redis://<user>:<password>@<host>:<port>/<db>
	TTL      time.Duration // 过期时间
	// Namespace 区分不同的存储后端 (磁盘根目录或 bucket)，
	// 否则不同根目录下的同名路径会共用一个缓存项
	Namespace string
}

func NewCachedStore(backend storage.Store, cfg Config) (*CachedStore, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Fail-fast 连接检查
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &CachedStore{
		backend:   backend,
		client:    client,
		ttl:       cfg.TTL,
		namespace: cfg.Namespace,
	}, nil
}

// cacheKey 生成 Redis Key，添加前缀防止冲突
func (s *CachedStore) cacheKey(path string) string {
	return "jv:" + s.namespace + ":path:" + filepath.ToSlash(filepath.Clean(path))
}

func (s *CachedStore) markExists(ctx context.Context, path string) {
	if err := s.client.Set(ctx, s.cacheKey(path), "1", s.ttl).Err(); err != nil {
		slog.Warn("redis set failed", slog.String("path", path), slog.String("err", err.Error()))
	}
}

// Exists 优先查 Redis
func (s *CachedStore) Exists(ctx context.Context, path string) (bool, error) {
	val, err := s.client.Exists(ctx, s.cacheKey(path)).Result()
	if err != nil {
		// 缓存故障降级: Redis 挂了就直接查底层存储
		slog.Warn("redis exists failed, falling back to backend", slog.String("err", err.Error()))
	} else if val > 0 {
		return true, nil
	}

	found, err := s.backend.Exists(ctx, path)
	if err != nil {
		return false, err
	}
	if found {
		s.markExists(ctx, path)
	}
	return found, nil
}

// ReadFile 透传，不缓存图片内容
func (s *CachedStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := s.backend.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	s.markExists(ctx, path)
	return data, nil
}

// WriteFile 只有底层写成功了，才写 Redis
func (s *CachedStore) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := s.backend.WriteFile(ctx, path, data); err != nil {
		return err
	}
	s.markExists(ctx, path)
	return nil
}

// Mkdir 缓存命中时跳过底层调用
func (s *CachedStore) Mkdir(ctx context.Context, path string) error {
	exists, err := s.Exists(ctx, path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := s.backend.Mkdir(ctx, path); err != nil {
		return err
	}
	s.markExists(ctx, path)
	return nil
}

// Close 释放 Redis 连接
func (s *CachedStore) Close() error {
	return s.client.Close()
}
