package ingester

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"jpegvault/pkg/container"
	"jpegvault/pkg/ignore"
	"jpegvault/pkg/storage"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency 是同时读取的源文件数量上限
const DefaultConcurrency = 4

type Config struct {
	// WalkRoot 是本地文件系统上解析相对路径的基准目录
	// 为空时不展开目录 (例如 S3 后端)
	WalkRoot    string
	Matcher     *ignore.Matcher
	Concurrency int
}

// Ingester 负责把用户给出的路径变成编码器的输入
type Ingester struct {
	store       storage.Store
	matcher     *ignore.Matcher
	walkRoot    string
	concurrency int
}

func NewIngester(store storage.Store, cfg Config) *Ingester {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Ingester{
		store:       store,
		matcher:     cfg.Matcher,
		walkRoot:    cfg.WalkRoot,
		concurrency: cfg.Concurrency,
	}
}

// Expand 把目录参数展开成其下的文件列表 (WalkDir 的字典序)
// 普通文件参数原样保留，不经过忽略规则
func (ing *Ingester) Expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !ing.isLocalDir(arg) {
			paths = append(paths, arg)
			continue
		}

		walked, err := ing.walk(arg)
		if err != nil {
			return nil, err
		}
		slog.Debug("expanded directory", slog.String("dir", arg), slog.Int("files", len(walked)))
		paths = append(paths, walked...)
	}
	return paths, nil
}

func (ing *Ingester) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(ing.walkRoot, p)
}

func (ing *Ingester) isLocalDir(p string) bool {
	if ing.walkRoot == "" {
		return false
	}
	info, err := os.Stat(ing.resolve(p))
	return err == nil && info.IsDir()
}

func (ing *Ingester) walk(dir string) ([]string, error) {
	base := ing.resolve(dir)
	var paths []string

	walkFn := func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return err // 权限错误等
		}

		rel, err := filepath.Rel(base, full)
		if err != nil {
			return err
		}
		// 记录的路径保持用户的写法: 参数目录 + 相对路径
		recorded := filepath.Join(dir, rel)

		if rel != "." && ing.matcher.Matches(recorded) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// 只收集普通文件，跳过符号链接、设备文件等
		if !d.Type().IsRegular() {
			return nil
		}
		paths = append(paths, recorded)
		return nil
	}

	if err := filepath.WalkDir(base, walkFn); err != nil {
		return nil, fmt.Errorf("walk %s failed: %w", dir, err)
	}
	return paths, nil
}

// Load 并发读取所有源文件，结果顺序与 paths 一致
// 任一文件读取失败都会取消整个操作，报告的是列表里最靠前的失败路径
func (ing *Ingester) Load(ctx context.Context, paths []string) ([]container.Source, error) {
	sources := make([]container.Source, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.concurrency)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			data, err := ing.store.ReadFile(gctx, p)
			if err != nil {
				// 每个 goroutine 只写自己的槽位，不需要加锁
				errs[i] = fmt.Errorf("could not open the file %s: %w", p, err)
				return errs[i]
			}
			sources[i] = container.Source{Path: p, Data: data}
			return nil
		})
	}

	// Wait 返回的是时间上最早的错误，这里按列表顺序重新挑选
	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil && !errors.Is(e, context.Canceled) {
				return nil, e
			}
		}
		return nil, err
	}
	return sources, nil
}
