package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// 配置项的 Key，统一在这里定义，避免各处手写字符串
const (
	KeyContainerName = "output.container"
	KeyExtractDir    = "output.dir"

	KeyStorageType = "storage.type"
	KeyStoragePath = "storage.path"
	KeyS3Endpoint  = "storage.s3.endpoint"
	KeyS3Region    = "storage.s3.region"
	KeyS3Bucket    = "storage.s3.bucket"
	KeyS3AccessKey = "storage.s3.access_key"
	KeyS3SecretKey = "storage.s3.secret_key"

	KeyRedisURL = "cache.redis_url"
	KeyCacheTTL = "cache.ttl"

	KeyHistoryEnabled = "history.enabled"
	KeyHistoryDriver  = "history.driver"
	KeyHistoryPath    = "history.path"
	KeyDBHost         = "database.host"
	KeyDBPort         = "database.port"
	KeyDBUser         = "database.user"
	KeyDBPassword     = "database.password"
	KeyDBName         = "database.name"
	KeyDBSSLMode      = "database.sslmode"

	KeyReadConcurrency = "hide.read_concurrency"
	KeyLogLevel        = "log.level"
)

// Dir 是工作目录下存放配置和历史记录的目录
const Dir = ".jv"

// Load 初始化 Viper 配置
// cfgFile: 可选，用户显式指定的配置文件路径
func Load(cfgFile string) error {
	// 1. 设置默认值 (Defaults)
	setDefaults()

	// 2. 配置搜索路径
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		// 搜索顺序：当前目录 -> ./.jv -> ~/.jv
		viper.AddConfigPath(".")
		viper.AddConfigPath(Dir)
		viper.AddConfigPath(filepath.Join(home, Dir))

		viper.SetConfigType("yaml")
		viper.SetConfigName("config") // 找 config.yaml
	}

	// 3. 读取环境变量 (JV_OUTPUT_CONTAINER 等)
	viper.SetEnvPrefix("JV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 4. 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		// 只是没找到配置文件不算错，格式错才是错
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("no config file found, using defaults/env vars")
		} else {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	} else {
		slog.Debug("using config file", slog.String("path", viper.ConfigFileUsed()))
	}

	return nil
}

func setDefaults() {
	// 输出位置 (与最初的命令行工具保持一致)
	viper.SetDefault(KeyContainerName, "hidden.jpg")
	viper.SetDefault(KeyExtractDir, "extracted")

	// 存储默认值: 当前目录下的本地磁盘
	viper.SetDefault(KeyStorageType, "disk")
	viper.SetDefault(KeyStoragePath, ".")
	viper.SetDefault(KeyS3Region, "us-east-1")

	// 缓存默认关闭
	viper.SetDefault(KeyRedisURL, "")
	viper.SetDefault(KeyCacheTTL, "24h")

	// 历史记录默认关闭
	viper.SetDefault(KeyHistoryEnabled, false)
	viper.SetDefault(KeyHistoryDriver, "sqlite")
	viper.SetDefault(KeyHistoryPath, filepath.Join(Dir, "history.db"))
	viper.SetDefault(KeyDBHost, "localhost")
	viper.SetDefault(KeyDBPort, 5432)
	viper.SetDefault(KeyDBName, "jpegvault")
	viper.SetDefault(KeyDBSSLMode, "disable")

	viper.SetDefault(KeyReadConcurrency, 4)
	viper.SetDefault(KeyLogLevel, "warn")
}

// DefaultFile 返回 `jv init` 写出的默认配置内容
func DefaultFile() string {
	return `# jpegvault configuration
output:
  container: hidden.jpg
  dir: extracted

storage:
  type: disk        # disk | s3
  path: .
  # s3:
  #   endpoint: http://localhost:9000
  #   region: us-east-1
  #   bucket: jpegvault
  #   access_key: admin
  #   secret_key: password

cache:
  redis_url: ""     # e.g. redis://localhost:6379/0
  ttl: 24h

history:
  enabled: false
  driver: sqlite    # sqlite | postgres
  path: .jv/history.db

hide:
  read_concurrency: 4

log:
  level: warn
`
}

// ParseLevel 把配置里的字符串转换为 slog 级别，无法识别时返回 Warn
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return level
}
