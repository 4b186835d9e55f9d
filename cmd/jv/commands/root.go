package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"jpegvault/pkg/app"
	"jpegvault/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	verbose    bool
	legacyMode string
	// 全局应用实例，供子命令使用
	JV *app.App
)

// legacyModes 是 --mode= 可以分派到的子命令
var legacyModes = []string{"hide", "extract", "readmessage", "savemessage", "removemessage"}

var rootCmd = &cobra.Command{
	Use:   "jv",
	Short: "jpegvault: hide photos and messages inside a JPEG",
	Long: `jpegvault packs several JPEG photos into the first one and keeps a text
message after the end of a photo. Viewers only ever show the first image.

The original flag style is still accepted:
  jv --mode=hide <path1> <path2> <path3>...
  jv --mode=extract <path>
  jv --mode=savemessage <path> <message>
  jv --mode=readmessage <path>
  jv --mode=removemessage <path>`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	// 【关键】PersistentPreRunE 会在所有子命令执行前运行
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 跳过 init 命令的依赖检查 (因为它就是去创建环境的)
		if cmd.Name() == "init" {
			return nil
		}
		// 根命令只服务于 --mode，先校验再初始化
		if !cmd.HasParent() {
			if _, err := resolveMode(cmd, legacyMode); err != nil {
				return err
			}
		}

		// 统一初始化 App
		var err error
		JV, err = app.NewApp(cmd.Context())
		if err != nil {
			// 友好的错误提示
			return fmt.Errorf("failed to initialize jpegvault: %w\n(Check your config, or run 'jv init')", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sub, err := resolveMode(cmd, legacyMode)
		if err != nil {
			return err
		}
		if err := sub.ValidateArgs(args); err != nil {
			_ = sub.Usage()
			return err
		}
		slog.Debug("legacy mode dispatch", slog.String("mode", legacyMode))
		return sub.RunE(sub, args)
	},
}

// resolveMode 把 --mode 的值映射到子命令，缺失或无法识别时打印用法
func resolveMode(cmd *cobra.Command, mode string) (*cobra.Command, error) {
	if mode == "" {
		_ = cmd.Usage()
		return nil, fmt.Errorf("no mode given")
	}
	if !slices.Contains(legacyModes, mode) {
		_ = cmd.Usage()
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	sub, _, err := cmd.Root().Find([]string{mode})
	if err != nil {
		return nil, err
	}
	sub.SetContext(cmd.Context())
	return sub, nil
}

// Execute 是入口
func Execute() error {
	return executeContext(context.Background())
}

// executeContext 执行命令，无论成功与否都释放 App 持有的连接
// (cobra 在 RunE 出错时不会调用 PersistentPostRunE)
func executeContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if JV != nil {
		if cerr := JV.Close(); cerr != nil && err == nil {
			err = cerr
		}
		JV = nil
	}
	return err
}

func init() {
	// 在初始化时，加载配置
	cobra.OnInitialize(initConfig)

	// 1. 定义全局参数 --config
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.jv/config.yaml or $HOME/.jv/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.Flags().StringVar(&legacyMode, "mode", "", "legacy mode: hide | extract | savemessage | readmessage | removemessage")

	// 2. 定义 storage.path 参数，并绑定到 Viper
	// 这样用户既可以在 yaml 里写，也可以用 --storage-path 覆盖
	rootCmd.PersistentFlags().String("storage-path", "", "Directory that relative paths are resolved against")
	bindFlag(config.KeyStoragePath, rootCmd.PersistentFlags().Lookup("storage-path"))
}

// bindFlag 把命令行参数绑定到配置项，绑定失败说明参数名写错了
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		fmt.Println("Failed to bind flag:", err)
		os.Exit(1)
	}
}

// initConfig 读取配置文件和环境变量，然后配置日志
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}
	setupLogging()
}

func setupLogging() {
	level := config.ParseLevel(viper.GetString(config.KeyLogLevel))
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
