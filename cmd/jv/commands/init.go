package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"jpegvault/pkg/config"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default jpegvault config",
	Long:  `Create .jv/config.yaml in the current directory with every option at its default.`,
	Args:  cobra.NoArgs,
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		// 1. 获取当前路径
		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		// 2. 定义配置路径 (.jv/config.yaml)
		cfgDir := filepath.Join(wd, config.Dir)
		cfgPath := filepath.Join(cfgDir, "config.yaml")

		// 3. 检查是否已存在
		if _, err := os.Stat(cfgPath); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  jpegvault config already exists in %s\n", cfgPath)
			return nil
		}

		// 4. 写出默认配置
		if err := os.MkdirAll(cfgDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(cfgPath, []byte(config.DefaultFile()), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Initialized jpegvault config in %s\n", cfgPath)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initCmd)
}
