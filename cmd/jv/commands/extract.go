package commands

import (
	"errors"
	"fmt"

	"jpegvault/pkg/config"
	"jpegvault/pkg/container"
	"jpegvault/pkg/service"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <container>",
	Short: "Recover every photo packed into a container",
	Args:  cobra.ExactArgs(1),
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		if JV == nil {
			return fmt.Errorf("app not initialized")
		}
		out := cmd.OutOrStdout()

		n, err := service.NewVaultService(JV).Extract(cmd.Context(), args[0], func(target string, _ container.Segment) {
			fmt.Fprintf(out, "  → %s\n", target)
		})
		if errors.Is(err, container.ErrNothingHidden) {
			fmt.Fprintln(out, "⚠️  There is no photo to extract!")
			return nil
		}
		if err != nil {
			return err
		}

		suffix := ""
		if n > 1 {
			suffix = "s"
		}
		fmt.Fprintf(out, "✅ Extracted %d photo%s\n", n, suffix)
		return nil
	}),
}

func init() {
	extractCmd.Flags().StringP("dir", "d", "", "directory to write into (default from output.dir)")
	bindFlag(config.KeyExtractDir, extractCmd.Flags().Lookup("dir"))
	rootCmd.AddCommand(extractCmd)
}
