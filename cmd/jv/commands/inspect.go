package commands

import (
	"errors"
	"fmt"

	"jpegvault/pkg/container"
	"jpegvault/pkg/exporter"
	"jpegvault/pkg/service"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "List the photos packed into a container without extracting them",
	Args:  cobra.ExactArgs(1),
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		if JV == nil {
			return fmt.Errorf("app not initialized")
		}

		infos, err := service.NewVaultService(JV).Inspect(cmd.Context(), args[0])
		if errors.Is(err, container.ErrNothingHidden) {
			fmt.Fprintln(cmd.OutOrStdout(), "⚠️  There is no photo to extract!")
			return nil
		}
		if err != nil {
			return err
		}
		return exporter.PrintSegments(cmd.OutOrStdout(), infos)
	}),
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
