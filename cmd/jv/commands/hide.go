package commands

import (
	"fmt"
	"time"

	"jpegvault/pkg/config"
	"jpegvault/pkg/exporter"
	"jpegvault/pkg/service"

	"github.com/spf13/cobra"
)

var hideCmd = &cobra.Command{
	Use:   "hide <cover> <photo>...",
	Short: "Pack photos into one JPEG container",
	Long: `Pack every given photo into a single container file. The first photo is the
one image viewers display. Directories are expanded to the files beneath them,
skipping anything matched by .jvignore.`,
	Args: cobra.MinimumNArgs(1),
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		if JV == nil {
			return fmt.Errorf("app not initialized")
		}
		start := time.Now()

		res, err := service.NewVaultService(JV).Hide(cmd.Context(), args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, seg := range res.Segments {
			fmt.Fprintf(out, "  + %s (%s)\n", seg.Path, exporter.FmtSize(seg.Size))
		}
		fmt.Fprintf(out, "✅ Hid %d photo(s) in %s (%s) in %s\n",
			len(res.Segments), res.Target, exporter.FmtSize(res.Size), time.Since(start).Round(time.Millisecond))
		return nil
	}),
}

func init() {
	hideCmd.Flags().StringP("output", "o", "", "container file to write (default from output.container)")
	bindFlag(config.KeyContainerName, hideCmd.Flags().Lookup("output"))
	rootCmd.AddCommand(hideCmd)
}
