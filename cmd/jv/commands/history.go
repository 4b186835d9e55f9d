package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"jpegvault/pkg/core"
	"jpegvault/pkg/exporter"
	"jpegvault/pkg/service"
	"jpegvault/pkg/types"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	historyLimit int
	historyKind  string
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show recorded operations, newest first",
	Long: `Show recorded operations, newest first. Recording is enabled with history.enabled: true.
With an id (or a unique prefix such as the short id in the listing), show that operation
and the photos it touched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		if JV == nil {
			return fmt.Errorf("app not initialized")
		}
		svc := service.NewVaultService(JV)

		// 1. 详情模式
		if len(args) == 1 {
			rec, err := svc.Operation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printOperation(cmd.OutOrStdout(), rec)
		}

		// 2. 列表模式
		ops, err := svc.History(cmd.Context(), types.OpKind(historyKind), historyLimit)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "⚠️  No operations recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tOP\tSEGMENTS\tTARGET")
		for _, op := range ops {
			when := time.Unix(0, op.Timestamp).Format(timeLayout)
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				types.Hash(op.ID).Short(), when, op.Kind, op.SegmentCount, op.Target)
		}
		return w.Flush()
	}),
}

func printOperation(w io.Writer, rec *core.Record) error {
	fmt.Fprintf(w, "operation %s\n", rec.ID())
	fmt.Fprintf(w, "Op:     %s\n", rec.Kind)
	fmt.Fprintf(w, "Target: %s\n", rec.Target)
	fmt.Fprintf(w, "Date:   %s\n", time.Unix(0, rec.Timestamp).Format(timeLayout))
	if len(rec.Segments) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	return exporter.PrintSegments(w, rec.Segments)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 = all)")
	historyCmd.Flags().StringVar(&historyKind, "op", "", "only show one operation kind (hide, extract, savemessage, removemessage)")
	rootCmd.AddCommand(historyCmd)
}
