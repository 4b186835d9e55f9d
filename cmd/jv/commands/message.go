package commands

import (
	"errors"
	"fmt"
	"strings"

	"jpegvault/pkg/message"
	"jpegvault/pkg/service"

	"github.com/spf13/cobra"
)

var readMessageCmd = &cobra.Command{
	Use:   "readmessage <photo>",
	Short: "Print the message stored after a photo",
	Args:  cobra.ExactArgs(1),
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		if JV == nil {
			return fmt.Errorf("app not initialized")
		}

		msg, err := service.NewVaultService(JV).ReadMessage(cmd.Context(), args[0])
		if errors.Is(err, message.ErrNoMessage) {
			fmt.Fprintln(cmd.OutOrStdout(), "⚠️  There is no message in this photo!")
			return nil
		}
		if err != nil {
			return err
		}

		// 原样输出，方便管道处理
		fmt.Fprintln(cmd.OutOrStdout(), string(msg))
		return nil
	}),
}

var saveMessageCmd = &cobra.Command{
	Use:   "savemessage <photo> <message>...",
	Short: "Store a message after a photo, replacing any previous one",
	Long:  `Store a message after a photo. Multiple words are joined with single spaces.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		if JV == nil {
			return fmt.Errorf("app not initialized")
		}

		msg := strings.Join(args[1:], " ")
		if err := service.NewVaultService(JV).SaveMessage(cmd.Context(), args[0], []byte(msg)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Saved!")
		return nil
	}),
}

var removeMessageCmd = &cobra.Command{
	Use:   "removemessage <photo>",
	Short: "Drop the message stored after a photo",
	Args:  cobra.ExactArgs(1),
	RunE: intercept(func(cmd *cobra.Command, args []string) error {
		if JV == nil {
			return fmt.Errorf("app not initialized")
		}

		if err := service.NewVaultService(JV).RemoveMessage(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Removed!")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(readMessageCmd)
	rootCmd.AddCommand(saveMessageCmd)
	rootCmd.AddCommand(removeMessageCmd)
}
