package cli

import (
	"github.com/spf13/cobra"
)

var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List the screens of a running dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := rpcCall("screens", nil)
		if err != nil {
			return err
		}
		printRPCResult(result)
		return nil
	},
}

var screensGotoCmd = &cobra.Command{
	Use:   "goto [name]",
	Short: "Jump to a screen by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := rpcCall("screen_goto", map[string]string{"name": args[0]})
		if err != nil {
			return err
		}
		printRPCResult(result)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch widget data and redraw",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := rpcCall("widgets_refresh", nil)
		if err != nil {
			return err
		}
		printRPCResult(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(screensCmd)
	rootCmd.AddCommand(refreshCmd)

	screensCmd.AddCommand(screensGotoCmd)

	screensCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "address of the running dashboard")
	refreshCmd.Flags().StringVar(&serverAddr, "server", "", "address of the running dashboard")
}
