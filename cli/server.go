package cli

import (
	"fmt"

	"github.com/inkdash/inkdash/daemon"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage a backgrounded dashboard",
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized dashboard",
	Long:  `Connects to the running dashboard and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := daemon.KillServer(resolveAddr()); err != nil {
			return err
		}
		fmt.Println("Shutdown command sent successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.AddCommand(serverKillCmd)
	serverCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "address of the running dashboard")
}
