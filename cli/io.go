package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var ioCmd = &cobra.Command{
	Use:   "io",
	Short: "Inject input into a running dashboard",
	Long:  `Sends synthetic gestures to a running dashboard over JSON-RPC, using the same dispatch path as the touch panel.`,
}

func parseCoords(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinate format. Expected 'x,y', got '%s'", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid coordinate values. x and y must be integers. Got x='%s', y='%s'", parts[0], parts[1])
	}
	return x, y, nil
}

var ioTapCmd = &cobra.Command{
	Use:   "tap [x,y]",
	Short: "Tap the display at the given coordinates",
	Long:  `Sends a tap at display coordinates x,y. Edge-zone taps navigate between screens like a physical tap would.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := parseCoords(args[0])
		if err != nil {
			return err
		}
		result, err := rpcCall("io_tap", map[string]int{"x": x, "y": y})
		if err != nil {
			return err
		}
		printRPCResult(result)
		return nil
	},
}

var ioSwipeCmd = &cobra.Command{
	Use:   "swipe [direction]",
	Short: "Swipe the display in a direction",
	Long:  `Sends a swipe gesture: left or right changes screens, up and down are currently ignored.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := rpcCall("io_swipe", map[string]string{"direction": args[0]})
		if err != nil {
			return err
		}
		printRPCResult(result)
		return nil
	},
}

var ioLongPressCmd = &cobra.Command{
	Use:   "longpress [x,y]",
	Short: "Long press the display at the given coordinates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := parseCoords(args[0])
		if err != nil {
			return err
		}
		result, err := rpcCall("io_longpress", map[string]int{"x": x, "y": y})
		if err != nil {
			return err
		}
		printRPCResult(result)
		return nil
	},
}

var ioZipCmd = &cobra.Command{
	Use:   "zip",
	Short: "Open the on-screen postal code numpad",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := rpcCall("zip_prompt", nil)
		if err != nil {
			return err
		}
		printRPCResult(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ioCmd)

	ioCmd.AddCommand(ioTapCmd)
	ioCmd.AddCommand(ioSwipeCmd)
	ioCmd.AddCommand(ioLongPressCmd)
	ioCmd.AddCommand(ioZipCmd)

	ioCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "address of the running dashboard")
}
