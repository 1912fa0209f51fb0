package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Capture the frame currently on the display",
	Long:  `Fetches the current frame from a running dashboard as PNG.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := rpcCall("frame", nil)
		if err != nil {
			return err
		}

		var frame struct {
			Format string `json:"format"`
			Data   string `json:"data"`
		}
		if err := json.Unmarshal(result, &frame); err != nil {
			return fmt.Errorf("invalid frame response: %w", err)
		}

		raw := frame.Data
		if idx := strings.Index(raw, "base64,"); idx >= 0 {
			raw = raw[idx+len("base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return fmt.Errorf("invalid frame data: %w", err)
		}

		if frameOutputPath == "" || frameOutputPath == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(frameOutputPath, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Frame saved to %s\n", frameOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(frameCmd)

	frameCmd.Flags().StringVarP(&frameOutputPath, "output", "o", "", "output file (default: stdout)")
	frameCmd.Flags().StringVar(&serverAddr, "server", "", "address of the running dashboard")
}
