package cli

import (
	"fmt"
	"sort"

	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/widgets"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and edit the configuration file",
	Long:  `Reads and edits the dashboard configuration. Works directly on the config file; a running dashboard picks up most changes on its next restart.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one config value, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile())
		if err != nil {
			return err
		}

		if len(args) == 1 {
			value, err := cfg.GetKey(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		}

		keys := cfg.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			if v, err := cfg.GetKey(k); err == nil {
				fmt.Printf("%s = %s\n", k, v)
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a config value and save the file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile())
		if err != nil {
			return err
		}
		if err := cfg.SetKey(args[0], args[1]); err != nil {
			return err
		}
		return cfg.Save()
	},
}

var configApiKeyCmd = &cobra.Command{
	Use:   "apikey [key]",
	Short: "Store the Finnhub API key in the system keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := widgets.StoreAPIKey(args[0]); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
		fmt.Println("API key stored")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configApiKeyCmd)

	configCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
}
