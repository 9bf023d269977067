package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vnime/internal/config"
)

var (
	configPath   string
	configFormat string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the vnime configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ResolvePath()
		}
		cfg, err := config.NewLoader(path).Load()
		if err != nil {
			return err
		}
		format := configFormat
		if format == "" {
			format = "toml"
			if path != "" {
				format = strings.TrimPrefix(filepath.Ext(path), ".")
			}
		}
		data, err := config.Encode(cfg, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file that would be loaded",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.ResolvePath()
		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Sprint("none (built-in defaults)"))
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	},
}

func init() {
	configShowCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: search the usual locations)")
	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "", "output format (toml, yaml, json, ini)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
