package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vnime/internal/shortcut"
)

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Inspect shortcut files",
}

var shortcutsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate shortcut files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			table, err := shortcut.Load(path)
			if err != nil {
				failed++
				var verr *shortcut.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(w, "%s %s\n", errStyle.Sprint("invalid:"), verr.Error())
				} else {
					fmt.Fprintf(w, "%s %s: %v\n", errStyle.Sprint("error:"), path, err)
				}
				continue
			}
			fmt.Fprintf(w, "%s %s (%d shortcuts)\n", okStyle.Sprint("ok:"), path, table.Len())
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

var shortcutsListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "Print the shortcuts of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := shortcut.Load(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, s := range table.All() {
			fmt.Fprintf(w, "%s\t%s\t%s %s %s\n",
				keyStyle.Sprint(s.Trigger), s.Replacement,
				labelStyle.Sprint(s.When), labelStyle.Sprint(s.Case), labelStyle.Sprint(s.Scope))
		}
		return nil
	},
}

func init() {
	shortcutsCmd.AddCommand(shortcutsCheckCmd)
	shortcutsCmd.AddCommand(shortcutsListCmd)
}
