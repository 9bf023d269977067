package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vnime/internal/buffer"
	"vnime/internal/syllable"
	"vnime/internal/validation"
)

var syllableCmd = &cobra.Command{
	Use:   "syllable <word>...",
	Short: "Split Vietnamese words into initial, nucleus and coda",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, word := range args {
			chars, ok := buffer.ParseWord(word)
			if !ok {
				fmt.Fprintf(w, "%s %s\n", keyStyle.Sprint(word), errStyle.Sprint("not a word"))
				continue
			}
			s := syllable.Parse(chars)
			res := validation.Default.Validate(s)
			style := okStyle
			if res != validation.Valid {
				style = errStyle
			}
			fmt.Fprintf(w, "%s %s %s plausible=%t\n",
				keyStyle.Sprint(word), validation.Describe(s), style.Sprint(res), validation.Default.Plausible(s))
		}
		return nil
	},
}
