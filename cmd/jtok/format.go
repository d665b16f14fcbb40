// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"os"

	"github.com/creachadair/jtok/format"
	"github.com/spf13/cobra"
)

func init() {
	var indent string
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Re-emit the input as JSON text",
		Long: `Re-emit the input as JSON text.

By default the output is indented by two spaces per level. Use --indent=""
for compact output. With no file, or "-", read standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeInput, err := openStream(inputName(args))
			if err != nil {
				return err
			}
			defer closeInput()
			return format.Copy(os.Stdout, st, indent)
		},
	}
	cmd.Flags().StringVar(&indent, "indent", "  ", "indentation per level (empty for compact output)")
	rootCmd.AddCommand(cmd)
}
