// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jtok"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "events [file]",
		Short: "Print the events of the input, one per line",
		Long: `Print the events of the input, one per line.

Each line gives the number of characters consumed when the event was
reported, the event, and its value if it has one. With no file, or "-",
read standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeInput, err := openStream(inputName(args))
			if err != nil {
				return err
			}
			defer closeInput()

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			return printEvents(w, st)
		},
	})
}

// printEvents writes a line to w for each event of st.
func printEvents(w io.Writer, st *jtok.Stream) error {
	p := st.Parser()
	for ev, err := range st.Events() {
		if err != nil {
			return err
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d\t%v", p.ParsedCharacterCount(), ev)
		switch ev {
		case jtok.FieldName, jtok.ValueString:
			fmt.Fprintf(&sb, "\t%s", jtok.Quote(p.CurrentString()))
		case jtok.ValueInt, jtok.ValueDouble:
			fmt.Fprintf(&sb, "\t%s", p.Text())
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
