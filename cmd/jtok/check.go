// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/jtok"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "check [file...]",
		Short: "Check that each input is valid JSON",
		Long: `Check that each input is valid JSON.

Each invalid input is logged with the location of the problem. The command
fails if any input is invalid. With no files, read standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			var nbad int
			for _, name := range args {
				if err := checkInput(name); err != nil {
					nbad++
					ev := log.Error().Str("input", name)
					var serr *jtok.SyntaxError
					if errors.As(err, &serr) {
						ev = ev.Stringer("at", serr.Location).Int64("offset", serr.Offset)
					}
					ev.Err(err).Msg("invalid input")
					continue
				}
				log.Debug().Str("input", name).Msg("ok")
			}
			if nbad != 0 {
				return fmt.Errorf("%d of %d inputs are invalid", nbad, len(args))
			}
			return nil
		},
	})
}

// checkInput parses the named input and reports the first error, if any.
func checkInput(name string) error {
	st, closeInput, err := openStream(name)
	if err != nil {
		return err
	}
	defer closeInput()
	for _, err := range st.Events() {
		if err != nil {
			return err
		}
	}
	return nil
}
