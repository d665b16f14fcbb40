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
		Use:   "count [file]",
		Short: "Count the elements of a top-level array",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := inputName(args)
			st, closeInput, err := openStream(name)
			if err != nil {
				return err
			}
			defer closeInput()

			n, err := countElements(st)
			if err != nil {
				return err
			}
			log.Debug().Str("input", name).Int("count", n).Msg("counted elements")
			fmt.Println(n)
			return nil
		},
	})
}

var errNotArray = errors.New("top-level value is not an array")

// countElements reports the number of elements in the array that makes up
// the input of st.
func countElements(st *jtok.Stream) (int, error) {
	var depth, n int
	for ev, err := range st.Events() {
		if err != nil {
			return 0, err
		} else if depth == 0 && ev != jtok.EOF && ev != jtok.StartArray {
			return 0, errNotArray
		}
		switch ev {
		case jtok.StartArray, jtok.StartObject:
			if depth == 1 {
				n++
			}
			depth++
		case jtok.EndArray, jtok.EndObject:
			depth--
		case jtok.FieldName, jtok.EOF:
			// not an element
		default:
			if depth == 1 {
				n++
			}
		}
	}
	return n, nil
}
