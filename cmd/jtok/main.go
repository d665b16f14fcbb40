// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jtok reads JSON text and reports or rewrites the events produced
// by an incremental tokenizer.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jtok"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
	"golang.org/x/text/encoding/unicode"
)

var (
	verbosity  int
	encName    string
	bufferSize int
	maxDepth   int
	chunkSize  int
	useHuJSON  bool
)

var rootCmd = &cobra.Command{
	Use:           "jtok",
	Short:         "jtok tokenizes JSON text incrementally",
	SilenceErrors: true, // reported by main
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbosity == 1 {
			level = zerolog.DebugLevel
		} else if verbosity >= 2 {
			level = zerolog.TraceLevel
		}
		log.Logger = log.Logger.Level(level)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", "verbose output")
	pf.StringVar(&encName, "encoding", "UTF-8", "character encoding of the input (IANA name)")
	pf.IntVar(&bufferSize, "buffer-size", jtok.DefaultBufferSize, "feeder capacity in bytes")
	pf.IntVar(&maxDepth, "max-depth", jtok.DefaultMaxDepth, "maximum nesting of objects and arrays")
	pf.IntVar(&chunkSize, "chunk-size", jtok.DefaultChunkSize, "bytes to read from the input at once")
	pf.BoolVar(&useHuJSON, "hujson", false, "accept comments and trailing commas (HuJSON)")
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("jtok failed")
		os.Exit(1)
	}
}

// parserOptions returns parser settings from the command-line flags.
func parserOptions() (*jtok.Options, error) {
	enc, err := jtok.LookupEncoding(encName)
	if err != nil {
		return nil, fmt.Errorf("invalid --encoding: %w", err)
	}
	if useHuJSON && enc != unicode.UTF8 {
		return nil, errors.New("--hujson requires UTF-8 input")
	}
	if bufferSize <= 0 {
		return nil, fmt.Errorf("invalid --buffer-size %d", bufferSize)
	} else if maxDepth <= 0 {
		return nil, fmt.Errorf("invalid --max-depth %d", maxDepth)
	}
	return &jtok.Options{
		Encoding:   enc,
		BufferSize: bufferSize,
		MaxDepth:   maxDepth,
	}, nil
}

// inputName returns the name of the input file from args, or "-" for stdin.
func inputName(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// openStream opens the named input, or stdin if name is "-", and returns a
// stream that parses it with settings from the command-line flags. The
// caller must call the returned close function when finished.
func openStream(name string) (*jtok.Stream, func() error, error) {
	opts, err := parserOptions()
	if err != nil {
		return nil, nil, err
	}
	var rc io.ReadCloser = io.NopCloser(os.Stdin)
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, nil, err
		}
		rc = f
	}
	log.Debug().Str("input", name).Str("encoding", encName).Msg("opened input")

	r, err := maybeStandardize(rc)
	if err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	st := jtok.NewStream(r, opts)
	st.SetChunkSize(chunkSize)
	return st, rc.Close, nil
}

// maybeStandardize returns r unmodified, unless --hujson is set. In that case
// it reads all of r and converts it from HuJSON to standard JSON.
func maybeStandardize(r io.Reader) (io.Reader, error) {
	if !useHuJSON {
		return r, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize HuJSON: %w", err)
	}
	log.Trace().Int("before", len(data)).Int("after", len(std)).Msg("standardized HuJSON")
	return bytes.NewReader(std), nil
}
