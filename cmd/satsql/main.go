// Command satsql generates a SQL script that creates and populates the
// satellites table from a JSON file of satellite records.
//
// Run without arguments it reads ../../../resources/satellite_data.json and
// writes init_satellites.sql in the working directory.
package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andrewkroh/go-satellite-sql/internal/satsql"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the root command with args. Every failure, including flag
// and argument errors raised by cobra, is logged to stderr.
func run(args []string, stderr io.Writer) error {
	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		log := newLogger(stderr, false)
		log.Error().Err(err).Msg("satsql failed")
		return err
	}
	return nil
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	cfg := satsql.Config{}
	var debug bool

	cmd := &cobra.Command{
		Use:   "satsql",
		Short: "Generate the satellites table SQL script from satellite JSON records",
		Long: `satsql reads a JSON array of satellite records and writes a SQL script with
a CREATE TABLE IF NOT EXISTS statement followed by one INSERT ... ON CONFLICT
DO NOTHING statement per record, wrapped in a single transaction.

The output file is replaced on every run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			log := newLogger(stderr, debug)
			cfg.Logger = &log
			return satsql.Run(cfg)
		},
	}
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&cfg.InputPath, "input", satsql.DefaultInputPath, "Path to the JSON array of satellite records")
	flags.StringVar(&cfg.OutputPath, "output", satsql.DefaultOutputPath, "Path of the SQL script to write")
	flags.StringVar(&cfg.Schema, "schema", satsql.DetailedSchema, "Schema configuration to render ("+satsql.DetailedSchema+" or "+satsql.MinimalSchema+")")
	flags.StringVar(&cfg.SchemasFile, "schemas-file", "", "YAML file replacing the built-in schema configurations (optional)")
	flags.StringVar(&cfg.GoOutputPath, "go-output", "", "Path of a Go model file to generate for the table (optional)")
	flags.StringVar(&cfg.GoPackage, "go-package", "satdb", "Go package name for the generated model file")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}

	level := zerolog.InfoLevel
	if debug || os.Getenv("DEBUG") == "true" {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", "satsql").
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
