/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/config"
	"github.com/ssargent/dtaus/pkg/di"
	"github.com/ssargent/dtaus/pkg/dtaus"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

var container *di.Container

// SetContainer injects the dependency container used by all commands
func SetContainer(c *di.Container) {
	container = c
}

// NewRootCmd builds the command tree. The base command reports the logical
// files of a DTAUS file.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dtaus <file> [tolerance] [encoding]",
		Short: "Inspect DTAUS batch payment files",
		Long: `dtaus parses a DTAUS file and reports the logical files it contains.

tolerance is the sum of:
  0  strict DTAUS conformance
  1  translate DOS umlauts
  2  translate byte 00 to space (implies 1)
  4  log an invalid currency flag instead of failing

encoding is an IANA charset name and defaults to ISO-8859-1.

Examples:
	  dtaus dtaus0.txt
	  dtaus dtaus0.txt 3 IBM850 --verbose
	  dtaus dtaus0.txt --verify --metrics-file=/var/lib/node_exporter/dtaus.prom`,
		Args:              cobra.RangeArgs(1, 3),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runReport,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default is "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	rootCmd.Flags().BoolP("verbose", "v", false, "Print every record of every logical file")
	rootCmd.Flags().Bool("verify", false, "Check each trailer against its transactions")

	rootCmd.AddCommand(newNormalizeCmd())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and configures the
// container.
func setup(cmd *cobra.Command, args []string) error {
	if container == nil {
		return errors.New("dependency container not initialized")
	}

	cfg := config.DefaultConfig()
	path, _ := cmd.Flags().GetString("config")
	if path == "" && config.ConfigExists(config.GetDefaultConfigPath()) {
		path = config.GetDefaultConfigPath()
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.Metrics.Textfile, _ = cmd.Flags().GetString("metrics-file")
	}
	if cmd.Flags().Lookup("verify") != nil && cmd.Flags().Changed("verify") {
		cfg.Verify, _ = cmd.Flags().GetBool("verify")
	}

	return container.Configure(cfg)
}

func runReport(cmd *cobra.Command, args []string) (err error) {
	defer func() { err = exportMetrics(err) }()

	cfg := container.GetConfig()
	tol, enc, err := resolvePolicy(cfg, args[1:])
	if err != nil {
		return err
	}
	logger := container.GetLogger()
	logger.Info("parsing dtaus file",
		zap.String("path", args[0]),
		zap.Stringer("tolerance", tol),
		zap.String("encoding", codec.CharsetName(enc)),
	)

	p, err := dtaus.ParseFile(args[0], container.Options(tol, enc)...)
	if err != nil {
		logger.Error("parse failed", zap.String("path", args[0]), zap.Error(err))
		return err
	}

	if cfg.Verify {
		for n, lf := range p.LogicalFiles() {
			if err := lf.Verify(); err != nil {
				return fmt.Errorf("logical file %d: %w", n+1, err)
			}
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "logical files: %d\n", p.Count())

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return dump(out, p)
	}
	return nil
}

// dump prints each logical file: its transactions, a separator, the header
// and the trailer.
func dump(out io.Writer, p *dtaus.Parser) error {
	for n := 1; n <= p.Count(); n++ {
		if err := p.Select(n); err != nil {
			return err
		}
		for tx := p.Next(); tx != nil; tx = p.Next() {
			fmt.Fprintln(out, tx)
		}
		fmt.Fprintln(out, "----")
		fmt.Fprintln(out, p.Header())
		fmt.Fprintln(out, p.Trailer())
		fmt.Fprintln(out, "====")
	}
	return nil
}

// resolvePolicy combines the configured tolerance and encoding with the
// optional positional overrides [tolerance] [encoding].
func resolvePolicy(cfg *config.Config, args []string) (codec.Tolerance, encoding.Encoding, error) {
	tol, err := cfg.CodecTolerance()
	if err != nil {
		return 0, nil, err
	}
	if len(args) > 0 {
		if tol, err = codec.ParseTolerance(args[0]); err != nil {
			return 0, nil, fmt.Errorf("invalid tolerance %q: %w", args[0], err)
		}
	}

	name := cfg.Encoding
	if len(args) > 1 {
		name = args[1]
	}
	enc, err := codec.LookupCharset(name)
	if err != nil {
		return 0, nil, err
	}
	return tol, enc, nil
}

// exportMetrics writes the metrics textfile when configured. A write
// failure is only reported when the command itself succeeded.
func exportMetrics(runErr error) error {
	path := container.GetConfig().Metrics.Textfile
	if path == "" {
		return runErr
	}
	if err := container.WriteMetrics(path); err != nil {
		container.GetLogger().Error("metrics export failed", zap.String("path", path), zap.Error(err))
		if runErr == nil {
			return err
		}
	}
	return runErr
}
